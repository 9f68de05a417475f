// Package transport implements the Elk M1 byte stream contract (§4.3):
// a full-duplex channel that yields CR-LF-terminated ASCII lines and
// accepts lines for transmission, over either a socket:// TCP tunnel
// (M1XEP) or a local serial device.
package transport

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
	"go.uber.org/zap"
)

// ErrNotOpen signals an operation attempted on a closed or never-dialed
// transport.
var ErrNotOpen = errors.New("transport: not open")

// ErrQueueFull signals PushLine's bounded queue rejecting a write because
// the writer cannot keep up (§4.3 "non-blocking, bounded queue").
var ErrQueueFull = errors.New("transport: outbound queue full")

// Sink receives each inbound line, CR-LF already stripped, in the order
// the transport read them.
type Sink func(line string)

// Config configures a Transport. Host accepts a "socket://host:port" TCP
// URL or an OS-specific serial device path (e.g. "/dev/ttyUSB0", "COM3").
type Config struct {
	Host string

	// QueueSize bounds the outbound PushLine queue. Defaults to 256.
	QueueSize int

	// SerialBaud is used only when Host names a serial device.
	SerialBaud int

	Logger *zap.Logger
}

func (c *Config) setDefaults() {
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.SerialBaud <= 0 {
		c.SerialBaud = 115200
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Transport is a live connection to a panel, reader and writer run as
// independently cancellable goroutines (§4.3 "Concurrency").
type Transport struct {
	cfg  Config
	conn io.ReadWriteCloser

	writeCh chan string
	quit    chan struct{}
	wg      sync.WaitGroup

	streamOpen  int32
	readerAlive int32
}

// Dial opens cfg.Host and begins reading lines, delivering each to sink
// asynchronously. The reader and writer goroutines run until Close.
func Dial(cfg Config, sink Sink) (*Transport, error) {
	cfg.setDefaults()

	conn, err := dial(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: dial %q", cfg.Host)
	}

	t := &Transport{
		cfg:     cfg,
		conn:    conn,
		writeCh: make(chan string, cfg.QueueSize),
		quit:    make(chan struct{}),
	}
	atomic.StoreInt32(&t.streamOpen, 1)
	atomic.StoreInt32(&t.readerAlive, 1)

	t.wg.Add(2)
	go t.readLoop(sink)
	go t.writeLoop()

	return t, nil
}

func dial(cfg Config) (io.ReadWriteCloser, error) {
	if strings.HasPrefix(cfg.Host, "socket://") {
		addr := strings.TrimPrefix(cfg.Host, "socket://")
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	if u, err := url.Parse(cfg.Host); err == nil && u.Scheme != "" && u.Scheme != "socket" {
		return nil, errors.Errorf("transport: unsupported URL scheme %q", u.Scheme)
	}

	port, err := serial.OpenPort(&serial.Config{Name: cfg.Host, Baud: cfg.SerialBaud})
	if err != nil {
		return nil, err
	}
	return port, nil
}

// PushLine enqueues line for transmission. Non-blocking: it returns
// ErrQueueFull rather than block the caller when the queue is saturated
// (§4.3). Backpressure is otherwise the outbound queue's job (§4.6), not
// the transport's.
func (t *Transport) PushLine(line string) error {
	if !t.Alive() {
		return ErrNotOpen
	}
	select {
	case t.writeCh <- line:
		return nil
	default:
		return ErrQueueFull
	}
}

// Alive reports `stream_open AND reader_alive` (§4.3).
func (t *Transport) Alive() bool {
	return atomic.LoadInt32(&t.streamOpen) == 1 && atomic.LoadInt32(&t.readerAlive) == 1
}

// Close cancels the reader and writer and releases the underlying
// connection.
func (t *Transport) Close() error {
	if !atomic.CompareAndSwapInt32(&t.streamOpen, 1, 0) {
		return nil
	}
	close(t.quit)
	err := t.conn.Close()
	t.wg.Wait()
	return err
}

func (t *Transport) readLoop(sink Sink) {
	defer t.wg.Done()
	defer atomic.StoreInt32(&t.readerAlive, 0)

	scanner := bufio.NewScanner(t.conn)
	scanner.Buffer(make([]byte, 4096), 64*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		sink(line)
	}
	if err := scanner.Err(); err != nil {
		t.cfg.Logger.Debug("transport: read loop ended", zap.Error(err))
	}
}

func (t *Transport) writeLoop() {
	defer t.wg.Done()
	for {
		select {
		case <-t.quit:
			return
		case line := <-t.writeCh:
			if _, err := io.WriteString(t.conn, line+"\r\n"); err != nil {
				t.cfg.Logger.Debug("transport: write failed", zap.Error(err))
				return
			}
		}
	}
}

// RedialContext blocks until ctx is cancelled or a new connection to
// cfg.Host succeeds, applying the reconnect policy in reconnect.go
// (§4.3 "reconnect hooks"; the policy itself is an external collaborator
// per §1, this only supplies the retry loop a caller can opt into).
func RedialContext(ctx context.Context, cfg Config, sink Sink) (*Transport, error) {
	return redialContext(ctx, cfg, sink)
}
