// Package dispatch implements the inbound frame dispatcher (§4.4): a
// bounded, drop-oldest FIFO, the auto-process/rescan-blacklist routing
// split, ElkRP pause gating, and outbound retry-match cancellation. It
// is grounded on pascaldekloe/part5/session.(*Transport).run, the
// teacher's central receive loop that fans decoded APDUs out to the
// session's command/monitor state.
package dispatch

import (
	"container/list"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BioSehnsucht/pyelk/entity"
	"github.com/BioSehnsucht/pyelk/frame"
	"github.com/BioSehnsucht/pyelk/msg"
	"github.com/BioSehnsucht/pyelk/outbound"
)

// MaxAge is the inbound staleness limit (§4.4 step 1).
const MaxAge = 120 * time.Second

// QueueCapacity is the bounded inbound buffer size (§4.4).
const QueueCapacity = 1000

type inboundFrame struct {
	Frame frame.Frame
	At    time.Time
}

// Dispatcher routes decoded frames to the entity Store, honoring the
// rescan blacklist, the auto-process set, and ElkRP pause gating.
type Dispatcher struct {
	store  *entity.Store
	out    *outbound.Queue
	logger *zap.Logger

	onRescan func()
	onEvent  entity.Callback
	events   *entity.EventLog

	mu      sync.Mutex
	queue   *list.List
	dropped uint64

	waiters map[msg.Kind]chan frame.Frame

	wake chan struct{}
}

// New returns a Dispatcher writing into store and cancelling outbound
// retries via out. onRescan is invoked when an IE (installer-mode exit)
// frame arrives (§4.4); onEvent is the façade's promoted default handler
// for entities with no registered listener (§4.5).
func New(store *entity.Store, out *outbound.Queue, logger *zap.Logger, onRescan func(), onEvent entity.Callback) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		store:    store,
		out:      out,
		logger:   logger,
		onRescan: onRescan,
		onEvent:  onEvent,
		events:   entity.NewEventLog(entity.EventLogCapacity),
		queue:    list.New(),
		waiters:  make(map[msg.Kind]chan frame.Frame),
		wake:     make(chan struct{}, 1),
	}
}

// EventLog returns the dispatcher's bounded recent-events ring buffer
// (§C supplemented feature), exposed read-only off the façade.
func (d *Dispatcher) EventLog() *entity.EventLog {
	return d.events
}

// Push decodes line and enqueues it, dropping the oldest pending frame
// on overflow (§4.4).
func (d *Dispatcher) Push(line string, at time.Time) {
	f, err := frame.Decode(line)
	if err != nil {
		d.logger.Debug("dispatch: decode failed", zap.Error(err), zap.String("line", line))
		return
	}

	d.mu.Lock()
	if d.queue.Len() >= QueueCapacity {
		d.queue.Remove(d.queue.Front())
		d.dropped++
	}
	d.queue.PushBack(inboundFrame{Frame: f, At: at})
	d.mu.Unlock()

	d.nudge()
}

func (d *Dispatcher) nudge() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Dropped returns the number of frames dropped for queue overflow.
func (d *Dispatcher) Dropped() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Wait blocks until a frame of kind arrives or timeout elapses, for the
// scanner's explicit ZS/ZD waits (§4.7). While a waiter is registered for
// kind, Run delivers matching frames here instead of auto-processing
// them (§4.4: "consumed by the scanner's explicit waits during
// startup").
func (d *Dispatcher) Wait(ctx context.Context, kind msg.Kind, timeout time.Duration) (frame.Frame, error) {
	ch := make(chan frame.Frame, 1)

	d.mu.Lock()
	d.waiters[kind] = ch
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.waiters, kind)
		d.mu.Unlock()
	}()

	select {
	case f := <-ch:
		return f, nil
	case <-time.After(timeout):
		return frame.Frame{}, context.DeadlineExceeded
	case <-ctx.Done():
		return frame.Frame{}, ctx.Err()
	}
}

// Run drains the inbound queue until ctx is cancelled (§5 "reader feeds
// the inbound queue", dispatcher is its consumer).
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		item, ok := d.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-d.wake:
			}
			continue
		}

		d.process(item)
	}
}

func (d *Dispatcher) pop() (inboundFrame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.queue.Front()
	if e == nil {
		return inboundFrame{}, false
	}
	d.queue.Remove(e)
	return e.Value.(inboundFrame), true
}

func (d *Dispatcher) process(item inboundFrame) {
	if time.Since(item.At) > MaxAge {
		d.logger.Debug("dispatch: discarding stale frame", zap.String("kind", item.Frame.Kind), zap.Duration("age", time.Since(item.At)))
		return
	}

	kind := msg.Kind(item.Frame.Kind)

	d.out.CancelMatching(item.Frame.Kind + string(item.Frame.Payload))

	d.mu.Lock()
	waiter, waiting := d.waiters[kind]
	d.mu.Unlock()
	if waiting {
		select {
		case waiter <- item.Frame:
		default:
			d.logger.Debug("dispatch: waiter not ready, dropping", zap.String("kind", string(kind)))
		}
		return
	}

	if kind == msg.InstallerExit {
		if d.onRescan != nil {
			d.onRescan()
		}
		return
	}

	if !msg.AutoProcessSet[kind] {
		return
	}

	d.dispatchAutoProcess(kind, string(item.Frame.Payload), item.At)
}

func (d *Dispatcher) notify(base *entity.Base, self interface{}, changed bool) {
	if changed {
		d.events.Record(entity.Event{At: time.Now(), Entity: self})
		base.Notify(self, d.onEvent)
	}
}
