// Package outbound implements the time-ordered command queue (§4.6):
// retry budget, rate limiting, ElkRP-induced suspension and
// expected-reply cancellation. The queue has no capacity limit. It is
// grounded on pascaldekloe/part5/session.Outbound, the single-use
// submission handle the teacher's session layer hands to the
// Class1/Class2 channel pair; here the two priority channels collapse
// into one queue with no priorities, served in enqueue order.
package outbound

import (
	"container/list"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultRateLimit is the default outbound frame rate (§4.6).
const DefaultRateLimit = 10

// Entry is a single pending command (§4.6).
type Entry struct {
	Frame           string
	EarliestSend    time.Time
	Retries         int
	RetryDelay      time.Duration
	Expect          string // expected-reply prefix, empty if none
	retriesRemaining int
}

// Sender transmits one frame, analogous to transport.Transport.PushLine.
type Sender func(frame string) error

// Queue is the time-ordered outbound command queue. Push never rejects
// or drops an entry: the queue grows without a capacity limit.
type Queue struct {
	mu      sync.Mutex
	entries *list.List // of *Entry, earliest-send order is not assumed; Run scans

	limiter *rate.Limiter
	paused  bool
	logger  *zap.Logger

	wake chan struct{}
}

// New returns a Queue rate-limited to framesPerSec (DefaultRateLimit if
// <= 0).
func New(framesPerSec float64, logger *zap.Logger) *Queue {
	if framesPerSec <= 0 {
		framesPerSec = DefaultRateLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		entries: list.New(),
		limiter: rate.NewLimiter(rate.Limit(framesPerSec), 1),
		logger:  logger,
		wake:    make(chan struct{}, 1),
	}
}

// Push enqueues e, defaulting EarliestSend to now.
func (q *Queue) Push(e Entry) {
	if e.EarliestSend.IsZero() {
		e.EarliestSend = time.Now()
	}
	e.retriesRemaining = e.Retries

	q.mu.Lock()
	q.entries.PushBack(&e)
	q.mu.Unlock()

	q.nudge()
}

// SetPaused gates the send loop: while paused (ElkRP connected, §4.4
// RP(1)/RP(2)), entries at the head are discarded rather than sent
// (§4.6 step 2).
func (q *Queue) SetPaused(paused bool) {
	q.mu.Lock()
	q.paused = paused
	q.mu.Unlock()
	q.nudge()
}

// Len reports the number of pending entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.entries.Len()
}

// Flush discards every pending entry without sending (§5 "Shutdown ...
// flushes the outbound queue without sending").
func (q *Queue) Flush() {
	q.mu.Lock()
	q.entries.Init()
	q.mu.Unlock()
}

func (q *Queue) nudge() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// CancelMatching removes the first pending entry (across the whole
// queue, not just the head) whose Expect is a non-empty prefix of
// payload, per §4.4's "on every inbound frame, scan the head of the
// outbound queue and remove any pending entry whose expect prefix
// matches". It reports whether an entry was cancelled.
func (q *Queue) CancelMatching(payload string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for e := q.entries.Front(); e != nil; e = e.Next() {
		entry := e.Value.(*Entry)
		if entry.Expect == "" {
			continue
		}
		if len(payload) >= len(entry.Expect) && payload[:len(entry.Expect)] == entry.Expect {
			q.entries.Remove(e)
			return true
		}
	}
	return false
}

// Run drains the queue, calling send for each entry whose earliest send
// time has arrived, honoring Pause and the rate limiter, and
// reinserting retry-eligible entries (§4.6 send loop). It blocks until
// ctx is cancelled.
func (q *Queue) Run(ctx context.Context, send Sender) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		e, wait := q.popReady()
		if e == nil {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
				continue
			case <-time.After(wait):
				continue
			}
		}

		q.mu.Lock()
		paused := q.paused
		q.mu.Unlock()
		if paused {
			q.logger.Debug("outbound: discarding entry while paused", zap.String("frame", e.Frame))
			continue
		}

		if err := q.limiter.Wait(ctx); err != nil {
			return
		}
		if err := send(e.Frame); err != nil {
			q.logger.Debug("outbound: send failed", zap.Error(err), zap.String("frame", e.Frame))
			continue
		}

		if e.retriesRemaining > 0 && e.Expect != "" {
			e.retriesRemaining--
			e.EarliestSend = time.Now().Add(e.RetryDelay)
			q.mu.Lock()
			q.entries.PushBack(e)
			q.mu.Unlock()
		}
	}
}

// popReady removes and returns the first entry, in queue order, whose
// EarliestSend has passed. If none is due yet, it returns the duration
// until the soonest one will be, capped at one second.
func (q *Queue) popReady() (*Entry, time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	var best *list.Element
	for e := q.entries.Front(); e != nil; e = e.Next() {
		entry := e.Value.(*Entry)
		if !entry.EarliestSend.After(now) {
			best = e
			break
		}
	}
	if best != nil {
		q.entries.Remove(best)
		return best.Value.(*Entry), 0
	}

	var soonest time.Duration = time.Second
	for e := q.entries.Front(); e != nil; e = e.Next() {
		if d := e.Value.(*Entry).EarliestSend.Sub(now); d < soonest {
			soonest = d
		}
	}
	return nil, soonest
}
