package outbound

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueSendsInOrder(t *testing.T) {
	q := New(1000, nil) // fast rate so the test doesn't wait on real time

	var mu sync.Mutex
	var sent []string
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go q.Run(ctx, func(frame string) error {
		mu.Lock()
		sent = append(sent, frame)
		n := len(sent)
		mu.Unlock()
		if n == 3 {
			close(done)
		}
		return nil
	})

	q.Push(Entry{Frame: "one"})
	q.Push(Entry{Frame: "two"})
	q.Push(Entry{Frame: "three"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("entries never sent")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"one", "two", "three"}, sent)
}

func TestQueuePauseDiscardsEntries(t *testing.T) {
	q := New(1000, nil)
	q.SetPaused(true)

	sendCount := 0
	var mu sync.Mutex
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go q.Run(ctx, func(frame string) error {
		mu.Lock()
		sendCount++
		mu.Unlock()
		return nil
	})

	q.Push(Entry{Frame: "dropped"})
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, sendCount, "paused queue must discard rather than send")
}

func TestCancelMatchingRemovesExpectedReply(t *testing.T) {
	q := New(1000, nil)
	q.Push(Entry{Frame: "zs", Expect: "ZS", Retries: 3, RetryDelay: time.Hour})

	assert.True(t, q.CancelMatching("ZS0000000000"))
	assert.Equal(t, 0, q.Len())
}

func TestCancelMatchingIgnoresNonMatchingPayload(t *testing.T) {
	q := New(1000, nil)
	q.Push(Entry{Frame: "zs", Expect: "ZS", Retries: 3, RetryDelay: time.Hour})

	assert.False(t, q.CancelMatching("AS0000000000"))
	assert.Equal(t, 1, q.Len())
}

func TestFlushDiscardsWithoutSending(t *testing.T) {
	q := New(1000, nil)
	q.Push(Entry{Frame: "one"})
	q.Push(Entry{Frame: "two"})
	require.Equal(t, 2, q.Len())

	q.Flush()
	assert.Equal(t, 0, q.Len())
}
