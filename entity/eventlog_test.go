package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventLogRecentOrderedOldestFirst(t *testing.T) {
	l := NewEventLog(3)
	base := time.Unix(1000, 0)
	l.Record(Event{At: base, Entity: "a"})
	l.Record(Event{At: base.Add(time.Second), Entity: "b"})

	recent := l.Recent()
	assert.Len(t, recent, 2)
	assert.Equal(t, "a", recent[0].Entity)
	assert.Equal(t, "b", recent[1].Entity)
}

func TestEventLogWrapsAtCapacity(t *testing.T) {
	l := NewEventLog(2)
	l.Record(Event{Entity: "a"})
	l.Record(Event{Entity: "b"})
	l.Record(Event{Entity: "c"})

	recent := l.Recent()
	assert.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].Entity)
	assert.Equal(t, "c", recent[1].Entity)
}

func TestEventLogDefaultCapacity(t *testing.T) {
	l := NewEventLog(0)
	for i := 0; i < EventLogCapacity+5; i++ {
		l.Record(Event{Entity: i})
	}
	assert.Len(t, l.Recent(), EventLogCapacity)
}
