// Package entity holds the in-memory panel mirror: zones, areas,
// keypads, outputs, tasks, thermostats, X10 devices, counters, custom
// settings and users, with the invariants from §3.2 and the state
// machines from §3.3. All entities are created up front with default
// values and owned exclusively by the façade (§3.4); only the dispatcher
// mutates them, via the typed ApplyXxx methods on each entity.
package entity

import "sync"

// Callback is a change notification. It receives the entity that
// changed; there is no zero-argument form. Callbacks fire synchronously
// on the dispatcher goroutine and MUST NOT block (§4.5).
type Callback func(interface{})

// Base is embedded by every entity kind. It is grounded on
// PyElk/Node/__init__.py, the common base class every PyElk entity
// inherited from, translated here from inheritance to embedding. Base
// holds only the callback list and its lock; it keeps no reference back
// to the owning Store.
type Base struct {
	mu        sync.Mutex
	callbacks []Callback
}

// AddCallback registers cb. Safe to call at any time.
func (b *Base) AddCallback(cb Callback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = append(b.callbacks, cb)
}

// RemoveAllCallbacks clears every registered callback at once. There is
// no removal of a single callback: Go funcs are not comparable.
func (b *Base) RemoveAllCallbacks() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = nil
}

// Notify fires every registered callback with self. If none were
// registered, fallback is invoked instead, giving the façade's default
// handler a single place to observe entities nobody is listening to yet
// (§4.5 "promoted").
func (b *Base) Notify(self interface{}, fallback Callback) {
	if !b.fire(self) && fallback != nil {
		fallback(self)
	}
}

// fire invokes every registered callback with self. It reports whether
// any listener was registered, so the caller (Notify) can promote the
// event to the façade's
// default handler when nobody was listening (§4.5 "promoted").
func (b *Base) fire(self interface{}) (hadListener bool) {
	b.mu.Lock()
	cbs := make([]Callback, len(b.callbacks))
	copy(cbs, b.callbacks)
	b.mu.Unlock()

	for _, cb := range cbs {
		cb(self)
	}
	return len(cbs) > 0
}
