// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import "sync"

// Event is a session state-change notification. Events are delivered in
// the order the transitions happened.
type Event struct {
	// Session is the session that changed state.
	Session *Session

	// State is the state the session entered.
	State State

	// LossTime is when the session will be lost, for
	// SessionLossPending deliveries. Zero otherwise.
	LossTime Time
}

// EventSink receives session state-change notifications. The Runtime's
// own EventQueue is the default sink; out-of-process transports can
// substitute their own.
type EventSink interface {
	// PushStateChanged records that sess entered state. lossTime is
	// zero unless the state change announces a pending session loss.
	PushStateChanged(sess *Session, state State, lossTime Time)

	// RemoveSession drops all queued events that reference sess. It is
	// called during session destruction; a failure is reported to the
	// destroyer but does not stop teardown.
	RemoveSession(sess *Session) error
}

// EventQueue is an in-memory FIFO EventSink. It is safe for concurrent
// use.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue { return &EventQueue{} }

// PushStateChanged implements EventSink.
func (q *EventQueue) PushStateChanged(sess *Session, state State, lossTime Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, Event{Session: sess, State: state, LossTime: lossTime})
}

// RemoveSession implements EventSink. The in-memory queue cannot fail;
// the error return exists for sinks that cross a process boundary.
func (q *EventQueue) RemoveSession(sess *Session) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.events[:0]
	for _, ev := range q.events {
		if ev.Session != sess {
			kept = append(kept, ev)
		}
	}
	for i := len(kept); i < len(q.events); i++ {
		q.events[i] = Event{}
	}
	q.events = kept
	return nil
}

// Poll removes and returns the oldest event. ok is false when the queue
// is empty.
func (q *EventQueue) Poll() (ev Event, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev = q.events[0]
	copy(q.events, q.events[1:])
	q.events[len(q.events)-1] = Event{}
	q.events = q.events[:len(q.events)-1]
	return ev, true
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
