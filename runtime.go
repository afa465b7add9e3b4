// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import "sync"

// Runtime owns what outlives any one session: the clock, the event
// queue, the configured tunables, and the handle arenas for spaces,
// swapchains, and sessions.
//
// Arena accessors are safe for concurrent use. Sessions themselves are
// single-caller; see Session.
type Runtime struct {
	cfg   Config
	clock Clock
	sink  EventSink
	queue *EventQueue

	mu         sync.RWMutex
	sessions   arena[*Session]
	spaces     arena[*Space]
	swapchains arena[*Swapchain]
}

// RuntimeOption configures a Runtime beyond its Config.
type RuntimeOption func(*Runtime)

// WithClock substitutes the time source. Tests use this to drive frame
// timing deterministically.
func WithClock(c Clock) RuntimeOption {
	return func(r *Runtime) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithEventSink substitutes the destination for session state-change
// events. The default is the runtime's own EventQueue; a replacement
// sink makes PollEvent always report empty.
func WithEventSink(sink EventSink) RuntimeOption {
	return func(r *Runtime) {
		if sink != nil {
			r.sink = sink
		}
	}
}

// NewRuntime returns a Runtime with the given config. Most callers pass
// DefaultConfig().
func NewRuntime(cfg Config, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		cfg:   cfg,
		clock: NewSystemClock(),
		queue: NewEventQueue(),
	}
	r.sink = r.queue
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the runtime's tunables.
func (r *Runtime) Config() Config { return r.cfg }

// Clock returns the runtime's time source.
func (r *Runtime) Clock() Clock { return r.clock }

// Events returns the sink session state changes are delivered to.
func (r *Runtime) Events() EventSink { return r.sink }

// PollEvent removes and returns the oldest queued event. It reports
// false when the queue is empty, or when WithEventSink redirected
// delivery elsewhere.
func (r *Runtime) PollEvent() (Event, bool) {
	if r.sink != EventSink(r.queue) {
		return Event{}, false
	}
	return r.queue.Poll()
}

// RegisterSpace adds a space to the runtime and returns its handle.
func (r *Runtime) RegisterSpace(s *Space) SpaceHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return SpaceHandle(r.spaces.insert(s))
}

// Space resolves a space handle. Stale and zero handles report false.
func (r *Runtime) Space(h SpaceHandle) (*Space, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.spaces.lookup(uint64(h))
}

// DestroySpace frees the space behind h. It reports whether the handle
// was live.
func (r *Runtime) DestroySpace(h SpaceHandle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.spaces.remove(uint64(h))
}

// RegisterSwapchain adds a swapchain to the runtime and returns its
// handle.
func (r *Runtime) RegisterSwapchain(s *Swapchain) SwapchainHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return SwapchainHandle(r.swapchains.insert(s))
}

// Swapchain resolves a swapchain handle. Stale and zero handles report
// false.
func (r *Runtime) Swapchain(h SwapchainHandle) (*Swapchain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.swapchains.lookup(uint64(h))
}

// DestroySwapchain frees the swapchain behind h. It reports whether the
// handle was live.
func (r *Runtime) DestroySwapchain(h SwapchainHandle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.swapchains.remove(uint64(h))
}

// Session resolves a session handle. Handles of destroyed sessions
// report false.
func (r *Runtime) Session(h SessionHandle) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions.lookup(uint64(h))
}

// SessionCount returns the number of live sessions.
func (r *Runtime) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions.len()
}

func (r *Runtime) registerSession(s *Session) SessionHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return SessionHandle(r.sessions.insert(s))
}

func (r *Runtime) releaseSession(h SessionHandle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions.remove(uint64(h))
}
