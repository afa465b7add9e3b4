// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"github.com/google/uuid"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/compositor"
)

// State is a session lifecycle state.
type State int32

const (
	// StateIdle is the resting state before the runtime is ready for
	// the session to begin.
	StateIdle State = iota + 1

	// StateReady means the session may be begun.
	StateReady

	// StateSynchronized means the session is running and synchronized
	// to the display's frame timing, but not visible.
	StateSynchronized

	// StateVisible means the session's output is shown to the user,
	// without input focus.
	StateVisible

	// StateFocused means the session is visible and has input focus.
	StateFocused

	// StateStopping means the runtime wants the session to stop; the
	// application should call End.
	StateStopping

	// StateExiting means the session ended after an exit request and
	// the application should shut down.
	StateExiting
)

// Running reports whether the state counts as a running session.
func (s State) Running() bool {
	switch s {
	case StateSynchronized, StateVisible, StateFocused, StateStopping:
		return true
	default:
		return false
	}
}

// ShouldRender reports whether an application in this state should
// render frames.
func (s State) ShouldRender() bool {
	switch s {
	case StateVisible, StateFocused, StateStopping:
		return true
	default:
		return false
	}
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateSynchronized:
		return "synchronized"
	case StateVisible:
		return "visible"
	case StateFocused:
		return "focused"
	case StateStopping:
		return "stopping"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Session is one application's bound context on a system: a lifecycle
// state machine plus the frame loop that runs inside it.
//
// A session is driven by a single application thread. Its operations are
// deliberately not synchronized internally; concurrent calls on one
// session are a caller bug. The runtime-owned pieces a session touches
// (clock, event sink, handle arenas) are safe to share.
type Session struct {
	id     uuid.UUID
	handle SessionHandle
	sys    *System
	comp   compositor.Compositor

	state        State
	frameStarted bool
	exiting      bool
	lossPending  bool
	destroyed    bool

	ipd               float32
	predictionBias    float32 // seconds
	dynamicPrediction bool
	debugViews        bool

	actionSets   map[uint64]any
	inputSources map[uint64]any
}

// SessionBeginInfo parameterizes Session.Begin.
type SessionBeginInfo struct {
	// PrimaryViewType is the view arrangement the application will
	// render. It must match the system's.
	PrimaryViewType compositor.ViewType
}

// ID returns the session's trace id, used to correlate log lines.
func (s *Session) ID() uuid.UUID { return s.id }

// Handle returns the session's runtime handle.
func (s *Session) Handle() SessionHandle { return s.handle }

// System returns the system the session was created on.
func (s *Session) System() *System { return s.sys }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Running reports whether the session is in a running state.
func (s *Session) Running() bool { return s.state.Running() }

// Headless reports whether the session has no compositor attached.
func (s *Session) Headless() bool { return s.comp == nil }

// successResult is the session-disposition-aware success code.
func (s *Session) successResult() Result {
	if s.lossPending {
		return SessionLossPending
	}
	return Success
}

// changeState emits the state-change notification and then records the
// new state. Callers that visit several states call it once per state so
// notifications arrive in transition order.
func (s *Session) changeState(st State) {
	Logger().Debug("session state change",
		"session", s.id, "from", s.state, "to", st)
	s.sys.rt.sink.PushStateChanged(s, st, 0)
	s.state = st
}

// Begin starts running the session. From a non-running state it walks
// synchronized, visible, focused in one call, emitting one notification
// per state. When a compositor is attached, the requested view type must
// match the system's and the compositor is told the session began.
func (s *Session) Begin(info *SessionBeginInfo) (Result, error) {
	if info == nil {
		return ErrValidationFailure, errorf(ErrValidationFailure, "beginInfo is nil")
	}
	if s.state.Running() {
		return ErrSessionRunning, errorf(ErrSessionRunning, "session is already running")
	}

	if s.comp != nil {
		if info.PrimaryViewType != s.sys.viewType {
			return ErrViewConfigurationUnsupported, errorf(ErrViewConfigurationUnsupported,
				"(beginInfo.PrimaryViewType == %v) view configuration type not supported, system renders %v",
				info.PrimaryViewType, s.sys.viewType)
		}
		if err := s.comp.BeginSession(info.PrimaryViewType); err != nil {
			return ErrRuntimeFailure, errorf(ErrRuntimeFailure, "compositor begin session: %v", err)
		}
	}

	s.changeState(StateSynchronized)
	s.changeState(StateVisible)
	s.changeState(StateFocused)

	return s.successResult(), nil
}

// End stops a session that reached the stopping state. Any in-flight
// frame is discarded first. The session lands in idle, then in exiting
// if an exit was requested, else back in ready.
func (s *Session) End() (Result, error) {
	if !s.state.Running() {
		return ErrSessionNotRunning, errorf(ErrSessionNotRunning, "session is not running")
	}
	if s.state != StateStopping {
		return ErrSessionNotStopping, errorf(ErrSessionNotStopping, "session is not stopping")
	}

	if s.comp != nil {
		if s.frameStarted {
			if err := s.comp.DiscardFrame(); err != nil {
				Logger().Warn("discarding in-flight frame on session end",
					"session", s.id, "error", err)
			}
			s.frameStarted = false
		}
		if err := s.comp.EndSession(); err != nil {
			Logger().Warn("compositor end session", "session", s.id, "error", err)
		}
	}

	s.changeState(StateIdle)
	if s.exiting {
		s.changeState(StateExiting)
	} else {
		s.changeState(StateReady)
	}

	return s.successResult(), nil
}

// RequestExit asks a running session to wind down. The state cascades
// from wherever it is down to stopping, one notification per state
// visited, and the following End lands in exiting instead of ready.
func (s *Session) RequestExit() (Result, error) {
	if !s.state.Running() {
		return ErrSessionNotRunning, errorf(ErrSessionNotRunning, "session is not running")
	}

	if s.state == StateFocused {
		s.changeState(StateVisible)
	}
	if s.state == StateVisible {
		s.changeState(StateSynchronized)
	}
	s.changeState(StateStopping)
	s.exiting = true

	return s.successResult(), nil
}

// Poll gives the attached compositor a chance to process backend events.
// It never blocks and is a no-op for headless sessions.
func (s *Session) Poll() {
	if s.comp != nil {
		s.comp.Poll()
	}
}

// MarkLossPending flags the session as heading for loss. Subsequent
// successful operations report SessionLossPending instead of Success,
// and one notification carrying the projected loss time is emitted.
func (s *Session) MarkLossPending(lossTime Time) {
	s.lossPending = true
	s.sys.rt.sink.PushStateChanged(s, s.state, lossTime)
}

// EnumerateSwapchainFormats fills dst with the pixel formats the
// session's compositor can present, in preference order, and returns how
// many there are. An empty dst queries the required size; a non-empty
// dst that is too small fails with SizeInsufficient. Headless sessions
// report zero formats.
func (s *Session) EnumerateSwapchainFormats(dst []gputypes.TextureFormat) (int, Result, error) {
	if s.comp == nil {
		return 0, s.successResult(), nil
	}

	formats := s.comp.Formats()
	if len(dst) == 0 {
		return len(formats), s.successResult(), nil
	}
	if len(dst) < len(formats) {
		return len(formats), ErrSizeInsufficient, errorf(ErrSizeInsufficient,
			"(dst) holds %d formats, %d needed", len(dst), len(formats))
	}
	copy(dst, formats)
	return len(formats), s.successResult(), nil
}

// AttachActionSet records an action set under its id. The engine only
// keeps the bookkeeping; the input system interpreting the sets lives
// above it.
func (s *Session) AttachActionSet(id uint64, set any) {
	s.actionSets[id] = set
}

// ActionSet returns the action set attached under id.
func (s *Session) ActionSet(id uint64) (any, bool) {
	v, ok := s.actionSets[id]
	return v, ok
}

// BindInputSource records an input source under its id.
func (s *Session) BindInputSource(id uint64, src any) {
	s.inputSources[id] = src
}

// InputSource returns the input source bound under id.
func (s *Session) InputSource(id uint64) (any, bool) {
	v, ok := s.inputSources[id]
	return v, ok
}
