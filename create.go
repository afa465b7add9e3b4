// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"errors"

	"github.com/google/uuid"

	"github.com/gogpu/xr/compositor"
)

// SessionCreateInfo parameterizes CreateSession.
type SessionCreateInfo struct {
	// Binding selects and configures the graphics backend. A nil
	// binding requests a headless session, which the system must
	// support.
	Binding GraphicsBinding
}

// AttachCompositor wires in the compositor a session initializer built.
// Initializers call it during CreateSession, before the session is
// handed to the application; it is not for changing compositors on a
// live session.
func (s *Session) AttachCompositor(c compositor.Compositor) {
	s.comp = c
}

func newSession(sys *System) *Session {
	return &Session{
		id:  uuid.New(),
		sys: sys,
	}
}

// createSessionImpl is just the allocation and populate part, so early
// returns keep the per-binding flow flat. A non-nil session may come
// back alongside an error; the caller tears it down.
func createSessionImpl(sys *System, info *SessionCreateInfo) (*Session, error) {
	if info.Binding != nil {
		kind := bindingKind(info.Binding)
		if init := initializerFor(kind); init != nil {
			if !sys.requirementsNegotiated(info.Binding.Family()) {
				return nil, errorf(ErrValidationFailure,
					"GraphicsRequirements has not been queried for the %v family",
					info.Binding.Family())
			}

			sess := newSession(sys)
			if err := init(sys, info.Binding, sess); err != nil {
				var e *Error
				if !errors.As(err, &e) {
					err = errorf(ErrValidationFailure, "%s session initializer: %v", kind, err)
				}
				return sess, err
			}
			return sess, nil
		}
		// A binding with no registered initializer behaves like one
		// this build does not support: fall through to the headless
		// check.
	}

	if sys.headless {
		sess := newSession(sys)
		sess.comp = nil
		return sess, nil
	}

	return nil, errorf(ErrValidationFailure,
		"(createInfo.Binding) no usable graphics binding and the system is not headless")
}

// CreateSession builds a session on the system. Exactly one binding
// initializer runs, chosen by the binding's concrete type; a nil binding
// yields a headless session when the system supports that. The new
// session starts in the ready state, with the idle and ready
// notifications already queued in that order.
//
// If anything fails after partial construction, the partial session is
// torn down before the error is returned; no handle leaks.
func CreateSession(sys *System, info *SessionCreateInfo) (*Session, Result, error) {
	if info == nil {
		return nil, ErrValidationFailure, errorf(ErrValidationFailure, "createInfo is nil")
	}

	// Try allocating and populating.
	sess, err := createSessionImpl(sys, info)
	if err != nil {
		if sess != nil {
			// Clean up the partial allocation first.
			sess.destroyCompositor()
		}
		return nil, ResultOf(err), err
	}

	cfg := sys.rt.cfg
	sess.ipd = cfg.IPD
	sess.predictionBias = float32(cfg.PredictionBias.Seconds())
	sess.dynamicPrediction = cfg.DynamicPrediction
	sess.debugViews = cfg.DebugViews

	sess.changeState(StateIdle)
	sess.changeState(StateReady)

	sess.actionSets = make(map[uint64]any)
	sess.inputSources = make(map[uint64]any)

	sess.handle = sys.rt.registerSession(sess)

	Logger().Info("session created",
		"session", sess.id,
		"head", sys.head.Name(),
		"headless", sess.Headless())

	return sess, sess.successResult(), nil
}

// Destroy releases everything the session owns: queued events,
// the compositor if one is attached, and the action-set and
// input-source bookkeeping. The session handle stops resolving.
//
// The returned result is the event removal's; resources are freed
// unconditionally even when that fails.
func (s *Session) Destroy() (Result, error) {
	if s.destroyed {
		return ErrValidationFailure, errorf(ErrValidationFailure, "session is already destroyed")
	}

	evErr := s.sys.rt.sink.RemoveSession(s)
	if evErr != nil {
		Logger().Warn("removing queued session events", "session", s.id, "error", evErr)
	}

	s.destroyCompositor()

	s.actionSets = nil
	s.inputSources = nil

	s.sys.rt.releaseSession(s.handle)
	s.destroyed = true

	Logger().Info("session destroyed", "session", s.id)

	if evErr != nil {
		return ResultOf(evErr), evErr
	}
	return Success, nil
}

// destroyCompositor does a nil check.
func (s *Session) destroyCompositor() {
	if s.comp == nil {
		return
	}
	if err := s.comp.Destroy(); err != nil {
		Logger().Warn("compositor destroy", "session", s.id, "error", err)
	}
	s.comp = nil
}
