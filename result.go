// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"errors"
	"fmt"
)

// Result is the disposition of an engine operation. Zero and positive
// values are successes that still carry information (a frame was
// discarded, a session loss is pending); negative values are errors.
//
// Operations return a Result alongside an error so callers can branch on
// the code without string matching. The error is non-nil exactly when the
// result is an error code.
type Result int32

// Success results.
const (
	// Success is the plain success disposition.
	Success Result = iota

	// FrameDiscarded reports that the frame in flight was thrown away;
	// the operation itself still succeeded.
	FrameDiscarded

	// SessionLossPending reports success while the session is on its way
	// to being lost; the caller should wind down.
	SessionLossPending
)

// Error results.
const (
	// ErrValidationFailure means an argument or handle failed validation.
	ErrValidationFailure Result = -1 - iota

	// ErrSessionRunning means the session was already running.
	ErrSessionRunning

	// ErrSessionNotRunning means the session was not running.
	ErrSessionNotRunning

	// ErrSessionNotStopping means the session was not in the stopping
	// state.
	ErrSessionNotStopping

	// ErrCallOrderInvalid means a call arrived outside the required
	// protocol order, such as ending a frame that was never begun.
	ErrCallOrderInvalid

	// ErrTimeInvalid means a timestamp was zero, negative, or otherwise
	// outside the valid domain.
	ErrTimeInvalid

	// ErrSizeInsufficient means a caller-provided buffer was too small
	// for the data a two-call enumeration wants to return.
	ErrSizeInsufficient

	// ErrViewConfigurationUnsupported means the requested view
	// arrangement does not match what the system was created with.
	ErrViewConfigurationUnsupported

	// ErrLayerInvalid means a submitted layer was structurally unusable:
	// unknown type, missing swapchain, or no released image.
	ErrLayerInvalid

	// ErrPoseInvalid means a submitted pose had a non-normalized
	// orientation or non-finite components.
	ErrPoseInvalid

	// ErrSwapchainRectInvalid means a layer's image sub-rectangle was
	// outside the allowed bounds.
	ErrSwapchainRectInvalid

	// ErrBlendModeUnsupported means the requested environment blend mode
	// is not supported by the system.
	ErrBlendModeUnsupported

	// ErrRuntimeFailure means an internal invariant broke or a backend
	// call failed; the caller did nothing wrong.
	ErrRuntimeFailure
)

// IsError reports whether the result is an error code.
func (r Result) IsError() bool { return r < 0 }

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case FrameDiscarded:
		return "frame-discarded"
	case SessionLossPending:
		return "session-loss-pending"
	case ErrValidationFailure:
		return "validation-failure"
	case ErrSessionRunning:
		return "session-running"
	case ErrSessionNotRunning:
		return "session-not-running"
	case ErrSessionNotStopping:
		return "session-not-stopping"
	case ErrCallOrderInvalid:
		return "call-order-invalid"
	case ErrTimeInvalid:
		return "time-invalid"
	case ErrSizeInsufficient:
		return "size-insufficient"
	case ErrViewConfigurationUnsupported:
		return "view-configuration-unsupported"
	case ErrLayerInvalid:
		return "layer-invalid"
	case ErrPoseInvalid:
		return "pose-invalid"
	case ErrSwapchainRectInvalid:
		return "swapchain-rect-invalid"
	case ErrBlendModeUnsupported:
		return "blend-mode-unsupported"
	case ErrRuntimeFailure:
		return "runtime-failure"
	default:
		return fmt.Sprintf("result(%d)", int32(r))
	}
}

// Error is the error type returned by engine operations. It pairs a
// Result code with a formatted message.
type Error struct {
	result Result
	msg    string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.msg }

// Result returns the result code the error carries.
func (e *Error) Result() Result { return e.result }

// errorf builds an *Error with the given code and logs it at debug level,
// mirroring how validation failures are surfaced to developers without
// spamming production logs.
func errorf(r Result, format string, args ...any) error {
	e := &Error{result: r, msg: fmt.Sprintf(format, args...)}
	Logger().Debug(e.msg, "result", r)
	return e
}

// ResultOf extracts the result code from an error. A nil error maps to
// Success; an error that is not an *Error maps to ErrRuntimeFailure.
func ResultOf(err error) Result {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.result
	}
	return ErrRuntimeFailure
}
