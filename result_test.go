// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestResultClassification(t *testing.T) {
	successes := []Result{Success, FrameDiscarded, SessionLossPending}
	for _, r := range successes {
		if r.IsError() {
			t.Errorf("%v.IsError() = true, want false", r)
		}
	}

	failures := []Result{
		ErrValidationFailure,
		ErrSessionRunning,
		ErrSessionNotRunning,
		ErrSessionNotStopping,
		ErrCallOrderInvalid,
		ErrTimeInvalid,
		ErrSizeInsufficient,
		ErrViewConfigurationUnsupported,
		ErrLayerInvalid,
		ErrPoseInvalid,
		ErrSwapchainRectInvalid,
		ErrBlendModeUnsupported,
		ErrRuntimeFailure,
	}
	seen := make(map[Result]bool)
	for _, r := range failures {
		if !r.IsError() {
			t.Errorf("%v.IsError() = false, want true", r)
		}
		if seen[r] {
			t.Errorf("result code %d assigned twice", int32(r))
		}
		seen[r] = true
		if r.String() == "unknown" || strings.HasPrefix(r.String(), "result(") {
			t.Errorf("Result(%d) has no name", int32(r))
		}
	}
}

func TestResultString(t *testing.T) {
	if got := Success.String(); got != "success" {
		t.Errorf("Success.String() = %q", got)
	}
	if got := ErrSessionNotStopping.String(); got != "session-not-stopping" {
		t.Errorf("ErrSessionNotStopping.String() = %q", got)
	}
	if got := Result(-100).String(); got != "result(-100)" {
		t.Errorf("Result(-100).String() = %q", got)
	}
}

func TestErrorf(t *testing.T) {
	err := errorf(ErrTimeInvalid, "time %d is in the past", 42)
	if err == nil {
		t.Fatal("errorf returned nil")
	}
	if got := err.Error(); got != "time 42 is in the past" {
		t.Errorf("Error() = %q", got)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("errorf result is not an *Error")
	}
	if e.Result() != ErrTimeInvalid {
		t.Errorf("Result() = %v, want ErrTimeInvalid", e.Result())
	}
}

func TestResultOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Result
	}{
		{"nil", nil, Success},
		{"engine error", errorf(ErrPoseInvalid, "bad pose"), ErrPoseInvalid},
		{"wrapped engine error", fmt.Errorf("outer: %w", errorf(ErrLayerInvalid, "bad layer")), ErrLayerInvalid},
		{"foreign error", errors.New("disk on fire"), ErrRuntimeFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResultOf(tc.err); got != tc.want {
				t.Errorf("ResultOf() = %v, want %v", got, tc.want)
			}
		})
	}
}
