// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"time"

	"github.com/gogpu/xr/compositor"
)

// EnvironmentBlendMode is the caller-facing blend mode selector.
type EnvironmentBlendMode int32

const (
	// BlendOpaque replaces the environment entirely.
	BlendOpaque EnvironmentBlendMode = iota + 1

	// BlendAdditive adds rendered light over the environment.
	BlendAdditive

	// BlendAlphaBlend alpha-composites over a pass-through view.
	BlendAlphaBlend
)

// toCompositor maps the caller-facing selector onto the compositor's
// blend-mode bits. Unknown values map to zero.
func (m EnvironmentBlendMode) toCompositor() compositor.BlendMode {
	switch m {
	case BlendOpaque:
		return compositor.BlendModeOpaque
	case BlendAdditive:
		return compositor.BlendModeAdditive
	case BlendAlphaBlend:
		return compositor.BlendModeAlphaBlend
	default:
		return 0
	}
}

// FrameState is the timing contract WaitFrame hands back: when the frame
// will be shown, how long a frame lasts, and whether rendering is worth
// doing. It is recomputed every call and never retained by the engine.
type FrameState struct {
	// PredictedDisplayTime is when the frame is expected to light up.
	// Zero for headless sessions.
	PredictedDisplayTime Time

	// PredictedDisplayPeriod is the expected interval between frames.
	// Zero for headless sessions.
	PredictedDisplayPeriod time.Duration

	// ShouldRender is false when rendering would be wasted (the
	// session is not visible).
	ShouldRender bool
}

// FrameEndInfo parameterizes EndFrame.
type FrameEndInfo struct {
	// DisplayTime is the display time the frame was rendered for. It
	// must be strictly positive.
	DisplayTime Time

	// BlendMode is how the frame composites with the environment.
	BlendMode EnvironmentBlendMode

	// Layers is the frame's content, back to front. An empty slice
	// discards the frame.
	Layers []CompositionLayer
}

// WaitFrame blocks until the compositor's next pacing slot and returns
// the predicted timing for the frame to render. This is the engine's
// only blocking call; it throttles the application to the display. On a
// headless session it returns immediately with ShouldRender false and no
// timing.
func (s *Session) WaitFrame() (FrameState, Result, error) {
	if !s.state.Running() {
		return FrameState{}, ErrSessionNotRunning, errorf(ErrSessionNotRunning, "session is not running")
	}

	// Advance the shared timebase exactly once per wait.
	now := s.sys.rt.clock.Now()

	if s.comp == nil {
		return FrameState{}, s.successResult(), nil
	}

	displayTime, displayPeriod, err := s.comp.WaitFrame()
	if err != nil {
		return FrameState{}, ErrRuntimeFailure, errorf(ErrRuntimeFailure, "compositor wait frame: %v", err)
	}

	if displayTime <= 0 {
		return FrameState{}, ErrRuntimeFailure, errorf(ErrRuntimeFailure,
			"got a negative display time '%d'", displayTime)
	}

	state := FrameState{
		ShouldRender:           s.state.ShouldRender(),
		PredictedDisplayPeriod: time.Duration(displayPeriod),
		PredictedDisplayTime:   s.sys.rt.clock.ToTime(displayTime),
	}

	if state.PredictedDisplayTime <= 0 {
		return FrameState{}, ErrRuntimeFailure, errorf(ErrRuntimeFailure,
			"timebase conversion returned '%d'", state.PredictedDisplayTime)
	}

	Logger().Debug("frame wait",
		"session", s.id,
		"now", now,
		"display_time", state.PredictedDisplayTime,
		"display_period", state.PredictedDisplayPeriod,
		"should_render", state.ShouldRender)

	return state, s.successResult(), nil
}

// BeginFrame marks the start of rendering for the frame WaitFrame paced.
// Calling it again without an EndFrame in between retires the previous
// frame: the backend discards it, the call reports FrameDiscarded, and
// the new frame is considered begun. The backend is told a frame began
// in both cases.
func (s *Session) BeginFrame() (Result, error) {
	if !s.state.Running() {
		return ErrSessionNotRunning, errorf(ErrSessionNotRunning, "session is not running")
	}

	var res Result
	if s.frameStarted {
		res = FrameDiscarded
		if s.comp != nil {
			if err := s.comp.DiscardFrame(); err != nil {
				return ErrRuntimeFailure, errorf(ErrRuntimeFailure, "compositor discard frame: %v", err)
			}
		}
	} else {
		res = s.successResult()
		s.frameStarted = true
	}

	if s.comp != nil {
		if err := s.comp.BeginFrame(); err != nil {
			return ErrRuntimeFailure, errorf(ErrRuntimeFailure, "compositor begin frame: %v", err)
		}
	}

	return res, nil
}

// EndFrame submits the frame's layers for composition. Every layer is
// validated before any is submitted, so a bad layer cannot leave the
// batch half-presented. A validation failure leaves the frame open: the
// caller may fix the layers and call EndFrame again. The frame closes on
// the success, headless, and zero-layer paths.
func (s *Session) EndFrame(info *FrameEndInfo) (Result, error) {
	// Session state and call order.
	if !s.state.Running() {
		return ErrSessionNotRunning, errorf(ErrSessionNotRunning, "session is not running")
	}
	if !s.frameStarted {
		return ErrCallOrderInvalid, errorf(ErrCallOrderInvalid, "frame has not begun with BeginFrame")
	}
	if info == nil {
		return ErrValidationFailure, errorf(ErrValidationFailure, "frameEndInfo is nil")
	}
	if info.DisplayTime <= 0 {
		return ErrTimeInvalid, errorf(ErrTimeInvalid,
			"(frameEndInfo.DisplayTime == %d) zero or a negative value is not a valid time",
			info.DisplayTime)
	}

	// Early out for headless sessions.
	if s.comp == nil {
		s.frameStarted = false
		return s.successResult(), nil
	}

	// Blend mode. BlendModeUnsupported must always be reported, even
	// with zero layers.
	blend := info.BlendMode.toCompositor()
	if blend == 0 {
		return ErrValidationFailure, errorf(ErrValidationFailure,
			"(frameEndInfo.BlendMode == %d) unknown environment blend mode", info.BlendMode)
	}
	if !s.sys.blendModes.Has(blend) {
		return ErrBlendModeUnsupported, errorf(ErrBlendModeUnsupported,
			"(frameEndInfo.BlendMode == %v) is not supported", blend)
	}

	// Early out for a discarded frame if there are no layers.
	if len(info.Layers) == 0 {
		if err := s.comp.DiscardFrame(); err != nil {
			return ErrRuntimeFailure, errorf(ErrRuntimeFailure, "compositor discard frame: %v", err)
		}
		s.frameStarted = false
		return s.successResult(), nil
	}

	// Verify all layers before submitting any.
	for i, layer := range info.Layers {
		if layer == nil {
			return ErrLayerInvalid, errorf(ErrLayerInvalid,
				"(frameEndInfo.Layers[%d] == nil) layer can not be nil", i)
		}
		if err := layer.verify(s, i); err != nil {
			return ResultOf(err), err
		}
	}

	// Done verifying.
	invOffset := s.sys.head.TrackingOriginOffset().Invert()

	if err := s.comp.LayerBegin(blend); err != nil {
		return ErrRuntimeFailure, errorf(ErrRuntimeFailure, "compositor layer begin: %v", err)
	}

	for _, layer := range info.Layers {
		if err := layer.submit(s, invOffset, info.DisplayTime); err != nil {
			return ResultOf(err), err
		}
	}

	if err := s.comp.LayerCommit(); err != nil {
		return ErrRuntimeFailure, errorf(ErrRuntimeFailure, "compositor layer commit: %v", err)
	}

	s.frameStarted = false

	return s.successResult(), nil
}
