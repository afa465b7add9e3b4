// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import "time"

// Config carries the tunables a Runtime hands to every session it
// creates. Values are captured at session creation; changing the Config
// afterwards does not affect live sessions.
type Config struct {
	// IPD is the inter-pupillary distance in meters used for view
	// poses when the device does not dictate one.
	IPD float32

	// PredictionBias is the fixed amount of extra pose prediction
	// applied on top of (or instead of) the measured sample-to-display
	// interval.
	PredictionBias time.Duration

	// DynamicPrediction selects whether the prediction interval is
	// measured per frame from the sample and target timestamps. When
	// false, PredictionBias alone is used.
	DynamicPrediction bool

	// DebugViews enables per-frame logging of view poses and fields of
	// view at debug level.
	DebugViews bool
}

// DefaultConfig returns the config sessions start from: a 63mm IPD,
// 11ms of prediction bias, and dynamic prediction enabled.
func DefaultConfig() Config {
	return Config{
		IPD:               0.063,
		PredictionBias:    11 * time.Millisecond,
		DynamicPrediction: true,
	}
}
