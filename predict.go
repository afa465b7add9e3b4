// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"github.com/gogpu/xr/device"
	"github.com/gogpu/xr/xrmath"
)

// predictPose extrapolates a sampled relation to the requested display
// time. It never fails.
//
// Without a valid angular velocity the sampled pose is returned
// untouched, bit for bit. With one, the orientation is advanced by
// integrating the velocity over the prediction interval; position is
// not predicted. The interval is the measured sample-to-target delta
// plus the configured bias when dynamic prediction is on, or the bias
// alone when it is off.
func (s *Session) predictPose(rel device.Relation, sampledAt, at Time) xrmath.Pose {
	pose := rel.Pose
	if !rel.Flags.Has(device.RelationAngularVelocityValid) {
		return pose
	}

	interval := s.predictionBias
	if s.dynamicPrediction {
		interval += float32(at.Sub(sampledAt).Seconds())
	}

	pose.Orientation = pose.Orientation.IntegrateVelocity(rel.AngularVelocity, interval)

	if s.debugViews {
		Logger().Debug("pose predicted",
			"session", s.id,
			"interval_s", interval,
			"angular_velocity", rel.AngularVelocity,
			"orientation", pose.Orientation)
	}
	return pose
}
