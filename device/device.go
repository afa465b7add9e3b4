// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import "github.com/gogpu/xr/xrmath"

// InputKind selects which tracked input of a device to sample.
type InputKind int32

const (
	// InputHeadPose is the head-mounted display pose input.
	InputHeadPose InputKind = iota + 1
)

// String returns the input kind name.
func (k InputKind) String() string {
	switch k {
	case InputHeadPose:
		return "head-pose"
	default:
		return "unknown"
	}
}

// RelationFlags describe which fields of a Relation carry meaningful data.
type RelationFlags uint32

const (
	// RelationOrientationValid is set when the orientation is usable.
	RelationOrientationValid RelationFlags = 1 << iota
	// RelationPositionValid is set when the position is usable.
	RelationPositionValid
	// RelationLinearVelocityValid is set when the linear velocity is usable.
	RelationLinearVelocityValid
	// RelationAngularVelocityValid is set when the angular velocity is
	// usable. Orientation prediction only runs when this flag is present.
	RelationAngularVelocityValid
	// RelationOrientationTracked is set when the orientation comes from
	// live tracking rather than a default or last-known value.
	RelationOrientationTracked
	// RelationPositionTracked is set when the position comes from live
	// tracking rather than a default or last-known value.
	RelationPositionTracked
)

// Has reports whether all bits of want are set.
func (f RelationFlags) Has(want RelationFlags) bool {
	return f&want == want
}

// Relation is a device pose plus its first derivatives, sampled at one
// instant. Velocities are expressed in the same space as the pose:
// linear in meters per second, angular in radians per second.
type Relation struct {
	Pose            xrmath.Pose
	LinearVelocity  xrmath.Vec3
	AngularVelocity xrmath.Vec3
	Flags           RelationFlags
}

// Device is a tracked display device. All methods must be safe for
// concurrent use; the session engine calls them from the frame loop.
//
// Timestamps are nanoseconds in the engine's external time domain.
type Device interface {
	// Name returns a human-readable device name for logs.
	Name() string

	// RelationAt samples the relation of the given input no later than
	// the requested time. It returns the timestamp the sample actually
	// corresponds to; prediction from that instant to the requested one
	// is the caller's job. Sampling never fails: unknown data is
	// reported through the relation flags.
	RelationAt(kind InputKind, at int64) (sampledAt int64, rel Relation)

	// ViewPose returns the pose of one view (eye) relative to the device
	// origin. eyeOffset carries the full inter-pupillary distance on X;
	// the device derives the per-view half offset from it.
	ViewPose(eyeOffset xrmath.Vec3, viewIndex uint32) xrmath.Pose

	// ViewFov returns the display field of view of one view.
	ViewFov(viewIndex uint32) xrmath.Fov

	// TrackingOriginOffset returns the pose of the device's tracking
	// origin in the global space. Layer poses are submitted relative to
	// the tracking origin, so the engine applies the inverse of this
	// offset once per frame.
	TrackingOriginOffset() xrmath.Pose
}
