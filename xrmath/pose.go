// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xrmath

// Pose is a rigid transform: a rotation followed by a translation.
// It carries device and layer placements through the engine.
type Pose struct {
	Orientation Quat
	Position    Vec3
}

// PoseIdentity returns the identity pose.
func PoseIdentity() Pose {
	return Pose{Orientation: QuatIdentity()}
}

// Transform composes two poses: the result applies b within p's frame,
// matching matrix multiplication order p * b.
func (p Pose) Transform(b Pose) Pose {
	return Pose{
		Orientation: p.Orientation.Mul(b.Orientation),
		Position:    p.Position.Add(p.Orientation.Rotate(b.Position)),
	}
}

// Invert returns the inverse pose, assuming a unit orientation.
func (p Pose) Invert() Pose {
	conj := p.Orientation.Conjugate()
	return Pose{
		Orientation: conj,
		Position:    conj.Rotate(p.Position).Neg(),
	}
}

// Valid reports whether the orientation is a valid unit quaternion and the
// position is finite.
func (p Pose) Valid() bool {
	return p.Orientation.Valid() && p.Position.Valid()
}

// Approx returns true if two poses are approximately equal within epsilon.
func (p Pose) Approx(b Pose, epsilon float32) bool {
	return p.Orientation.Approx(b.Orientation, epsilon) && p.Position.Approx(b.Position, epsilon)
}

// Locate expresses a view pose within a base space: it composes
// relativePose*spacePose and rebases the result into the frame of
// baseSpacePose. Used when locating per-eye views against an
// application-chosen reference space.
func Locate(spacePose, relativePose, baseSpacePose Pose) Pose {
	return baseSpacePose.Invert().Transform(relativePose.Transform(spacePose))
}
