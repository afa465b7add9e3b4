// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xrmath

import "math"

// quatNormEpsilon is the tolerance applied when checking that a quaternion
// is normalized. Caller-supplied orientations accumulate float error over
// repeated composition, so the bound is deliberately loose.
const quatNormEpsilon = 1e-3

// Quat is a rotation quaternion with W as the scalar component.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns the rotation of angle radians around axis.
// The axis does not need to be normalized.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	n := axis.Normalize()
	half := float64(angle) / 2
	s := float32(math.Sin(half))
	return Quat{
		X: n.X * s,
		Y: n.Y * s,
		Z: n.Z * s,
		W: float32(math.Cos(half)),
	}
}

// Mul returns the Hamilton product q*r: the rotation r followed by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conjugate returns the conjugate of the quaternion.
// For a unit quaternion this is the inverse rotation.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*qv x (qv x v + w*v), the expanded sandwich product.
	qv := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := qv.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(qv.Cross(t))
}

// Norm returns the Euclidean norm of the quaternion's four components.
func (q Quat) Norm() float32 {
	return float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
}

// Normalize returns the quaternion scaled to unit norm.
// Returns the identity if the norm is zero.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return QuatIdentity()
	}
	return Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Valid reports whether the quaternion is finite and normalized within
// quatNormEpsilon. Orientation fields in composition layers must pass this
// check before submission.
func (q Quat) Valid() bool {
	if !isFinite(q.X) || !isFinite(q.Y) || !isFinite(q.Z) || !isFinite(q.W) {
		return false
	}
	return abs(q.Norm()-1) <= quatNormEpsilon
}

// IntegrateVelocity advances the rotation by an angular velocity (rad/s,
// world frame) applied for dt seconds, using first-order quaternion
// integration with a small-angle fast path. The result is normalized.
// A zero velocity or interval returns q exactly.
func (q Quat) IntegrateVelocity(angularVelocity Vec3, dt float32) Quat {
	if angularVelocity.IsZero() || dt == 0 {
		return q
	}

	theta := angularVelocity.Scale(dt / 2)
	thetaMagSq := float64(theta.LengthSq())

	var delta Quat
	var s float32
	if thetaMagSq*thetaMagSq/24 < 1e-7 {
		// Small rotation: second-order Taylor expansion avoids the
		// sin/ sqrt round trip near zero.
		delta.W = float32(1 - thetaMagSq/2)
		s = float32(1 - thetaMagSq/6)
	} else {
		thetaMag := math.Sqrt(thetaMagSq)
		delta.W = float32(math.Cos(thetaMag))
		s = float32(math.Sin(thetaMag) / thetaMag)
	}
	delta.X = theta.X * s
	delta.Y = theta.Y * s
	delta.Z = theta.Z * s

	return delta.Mul(q).Normalize()
}

// Approx returns true if two quaternions are approximately equal within
// epsilon, component-wise. Note q and -q denote the same rotation but do
// not compare equal here.
func (q Quat) Approx(r Quat, epsilon float32) bool {
	return abs(q.X-r.X) < epsilon &&
		abs(q.Y-r.Y) < epsilon &&
		abs(q.Z-r.Z) < epsilon &&
		abs(q.W-r.W) < epsilon
}
