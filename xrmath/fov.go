// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xrmath

// Fov is an asymmetric display frustum given as four half-angles in
// radians. Left and down are typically negative.
type Fov struct {
	AngleLeft  float32
	AngleRight float32
	AngleUp    float32
	AngleDown  float32
}

// Valid reports whether all angles are finite and the left/right and
// down/up pairs are ordered.
func (f Fov) Valid() bool {
	if !isFinite(f.AngleLeft) || !isFinite(f.AngleRight) ||
		!isFinite(f.AngleUp) || !isFinite(f.AngleDown) {
		return false
	}
	return f.AngleLeft < f.AngleRight && f.AngleDown < f.AngleUp
}
