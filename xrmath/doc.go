// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package xrmath provides the small linear-algebra kit used by the XR
// session and frame engine: 3D vectors, quaternions, rigid poses and
// display fields of view.
//
// All types use float32 components to match GPU-facing layouts. Angles are
// radians. Quaternions are (X, Y, Z, W) with W the scalar part; poses
// compose left to right, so a.Transform(b) applies b within a's frame.
//
// Validation helpers (Vec3.Valid, Quat.Valid, Pose.Valid) exist for
// defensively checking caller-supplied data on hot paths; they reject
// non-finite components and, for quaternions, denormalized values.
package xrmath
