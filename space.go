// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import "github.com/gogpu/xr/xrmath"

// ReferenceSpaceType identifies a well-known coordinate space.
type ReferenceSpaceType int32

const (
	// SpaceView is rigidly attached to the user's head.
	SpaceView ReferenceSpaceType = iota + 1

	// SpaceLocal is a seated-scale space anchored near the user's
	// starting position.
	SpaceLocal

	// SpaceStage is a standing-scale space anchored to the floor.
	SpaceStage
)

// String returns the space type name.
func (t ReferenceSpaceType) String() string {
	switch t {
	case SpaceView:
		return "view"
	case SpaceLocal:
		return "local"
	case SpaceStage:
		return "stage"
	default:
		return "unknown"
	}
}

// Space is a coordinate space layers and views are expressed in. A
// reference space is anchored to one of the well-known origins with a
// fixed offset pose; a non-reference space tracks something else (an
// action space) and does not participate in view-locate composition.
type Space struct {
	// IsReference marks the space as one of the well-known reference
	// spaces.
	IsReference bool

	// Type is the reference space kind. Meaningless when IsReference
	// is false.
	Type ReferenceSpaceType

	// Pose is the space's fixed offset from its origin.
	Pose xrmath.Pose
}

// NewReferenceSpace returns a reference space of the given type offset
// by pose.
func NewReferenceSpace(t ReferenceSpaceType, pose xrmath.Pose) *Space {
	return &Space{IsReference: true, Type: t, Pose: pose}
}
