// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"github.com/gogpu/xr/device"
	"github.com/gogpu/xr/xrmath"
)

// sessionViewCount is the number of views a stereo view locate fills.
const sessionViewCount = 2

// ViewStateFlags qualify the poses returned by LocateViews.
type ViewStateFlags uint32

const (
	// ViewOrientationValid is set when view orientations are usable.
	ViewOrientationValid ViewStateFlags = 1 << iota

	// ViewPositionValid is set when view positions are usable.
	ViewPositionValid

	// ViewOrientationTracked is set when orientations come from live
	// tracking.
	ViewOrientationTracked

	// ViewPositionTracked is set when positions come from live
	// tracking.
	ViewPositionTracked
)

// ViewState qualifies one LocateViews result as a whole.
type ViewState struct {
	Flags ViewStateFlags
}

// View is one located view: where to render from and with what
// projection.
type View struct {
	Pose xrmath.Pose
	Fov  xrmath.Fov
}

// ViewLocateInfo parameterizes LocateViews.
type ViewLocateInfo struct {
	// Space is the base space the view poses are expressed in.
	Space SpaceHandle

	// DisplayTime is when the rendered views will be displayed.
	DisplayTime Time
}

// headRelationAt samples the head pose and brings it into the global
// space by applying the tracking-origin offset.
func (s *Session) headRelationAt(at Time) (Time, device.Relation) {
	xdev := s.sys.head
	sampledAt, rel := xdev.RelationAt(device.InputHeadPose, int64(at))
	rel.Pose = xdev.TrackingOriginOffset().Transform(rel.Pose)
	return Time(sampledAt), rel
}

// GetViewPoseAt returns the head pose predicted for the given display
// time, in global space.
func (s *Session) GetViewPoseAt(at Time) (xrmath.Pose, Result, error) {
	sampledAt, rel := s.headRelationAt(at)
	pose := s.predictPose(rel, sampledAt, at)
	return pose, s.successResult(), nil
}

// viewSpacePose returns the pose of the view space expressed in the
// given base reference space at the requested time.
func (s *Session) viewSpacePose(at Time, baseType ReferenceSpaceType) (xrmath.Pose, Result, error) {
	switch baseType {
	case SpaceView:
		return xrmath.PoseIdentity(), s.successResult(), nil
	case SpaceLocal, SpaceStage:
		return s.GetViewPoseAt(at)
	default:
		return xrmath.PoseIdentity(), s.successResult(), nil
	}
}

// LocateViews fills views with the per-eye poses and fields of view for
// rendering at info.DisplayTime, expressed in info.Space, and returns
// how many views the system renders. An empty views slice queries the
// required size; a non-empty slice that is too small fails with
// SizeInsufficient.
//
// Only reference spaces participate: a non-reference base space yields
// zero view-state flags and no views.
func (s *Session) LocateViews(info *ViewLocateInfo, views []View) (ViewState, int, Result, error) {
	if info == nil {
		return ViewState{}, 0, ErrValidationFailure, errorf(ErrValidationFailure, "viewLocateInfo is nil")
	}
	baseSpc, ok := s.sys.rt.Space(info.Space)
	if !ok {
		return ViewState{}, 0, ErrValidationFailure, errorf(ErrValidationFailure,
			"(viewLocateInfo.Space == %#x) space handle is invalid", uint64(info.Space))
	}

	if !baseSpc.IsReference {
		return ViewState{}, 0, s.successResult(), nil
	}

	// Start two call handling.
	if len(views) == 0 {
		return ViewState{}, sessionViewCount, s.successResult(), nil
	}
	if len(views) < sessionViewCount {
		return ViewState{}, sessionViewCount, ErrSizeInsufficient, errorf(ErrSizeInsufficient,
			"(len(views) == %d) need %d", len(views), sessionViewCount)
	}
	// End two call handling.

	if s.debugViews {
		Logger().Debug("locate views", "session", s.id, "display_time", info.DisplayTime)
	}

	// Pose of the view space in the base space.
	pure, _, err := s.viewSpacePose(info.DisplayTime, baseSpc.Type)
	if err != nil {
		return ViewState{}, 0, ResultOf(err), err
	}

	xdev := s.sys.head
	for i := uint32(0); i < sessionViewCount; i++ {
		eyeRelation := xrmath.V3(s.ipd, 0, 0)

		viewPose := xdev.ViewPose(eyeRelation, i)

		views[i].Pose = xrmath.Locate(viewPose, pure, baseSpc.Pose)
		views[i].Fov = xdev.ViewFov(i)

		if s.debugViews {
			Logger().Debug("located view",
				"session", s.id,
				"view", i,
				"pose", views[i].Pose,
				"fov", views[i].Fov)
		}
	}

	state := ViewState{Flags: ViewOrientationValid | ViewPositionValid}
	return state, sessionViewCount, s.successResult(), nil
}
