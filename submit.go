// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"github.com/gogpu/xr/compositor"
	"github.com/gogpu/xr/xrmath"
)

// Submission runs only after every layer in the batch verified. The
// caller computed invOffset once for the frame: the inverse of the head
// device's tracking-origin offset, bringing caller poses back into
// tracking space before the compositor sees them.

func (l *QuadLayer) submit(s *Session, invOffset xrmath.Pose, at Time) error {
	sc, ok := s.sys.rt.Swapchain(l.SubImage.Swapchain)
	if !ok {
		return errorf(ErrRuntimeFailure,
			"quad layer swapchain vanished between verify and submit")
	}

	pose := invOffset.Transform(l.Pose)

	desc := compositor.QuadLayerDesc{
		DisplayTime:     int64(at),
		Head:            s.sys.head,
		Flags:           l.Flags,
		Visibility:      l.Visibility,
		Swapchain:       sc.Comp,
		ImageIndex:      sc.ReleasedIndex,
		ImageRect:       l.SubImage.ImageRect,
		ImageArrayIndex: l.SubImage.ImageArrayIndex,
		Pose:            pose,
		Size:            l.Size,
	}
	if err := s.comp.LayerQuad(&desc); err != nil {
		return errorf(ErrRuntimeFailure, "compositor quad layer: %v", err)
	}
	return nil
}

func (l *ProjectionLayer) submit(s *Session, invOffset xrmath.Pose, at Time) error {
	var views [sessionViewCount]compositor.ProjectionViewDesc
	for i := range views {
		view := &l.Views[i]
		sc, ok := s.sys.rt.Swapchain(view.SubImage.Swapchain)
		if !ok {
			return errorf(ErrRuntimeFailure,
				"projection layer swapchain vanished between verify and submit")
		}
		views[i] = compositor.ProjectionViewDesc{
			Swapchain:       sc.Comp,
			ImageIndex:      sc.ReleasedIndex,
			ImageRect:       view.SubImage.ImageRect,
			ImageArrayIndex: view.SubImage.ImageArrayIndex,
			Fov:             view.Fov,
			Pose:            invOffset.Transform(view.Pose),
		}
	}

	desc := compositor.ProjectionLayerDesc{
		DisplayTime: int64(at),
		Head:        s.sys.head,
		Left:        views[0],
		Right:       views[1],
	}
	if err := s.comp.LayerStereoProjection(&desc); err != nil {
		return errorf(ErrRuntimeFailure, "compositor stereo projection layer: %v", err)
	}
	return nil
}
