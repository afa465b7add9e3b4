// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"github.com/gogpu/xr/compositor"
	"github.com/gogpu/xr/xrmath"
)

// CompositionLayer is one unit of visual content submitted at frame end.
// The variant set is closed and each variant carries its own validation
// and submission, so a new layer kind cannot compile without both.
//
// Layers are caller-owned and read only for the duration of the EndFrame
// call that receives them; the engine never retains them.
type CompositionLayer interface {
	// verify checks the layer against the current swapchain and space
	// state. It mutates nothing.
	verify(s *Session, layerIndex int) error

	// submit hands the validated layer to the compositor, with the
	// inverse tracking-origin offset applied to every pose it carries.
	submit(s *Session, invOffset xrmath.Pose, at Time) error
}

// SwapchainSubImage selects what part of a swapchain a layer reads.
type SwapchainSubImage struct {
	// Swapchain is the image ring to present from.
	Swapchain SwapchainHandle

	// ImageRect is the sub-rectangle of the image to sample.
	ImageRect compositor.Rect

	// ImageArrayIndex selects the array slice for layered images.
	ImageArrayIndex uint32
}

// QuadLayer is a flat textured rectangle placed in a space.
type QuadLayer struct {
	// Space is the space the pose is expressed in.
	Space SpaceHandle

	// Flags carries composition hints.
	Flags compositor.LayerFlags

	// Visibility selects which eye(s) see the quad.
	Visibility compositor.EyeVisibility

	// SubImage is the swapchain content to show.
	SubImage SwapchainSubImage

	// Pose places the quad's center in Space.
	Pose xrmath.Pose

	// Size is the quad's width and height in meters.
	Size xrmath.Vec2
}

// ProjectionView is one eye of a projection layer.
type ProjectionView struct {
	// Pose is the view pose the eye was rendered from.
	Pose xrmath.Pose

	// Fov is the field of view the eye was rendered with.
	Fov xrmath.Fov

	// SubImage is the rendered swapchain content.
	SubImage SwapchainSubImage
}

// ProjectionLayer is a head-locked planar projection, one view per eye.
type ProjectionLayer struct {
	// Space is the space the view poses are expressed in.
	Space SpaceHandle

	// Flags carries composition hints.
	Flags compositor.LayerFlags

	// Views holds exactly two entries, left then right.
	Views []ProjectionView
}

// verifySpace rejects layers whose target space does not resolve.
func (s *Session) verifySpace(layerIndex int, h SpaceHandle) error {
	if _, ok := s.sys.rt.Space(h); !ok {
		return errorf(ErrValidationFailure,
			"(layers[%d].Space == %#x) space handle must resolve to a live space",
			layerIndex, uint64(h))
	}
	return nil
}

func (l *QuadLayer) verify(s *Session, layerIndex int) error {
	if l == nil {
		return errorf(ErrLayerInvalid, "(layers[%d] == nil) layer can not be nil", layerIndex)
	}

	sc, ok := s.sys.rt.Swapchain(l.SubImage.Swapchain)
	if !ok {
		return errorf(ErrLayerInvalid,
			"(layers[%d].SubImage.Swapchain) swapchain handle is invalid", layerIndex)
	}

	if err := s.verifySpace(layerIndex, l.Space); err != nil {
		return err
	}

	if !l.Pose.Orientation.Valid() {
		q := l.Pose.Orientation
		return errorf(ErrPoseInvalid,
			"(layers[%d].Pose.Orientation == {%f %f %f %f}) is not a valid quat",
			layerIndex, q.X, q.Y, q.Z, q.W)
	}

	if !l.Pose.Position.Valid() {
		p := l.Pose.Position
		return errorf(ErrPoseInvalid,
			"(layers[%d].Pose.Position == {%f %f %f}) is not valid",
			layerIndex, p.X, p.Y, p.Z)
	}

	if sc.ReleasedIndex < 0 {
		return errorf(ErrLayerInvalid,
			"(layers[%d].SubImage.Swapchain) swapchain has not been released",
			layerIndex)
	}

	if uint32(sc.ReleasedIndex) >= sc.ImageCount {
		return errorf(ErrRuntimeFailure,
			"(layers[%d].SubImage.Swapchain) internal image index out of bounds",
			layerIndex)
	}

	if l.SubImage.ImageRect.X < 0 || l.SubImage.ImageRect.Y < 0 {
		return errorf(ErrSwapchainRectInvalid,
			"image rect offset is negative for layer %d", layerIndex)
	}

	// The rect offset is in normalized coordinates, so anything at or
	// past 1 selects nothing.
	if l.SubImage.ImageRect.X >= 1 || l.SubImage.ImageRect.Y >= 1 {
		return errorf(ErrSwapchainRectInvalid,
			"image rect offset out of bounds for layer %d", layerIndex)
	}

	return nil
}

func (l *ProjectionLayer) verify(s *Session, layerIndex int) error {
	if l == nil {
		return errorf(ErrLayerInvalid, "(layers[%d] == nil) layer can not be nil", layerIndex)
	}

	if err := s.verifySpace(layerIndex, l.Space); err != nil {
		return err
	}

	if len(l.Views) != sessionViewCount {
		return errorf(ErrValidationFailure,
			"(layers[%d].Views length == %d) must be %d",
			layerIndex, len(l.Views), sessionViewCount)
	}

	// Check for valid swapchain states.
	for i := range l.Views {
		view := &l.Views[i]

		if !view.Pose.Orientation.Valid() {
			q := view.Pose.Orientation
			return errorf(ErrPoseInvalid,
				"(layers[%d].Views[%d].Pose.Orientation == {%f %f %f %f}) is not a valid quat",
				layerIndex, i, q.X, q.Y, q.Z, q.W)
		}

		if !view.Pose.Position.Valid() {
			p := view.Pose.Position
			return errorf(ErrPoseInvalid,
				"(layers[%d].Views[%d].Pose.Position == {%f %f %f}) is not valid",
				layerIndex, i, p.X, p.Y, p.Z)
		}

		sc, ok := s.sys.rt.Swapchain(view.SubImage.Swapchain)
		if !ok {
			return errorf(ErrLayerInvalid,
				"(layers[%d].Views[%d].SubImage.Swapchain) swapchain handle is invalid",
				layerIndex, i)
		}

		if sc.ReleasedIndex < 0 {
			return errorf(ErrLayerInvalid,
				"(layers[%d].Views[%d].SubImage.Swapchain) swapchain has not been released",
				layerIndex, i)
		}

		if uint32(sc.ReleasedIndex) >= sc.ImageCount {
			return errorf(ErrRuntimeFailure,
				"(layers[%d].Views[%d].SubImage.Swapchain) internal image index out of bounds",
				layerIndex, i)
		}
	}

	return nil
}
