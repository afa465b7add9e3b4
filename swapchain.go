// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/compositor"
)

// noReleasedImage is the ReleasedIndex value meaning the application has
// not released any image for presentation yet.
const noReleasedImage int32 = -1

// Swapchain is the engine-side record of an image ring: the presentable
// images live with the compositor, the bookkeeping the layer validator
// needs lives here.
type Swapchain struct {
	// Comp is the compositor-side ring the images belong to.
	Comp compositor.Swapchain

	// Format is the pixel format the ring was created with.
	Format gputypes.TextureFormat

	// Width and Height are the per-image dimensions in pixels.
	Width, Height uint32

	// ArraySize is the number of array slices per image.
	ArraySize uint32

	// ImageCount is the number of images in the ring.
	ImageCount uint32

	// ReleasedIndex is the image most recently released for
	// presentation, or -1 when none is. It must never reach ImageCount;
	// the validator treats that as an engine fault.
	ReleasedIndex int32
}

// NewSwapchain wraps a compositor ring for registration with a Runtime.
func NewSwapchain(comp compositor.Swapchain, format gputypes.TextureFormat, width, height, arraySize uint32) *Swapchain {
	count := uint32(0)
	if comp != nil {
		count = comp.ImageCount()
	}
	return &Swapchain{
		Comp:          comp,
		Format:        format,
		Width:         width,
		Height:        height,
		ArraySize:     arraySize,
		ImageCount:    count,
		ReleasedIndex: noReleasedImage,
	}
}

// Release marks index as the image to present next. It mirrors the
// acquire/wait/release cycle's final step; the earlier steps do not
// involve the session engine.
func (s *Swapchain) Release(index int32) {
	s.ReleasedIndex = index
}
