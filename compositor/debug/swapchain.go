// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package debug

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/xr/compositor"
)

// Swapchain is an in-memory image ring. Applications render into the
// images with the standard image/draw tools; the compositor reads the
// image a layer's ImageIndex points at.
type Swapchain struct {
	format gputypes.TextureFormat
	images []*image.RGBA
}

// NewSwapchain returns a ring of imageCount RGBA images of the given
// size. The format is bookkeeping only; pixels are always 8-bit RGBA.
func NewSwapchain(format gputypes.TextureFormat, width, height, imageCount uint32) *Swapchain {
	images := make([]*image.RGBA, imageCount)
	for i := range images {
		images[i] = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	}
	return &Swapchain{format: format, images: images}
}

// ImageCount implements compositor.Swapchain.
func (s *Swapchain) ImageCount() uint32 { return uint32(len(s.images)) }

// Format returns the format the ring was created with.
func (s *Swapchain) Format() gputypes.TextureFormat { return s.format }

// Image returns the i'th image of the ring for rendering or inspection.
func (s *Swapchain) Image(i int) *image.RGBA {
	if i < 0 || i >= len(s.images) {
		return nil
	}
	return s.images[i]
}

// sourceRect resolves a layer's image rect against an image's bounds. A
// zero-size rect selects the whole image.
func sourceRect(img *image.RGBA, r compositor.Rect) image.Rectangle {
	if r.Width == 0 || r.Height == 0 {
		return img.Bounds()
	}
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height)).
		Intersect(img.Bounds())
}

// layerImage pulls the presentable image a layer submission points at.
func layerImage(sc compositor.Swapchain, index int32) *image.RGBA {
	ring, ok := sc.(*Swapchain)
	if !ok || index < 0 {
		return nil
	}
	return ring.Image(int(index))
}

// CompositeRGBA flattens the most recently committed batch into dst,
// oldest layer first. Projection layers split dst into left and right
// halves; quad layers cover the half their eye visibility selects, or
// all of dst when visible to both. Opaque batches start from black.
//
// This is a debug view, not a lens-corrected render: geometry poses are
// ignored and images are scaled with Catmull-Rom interpolation.
func (c *Compositor) CompositeRGBA(dst *image.RGBA) {
	batch, ok := c.LastBatch()
	if !ok {
		return
	}

	if batch.BlendMode == compositor.BlendModeOpaque {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	}

	b := dst.Bounds()
	mid := b.Min.X + b.Dx()/2
	left := image.Rect(b.Min.X, b.Min.Y, mid, b.Max.Y)
	right := image.Rect(mid, b.Min.Y, b.Max.X, b.Max.Y)

	for _, layer := range batch.Layers {
		switch {
		case layer.Quad != nil:
			q := layer.Quad
			img := layerImage(q.Swapchain, q.ImageIndex)
			if img == nil {
				continue
			}
			src := sourceRect(img, q.ImageRect)
			switch q.Visibility {
			case compositor.EyeVisibilityLeft:
				xdraw.CatmullRom.Scale(dst, left, img, src, xdraw.Over, nil)
			case compositor.EyeVisibilityRight:
				xdraw.CatmullRom.Scale(dst, right, img, src, xdraw.Over, nil)
			default:
				xdraw.CatmullRom.Scale(dst, b, img, src, xdraw.Over, nil)
			}

		case layer.Projection != nil:
			p := layer.Projection
			if img := layerImage(p.Left.Swapchain, p.Left.ImageIndex); img != nil {
				xdraw.CatmullRom.Scale(dst, left, img, sourceRect(img, p.Left.ImageRect), xdraw.Over, nil)
			}
			if img := layerImage(p.Right.Swapchain, p.Right.ImageIndex); img != nil {
				xdraw.CatmullRom.Scale(dst, right, img, sourceRect(img, p.Right.ImageRect), xdraw.Over, nil)
			}
		}
	}
}
