// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/device"
	"github.com/gogpu/xr/xrmath"
)

// Common compositor errors.
var (
	// ErrSessionNotBegun is returned when frame or layer operations are
	// called before BeginSession.
	ErrSessionNotBegun = errors.New("compositor: session not begun")

	// ErrDestroyed is returned when operations are called after Destroy.
	ErrDestroyed = errors.New("compositor: destroyed")
)

// ViewType selects the view arrangement a session renders for.
type ViewType int32

const (
	// ViewTypeMono is a single undistorted view.
	ViewTypeMono ViewType = iota + 1

	// ViewTypeStereo is one view per eye.
	ViewTypeStereo
)

// String returns the view type name.
func (v ViewType) String() string {
	switch v {
	case ViewTypeMono:
		return "mono"
	case ViewTypeStereo:
		return "stereo"
	default:
		return "unknown"
	}
}

// BlendMode describes how rendered content is blended with the user's view
// of the physical world. Values are single bits so a device can advertise
// the set it supports as a [BlendModeSet].
type BlendMode uint32

const (
	// BlendModeOpaque replaces the environment entirely (VR).
	BlendModeOpaque BlendMode = 1 << iota

	// BlendModeAdditive adds rendered light on top of the environment
	// (optical see-through AR).
	BlendModeAdditive

	// BlendModeAlphaBlend alpha-composites rendered content over a camera
	// feed (video pass-through AR).
	BlendModeAlphaBlend
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendModeOpaque:
		return "opaque"
	case BlendModeAdditive:
		return "additive"
	case BlendModeAlphaBlend:
		return "alpha-blend"
	default:
		return "unknown"
	}
}

// BlendModeSet is a bitmask of supported blend modes.
type BlendModeSet uint32

// Has reports whether the set contains the given mode.
func (s BlendModeSet) Has(m BlendMode) bool {
	return uint32(s)&uint32(m) != 0
}

// EyeVisibility selects which eye(s) a quad layer is shown to.
type EyeVisibility int32

const (
	// EyeVisibilityBoth shows the layer to both eyes.
	EyeVisibilityBoth EyeVisibility = iota

	// EyeVisibilityLeft shows the layer to the left eye only.
	EyeVisibilityLeft

	// EyeVisibilityRight shows the layer to the right eye only.
	EyeVisibilityRight
)

// LayerFlags carries per-layer composition hints.
type LayerFlags uint64

const (
	// LayerFlagCorrectChromaticAberration requests chromatic aberration
	// correction while compositing the layer.
	LayerFlagCorrectChromaticAberration LayerFlags = 1 << iota

	// LayerFlagBlendTextureSourceAlpha blends using the texture's alpha
	// channel instead of treating it as opaque.
	LayerFlagBlendTextureSourceAlpha

	// LayerFlagUnpremultipliedAlpha marks the texture alpha as not
	// premultiplied.
	LayerFlagUnpremultipliedAlpha
)

// Rect is an integer sub-rectangle of a swapchain image, offset in the
// image's coordinate space.
type Rect struct {
	X, Y          int32
	Width, Height uint32
}

// Swapchain is the compositor-side face of a swapchain: a ring of
// presentable images owned by the presentation backend. The engine only
// needs the ring size; everything else stays behind the implementation.
type Swapchain interface {
	// ImageCount returns the number of images in the ring.
	ImageCount() uint32
}

// QuadLayerDesc is one validated quad layer, ready for composition.
// Poses have already been corrected for the tracking-origin offset.
type QuadLayerDesc struct {
	// DisplayTime is the target display time in external timestamp ns.
	DisplayTime int64

	// Head is the device whose view the layer is composed for. A
	// latching compositor may re-sample it closer to display time.
	Head device.Device

	// Flags carries the caller's composition hints.
	Flags LayerFlags

	// Visibility selects the eye(s) the quad is composed for.
	Visibility EyeVisibility

	// Swapchain is the image ring to read from.
	Swapchain Swapchain

	// ImageIndex is the released image inside the ring.
	ImageIndex int32

	// ImageRect is the sub-rectangle of the image to sample.
	ImageRect Rect

	// ImageArrayIndex selects the array slice for layered images.
	ImageArrayIndex uint32

	// Pose places the quad, already in tracking-origin space.
	Pose xrmath.Pose

	// Size is the quad's world-space width and height in meters.
	Size xrmath.Vec2
}

// ProjectionViewDesc is one eye of a stereo projection layer.
type ProjectionViewDesc struct {
	Swapchain       Swapchain
	ImageIndex      int32
	ImageRect       Rect
	ImageArrayIndex uint32
	Fov             xrmath.Fov
	Pose            xrmath.Pose
}

// ProjectionLayerDesc is one validated stereo projection layer. Left and
// right are always populated, in that order.
type ProjectionLayerDesc struct {
	// DisplayTime is the target display time in external timestamp ns.
	DisplayTime int64

	// Head is the device whose view the layer is composed for.
	Head device.Device

	// Flags carries the caller's composition hints.
	Flags LayerFlags

	// Left and Right are the per-eye views.
	Left, Right ProjectionViewDesc
}

// Compositor paces frames against a display and accepts validated layers
// for presentation. Implementations may run the actual presentation on
// another thread or in another process; all methods here are driven from
// the session's single application thread.
//
// WaitFrame is the only method that intentionally blocks: it suspends the
// caller until the next pacing slot, up to roughly one refresh interval.
type Compositor interface {
	// BeginSession prepares the compositor for a session rendering the
	// given view arrangement.
	BeginSession(viewType ViewType) error

	// EndSession tears down per-session compositor state.
	EndSession() error

	// WaitFrame blocks until the next frame pacing slot and returns the
	// predicted display time and period in monotonic ns.
	WaitFrame() (displayTime, displayPeriod int64, err error)

	// BeginFrame marks the start of the application's rendering work for
	// the frame most recently returned by WaitFrame.
	BeginFrame() error

	// DiscardFrame abandons the in-flight frame without presenting.
	DiscardFrame() error

	// LayerBegin opens a layer batch for the current frame using the
	// given environment blend mode.
	LayerBegin(mode BlendMode) error

	// LayerQuad appends a quad layer to the open batch.
	LayerQuad(desc *QuadLayerDesc) error

	// LayerStereoProjection appends a stereo projection layer to the
	// open batch.
	LayerStereoProjection(desc *ProjectionLayerDesc) error

	// LayerCommit closes the batch and schedules it for presentation.
	LayerCommit() error

	// Poll gives the compositor a chance to process pending backend
	// events; it never blocks.
	Poll()

	// Formats returns the swapchain pixel formats the compositor can
	// present, in preference order.
	Formats() []gputypes.TextureFormat

	// Destroy releases the compositor and everything it owns. The
	// compositor must not be used afterwards.
	Destroy() error
}
