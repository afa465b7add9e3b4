// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sim provides a simulated head device: a device.Device whose
// pose, velocities and tracking origin are set by the host instead of
// sampled from hardware. It backs tests, examples, and headless
// development where no headset exists.
package sim

import (
	"math"
	"sync"
	"time"

	"github.com/gogpu/xr/device"
	"github.com/gogpu/xr/xrmath"
)

// defaultFov is a symmetric 90-degree field of view.
func defaultFov() xrmath.Fov {
	quarter := float32(math.Pi / 4)
	return xrmath.Fov{
		AngleLeft:  -quarter,
		AngleRight: quarter,
		AngleUp:    quarter,
		AngleDown:  -quarter,
	}
}

// Option configures a Head.
type Option func(*Head)

// WithName sets the device name reported in logs.
func WithName(name string) Option {
	return func(h *Head) {
		if name != "" {
			h.name = name
		}
	}
}

// WithFov sets the field of view of both views.
func WithFov(fov xrmath.Fov) Option {
	return func(h *Head) {
		h.fov = [2]xrmath.Fov{fov, fov}
	}
}

// WithSampleLatency makes the device report samples as taken that long
// before the requested time, the way a real tracker lags the caller.
// The engine's pose predictor bridges the gap.
func WithSampleLatency(d time.Duration) Option {
	return func(h *Head) {
		if d > 0 {
			h.latency = d.Nanoseconds()
		}
	}
}

// Head is a simulated head-mounted display. It is safe for concurrent
// use; the session engine samples it from the frame loop while the host
// drives it from its own goroutine.
type Head struct {
	name    string
	latency int64
	fov     [2]xrmath.Fov

	mu       sync.RWMutex
	relation device.Relation
	origin   xrmath.Pose
}

// NewHead returns a head resting at the origin, looking down -Z, with
// valid and tracked orientation and position.
func NewHead(opts ...Option) *Head {
	h := &Head{
		name: "simulated-head",
		fov:  [2]xrmath.Fov{defaultFov(), defaultFov()},
		relation: device.Relation{
			Pose: xrmath.PoseIdentity(),
			Flags: device.RelationOrientationValid |
				device.RelationPositionValid |
				device.RelationOrientationTracked |
				device.RelationPositionTracked,
		},
		origin: xrmath.PoseIdentity(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements device.Device.
func (h *Head) Name() string { return h.name }

// RelationAt implements device.Device. The simulated tracker holds the
// last pose the host set; the sample timestamp trails the request by
// the configured latency.
func (h *Head) RelationAt(_ device.InputKind, at int64) (int64, device.Relation) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return at - h.latency, h.relation
}

// ViewPose implements device.Device. The simulated display has parallel
// views offset half the inter-pupillary distance along X, left eye
// first.
func (h *Head) ViewPose(eyeOffset xrmath.Vec3, viewIndex uint32) xrmath.Pose {
	pose := xrmath.PoseIdentity()
	half := eyeOffset.X / 2
	if viewIndex == 0 {
		half = -half
	}
	pose.Position.X = half
	return pose
}

// ViewFov implements device.Device.
func (h *Head) ViewFov(viewIndex uint32) xrmath.Fov {
	return h.fov[viewIndex%2]
}

// TrackingOriginOffset implements device.Device.
func (h *Head) TrackingOriginOffset() xrmath.Pose {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.origin
}

// SetPose moves the head. Velocities and flags are unchanged.
func (h *Head) SetPose(pose xrmath.Pose) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.relation.Pose = pose
}

// SetAngularVelocity sets the head's angular velocity in radians per
// second and marks it valid, which arms the engine's orientation
// prediction.
func (h *Head) SetAngularVelocity(v xrmath.Vec3) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.relation.AngularVelocity = v
	h.relation.Flags |= device.RelationAngularVelocityValid
}

// SetRelation replaces the sampled relation wholesale, flags included.
func (h *Head) SetRelation(rel device.Relation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.relation = rel
}

// SetTrackingOriginOffset places the device's tracking origin in the
// global space.
func (h *Head) SetTrackingOriginOffset(pose xrmath.Pose) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.origin = pose
}

// Relation returns the relation the next sample will report.
func (h *Head) Relation() device.Relation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.relation
}

var _ device.Device = (*Head)(nil)
