// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/xr"
	"github.com/gogpu/xr/compositor"
	"github.com/gogpu/xr/compositor/debug"
)

// defaultDeviceLabel names session devices in backend diagnostics when
// the binding does not.
const defaultDeviceLabel = "xr-wgpu-device"

// Compositor is a compositor.Compositor backed by a WebGPU device.
//
// The device is either owned (created by New, released by Destroy) or
// borrowed from a gpucontext.DeviceProvider (NewShared), in which case
// Destroy never touches it. Layer batches are recorded through an
// in-memory recorder until the core render-pass bridge lands; the
// queue and the compiled blit shader are staged for that path.
type Compositor struct {
	mu sync.Mutex

	owned    bool
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID
	provider gpucontext.DeviceProvider

	info      *GPUInfo
	blitSPIRV []uint32

	recorder  *debug.Compositor
	destroyed bool
}

var _ compositor.Compositor = (*Compositor)(nil)

// presentFormats returns the swapchain formats presentation supports,
// in preference order. Native surfaces prefer BGRA8.
func presentFormats() []gputypes.TextureFormat {
	return []gputypes.TextureFormat{
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatRGBA8Unorm,
	}
}

// New creates a compositor that owns its WebGPU device: instance,
// adapter, device and queue are created here and released by Destroy.
// An empty label falls back to a package default; the power preference
// is handed to adapter selection as-is, so the zero value requests the
// runtime's default adapter.
func New(label string, power gputypes.PowerPreference) (*Compositor, error) {
	if label == "" {
		label = defaultDeviceLabel
	}

	instance := core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	})

	adapterID, err := instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: power,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: no usable adapter: %w", err)
	}

	logGPUInfo(adapterID)
	info, _ := getGPUInfo(adapterID)

	deviceID, err := createDevice(adapterID, label)
	if err != nil {
		_ = releaseAdapter(adapterID)
		return nil, fmt.Errorf("wgpu: device creation failed: %w", err)
	}

	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		_ = releaseAdapter(adapterID)
		return nil, fmt.Errorf("wgpu: queue retrieval failed: %w", err)
	}

	logDeviceLimits(deviceID)

	blit, err := compileBlitShader()
	if err != nil {
		_ = releaseDevice(deviceID)
		_ = releaseAdapter(adapterID)
		return nil, err
	}

	return &Compositor{
		owned:     true,
		instance:  instance,
		adapter:   adapterID,
		device:    deviceID,
		queue:     queueID,
		info:      info,
		blitSPIRV: blit,
		recorder:  debug.New(debug.WithFormats(presentFormats()...)),
	}, nil
}

// NewShared creates a compositor on a caller-owned device. The provider
// keeps ownership; Destroy releases only what this compositor created.
func NewShared(provider gpucontext.DeviceProvider) (*Compositor, error) {
	if provider == nil {
		return nil, fmt.Errorf("wgpu: device provider is nil")
	}

	blit, err := compileBlitShader()
	if err != nil {
		return nil, err
	}

	return &Compositor{
		provider:  provider,
		blitSPIRV: blit,
		recorder:  debug.New(debug.WithFormats(presentFormats()...)),
	}, nil
}

// BeginSession implements compositor.Compositor.
func (c *Compositor) BeginSession(viewType compositor.ViewType) error {
	return c.recorder.BeginSession(viewType)
}

// EndSession implements compositor.Compositor.
func (c *Compositor) EndSession() error {
	return c.recorder.EndSession()
}

// WaitFrame implements compositor.Compositor.
func (c *Compositor) WaitFrame() (int64, int64, error) {
	return c.recorder.WaitFrame()
}

// BeginFrame implements compositor.Compositor.
func (c *Compositor) BeginFrame() error {
	return c.recorder.BeginFrame()
}

// DiscardFrame implements compositor.Compositor.
func (c *Compositor) DiscardFrame() error {
	return c.recorder.DiscardFrame()
}

// LayerBegin implements compositor.Compositor.
func (c *Compositor) LayerBegin(mode compositor.BlendMode) error {
	return c.recorder.LayerBegin(mode)
}

// LayerQuad implements compositor.Compositor.
func (c *Compositor) LayerQuad(desc *compositor.QuadLayerDesc) error {
	return c.recorder.LayerQuad(desc)
}

// LayerStereoProjection implements compositor.Compositor.
func (c *Compositor) LayerStereoProjection(desc *compositor.ProjectionLayerDesc) error {
	return c.recorder.LayerStereoProjection(desc)
}

// LayerCommit implements compositor.Compositor.
func (c *Compositor) LayerCommit() error {
	return c.recorder.LayerCommit()
}

// Poll implements compositor.Compositor.
func (c *Compositor) Poll() {
	c.recorder.Poll()
}

// Formats implements compositor.Compositor.
func (c *Compositor) Formats() []gputypes.TextureFormat {
	return c.recorder.Formats()
}

// Destroy implements compositor.Compositor. An owned device is released
// in reverse creation order; a borrowed one is left alone.
func (c *Compositor) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return compositor.ErrDestroyed
	}

	err := c.recorder.Destroy()

	if c.owned {
		if !c.device.IsZero() {
			if derr := releaseDevice(c.device); derr != nil {
				xr.Logger().Warn("releasing device", "error", derr)
			}
			c.device = core.DeviceID{}
		}

		if !c.adapter.IsZero() {
			if aerr := releaseAdapter(c.adapter); aerr != nil {
				xr.Logger().Warn("releasing adapter", "error", aerr)
			}
			c.adapter = core.AdapterID{}
		}

		// The instance needs no explicit cleanup; the queue dies with
		// the device.
		c.instance = nil
		c.queue = core.QueueID{}
	}

	c.provider = nil
	c.destroyed = true
	return err
}

// Owned reports whether the compositor created its device.
func (c *Compositor) Owned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owned
}

// GPUInfo returns the adapter description, or nil for a borrowed device
// or when the query failed.
func (c *Compositor) GPUInfo() *GPUInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Device returns the owned device ID. Zero for a borrowed device.
func (c *Compositor) Device() core.DeviceID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}

// Queue returns the owned device's queue ID. Zero for a borrowed device.
func (c *Compositor) Queue() core.QueueID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue
}

// Provider returns the borrowed device provider. Nil for an owned device.
func (c *Compositor) Provider() gpucontext.DeviceProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider
}

// Recorder exposes the batch recorder so hosts can inspect or flatten
// what sessions submitted.
func (c *Compositor) Recorder() *debug.Compositor {
	return c.recorder
}
