// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr"
	"github.com/gogpu/xr/compositor"
	"github.com/gogpu/xr/device"
	"github.com/gogpu/xr/xrmath"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// nullProvider is a caller-owned device provider with no device, like
// a host running CPU-only.
type nullProvider struct{}

func (nullProvider) Device() gpucontext.Device   { return nil }
func (nullProvider) Queue() gpucontext.Queue     { return nil }
func (nullProvider) Adapter() gpucontext.Adapter { return nil }
func (nullProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}
func (nullProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// testHead is a stationary head device for session creation tests.
type testHead struct{}

func (testHead) Name() string { return "test-head" }

func (testHead) RelationAt(_ device.InputKind, at int64) (int64, device.Relation) {
	return at, device.Relation{
		Pose:  xrmath.PoseIdentity(),
		Flags: device.RelationOrientationValid | device.RelationPositionValid,
	}
}

func (testHead) ViewPose(eyeOffset xrmath.Vec3, viewIndex uint32) xrmath.Pose {
	pose := xrmath.PoseIdentity()
	half := eyeOffset.X / 2
	if viewIndex == 0 {
		half = -half
	}
	pose.Position.X = half
	return pose
}

func (testHead) ViewFov(uint32) xrmath.Fov { return xrmath.Fov{} }

func (testHead) TrackingOriginOffset() xrmath.Pose { return xrmath.PoseIdentity() }

func TestRegisteredInitializers(t *testing.T) {
	for _, kind := range []string{xr.BindingWGPU, xr.BindingGPUContext} {
		if !xr.InitializerRegistered(kind) {
			t.Errorf("InitializerRegistered(%q) = false, want true", kind)
		}
	}
}

func TestBlitShaderCompiles(t *testing.T) {
	words, err := compileBlitShader()
	if err != nil {
		t.Fatalf("compileBlitShader() error: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("compileBlitShader() returned no code")
	}
	if words[0] != spirvMagic {
		t.Errorf("first word = %#x, want SPIR-V magic %#x", words[0], spirvMagic)
	}
}

func TestNewSharedNilProvider(t *testing.T) {
	if _, err := NewShared(nil); err == nil {
		t.Fatal("NewShared(nil) should fail")
	}
}

func TestSharedCompositorLifecycle(t *testing.T) {
	comp, err := NewShared(nullProvider{})
	if err != nil {
		t.Fatalf("NewShared() error: %v", err)
	}

	if comp.Owned() {
		t.Error("Owned() = true for a shared device")
	}
	if !comp.Device().IsZero() {
		t.Error("Device() should be zero for a shared device")
	}
	if comp.Provider() == nil {
		t.Error("Provider() = nil before Destroy")
	}

	formats := comp.Formats()
	if len(formats) == 0 || formats[0] != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Formats() = %v, want BGRA8 first", formats)
	}

	if err := comp.BeginSession(compositor.ViewTypeStereo); err != nil {
		t.Fatalf("BeginSession() error: %v", err)
	}
	displayTime, period, err := comp.WaitFrame()
	if err != nil {
		t.Fatalf("WaitFrame() error: %v", err)
	}
	if displayTime <= 0 || period <= 0 {
		t.Errorf("WaitFrame() = (%d, %d), want positive times", displayTime, period)
	}
	if err := comp.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error: %v", err)
	}
	if err := comp.LayerBegin(compositor.BlendModeOpaque); err != nil {
		t.Fatalf("LayerBegin() error: %v", err)
	}
	if err := comp.LayerCommit(); err != nil {
		t.Fatalf("LayerCommit() error: %v", err)
	}

	if err := comp.Destroy(); err != nil {
		t.Fatalf("Destroy() error: %v", err)
	}
	if comp.Provider() != nil {
		t.Error("Provider() should be nil after Destroy")
	}
	if err := comp.Destroy(); !errors.Is(err, compositor.ErrDestroyed) {
		t.Errorf("second Destroy() = %v, want ErrDestroyed", err)
	}
}

func TestNewOwnedDevice(t *testing.T) {
	comp, err := New("", 0)
	if err != nil {
		// No adapter in the test environment is acceptable.
		t.Logf("New() returned error (expected without a GPU): %v", err)
		return
	}
	defer func() {
		if err := comp.Destroy(); err != nil {
			t.Errorf("Destroy() error: %v", err)
		}
	}()

	if !comp.Owned() {
		t.Error("Owned() = false for a created device")
	}
	if comp.Device().IsZero() {
		t.Error("Device() should not be zero after New()")
	}
	if comp.Queue().IsZero() {
		t.Error("Queue() should not be zero after New()")
	}
	if info := comp.GPUInfo(); info != nil {
		t.Logf("GPU: %s", info.String())
	}
}

func TestInitializerRejectsWrongBinding(t *testing.T) {
	sess := &xr.Session{}

	if err := initOwnedDevice(nil, &xr.GraphicsBindingGPUContext{}, sess); err == nil {
		t.Error("initOwnedDevice should reject a GPUContext binding")
	}
	if err := initSharedDevice(nil, &xr.GraphicsBindingWGPU{}, sess); err == nil {
		t.Error("initSharedDevice should reject a WGPU binding")
	}
}

func TestCreateSessionWithSharedDevice(t *testing.T) {
	rt := xr.NewRuntime(xr.DefaultConfig())
	sys, err := rt.NewSystem(xr.SystemDesc{
		Head:       testHead{},
		ViewType:   compositor.ViewTypeStereo,
		BlendModes: compositor.BlendModeSet(compositor.BlendModeOpaque),
	})
	if err != nil {
		t.Fatalf("NewSystem() error: %v", err)
	}

	binding := &xr.GraphicsBindingGPUContext{Provider: nullProvider{}}

	// Creation must fail until the family's requirements were queried.
	if _, res, err := xr.CreateSession(sys, &xr.SessionCreateInfo{Binding: binding}); err == nil {
		t.Fatal("CreateSession should fail before GraphicsRequirements")
	} else if res != xr.ErrValidationFailure {
		t.Fatalf("CreateSession result = %v, want ErrValidationFailure", res)
	}

	sys.GraphicsRequirements(xr.FamilyWGPU)

	sess, res, err := xr.CreateSession(sys, &xr.SessionCreateInfo{Binding: binding})
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if res != xr.Success {
		t.Errorf("CreateSession result = %v, want Success", res)
	}
	if sess.Headless() {
		t.Error("session should not be headless with a GPUContext binding")
	}

	if _, err := sess.Destroy(); err != nil {
		t.Errorf("Destroy() error: %v", err)
	}
}
