// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/compositor"
	"github.com/gogpu/xr/device"
	"github.com/gogpu/xr/xrmath"
)

// errSentinel stands in for whatever a backend might fail with.
var errSentinel = errors.New("backend failure")

// =============================================================================
// Mock Types for Testing
// =============================================================================

// mockCompositor is a test double for compositor.Compositor. Error
// fields, when set, are returned by the matching method; the counters
// track how often each method ran.
type mockCompositor struct {
	beginSessionErr error
	endSessionErr   error
	beginFrameErr   error
	discardErr      error
	layerBeginErr   error
	quadErr         error
	projErr         error
	commitErr       error
	destroyErr      error

	// waitFrameFunc overrides the default pacing when set.
	waitFrameFunc func() (int64, int64, error)

	beginSessions int
	endSessions   int
	waitFrames    int
	beginFrames   int
	discards      int
	layerBegins   int
	quads         int
	projections   int
	commits       int
	polls         int
	destroys      int

	viewType   compositor.ViewType
	formats    []gputypes.TextureFormat
	batchModes []compositor.BlendMode
	lastQuads  []compositor.QuadLayerDesc
	lastProjs  []compositor.ProjectionLayerDesc
}

func newMockCompositor() *mockCompositor {
	return &mockCompositor{
		formats: []gputypes.TextureFormat{
			gputypes.TextureFormatRGBA8Unorm,
			gputypes.TextureFormatBGRA8Unorm,
		},
	}
}

func (m *mockCompositor) BeginSession(viewType compositor.ViewType) error {
	m.beginSessions++
	if m.beginSessionErr != nil {
		return m.beginSessionErr
	}
	m.viewType = viewType
	return nil
}

func (m *mockCompositor) EndSession() error {
	m.endSessions++
	return m.endSessionErr
}

func (m *mockCompositor) WaitFrame() (int64, int64, error) {
	m.waitFrames++
	if m.waitFrameFunc != nil {
		return m.waitFrameFunc()
	}
	period := int64(16 * time.Millisecond)
	return period * int64(m.waitFrames+1), period, nil
}

func (m *mockCompositor) BeginFrame() error {
	m.beginFrames++
	return m.beginFrameErr
}

func (m *mockCompositor) DiscardFrame() error {
	m.discards++
	return m.discardErr
}

func (m *mockCompositor) LayerBegin(mode compositor.BlendMode) error {
	m.layerBegins++
	if m.layerBeginErr != nil {
		return m.layerBeginErr
	}
	m.batchModes = append(m.batchModes, mode)
	return nil
}

func (m *mockCompositor) LayerQuad(desc *compositor.QuadLayerDesc) error {
	m.quads++
	if m.quadErr != nil {
		return m.quadErr
	}
	m.lastQuads = append(m.lastQuads, *desc)
	return nil
}

func (m *mockCompositor) LayerStereoProjection(desc *compositor.ProjectionLayerDesc) error {
	m.projections++
	if m.projErr != nil {
		return m.projErr
	}
	m.lastProjs = append(m.lastProjs, *desc)
	return nil
}

func (m *mockCompositor) LayerCommit() error {
	m.commits++
	return m.commitErr
}

func (m *mockCompositor) Poll() { m.polls++ }

func (m *mockCompositor) Formats() []gputypes.TextureFormat {
	return append([]gputypes.TextureFormat(nil), m.formats...)
}

func (m *mockCompositor) Destroy() error {
	m.destroys++
	return m.destroyErr
}

var _ compositor.Compositor = (*mockCompositor)(nil)

// mockRing is a test double for compositor.Swapchain.
type mockRing struct {
	images uint32
}

func (r mockRing) ImageCount() uint32 { return r.images }

// mockHead is a test double for device.Device. The zero value is not
// usable; newMockHead returns one with identity poses and valid flags.
type mockHead struct {
	relation device.Relation

	// sampleLag is subtracted from the requested time to simulate a
	// tracker that sampled in the past.
	sampleLag int64

	fovs   [2]xrmath.Fov
	origin xrmath.Pose
}

func newMockHead() *mockHead {
	return &mockHead{
		relation: device.Relation{
			Pose: xrmath.PoseIdentity(),
			Flags: device.RelationOrientationValid |
				device.RelationPositionValid,
		},
		origin: xrmath.PoseIdentity(),
	}
}

func (h *mockHead) Name() string { return "mock-head" }

func (h *mockHead) RelationAt(_ device.InputKind, at int64) (int64, device.Relation) {
	return at - h.sampleLag, h.relation
}

func (h *mockHead) ViewPose(eyeOffset xrmath.Vec3, viewIndex uint32) xrmath.Pose {
	pose := xrmath.PoseIdentity()
	half := eyeOffset.X / 2
	if viewIndex == 0 {
		half = -half
	}
	pose.Position.X = half
	return pose
}

func (h *mockHead) ViewFov(viewIndex uint32) xrmath.Fov {
	return h.fovs[viewIndex%2]
}

func (h *mockHead) TrackingOriginOffset() xrmath.Pose { return h.origin }

var _ device.Device = (*mockHead)(nil)

// fixedClock is a deterministic Clock: every Now() advances by one
// nanosecond and ToTime adds a constant offset.
type fixedClock struct {
	now    int64
	offset int64
}

func (c *fixedClock) Now() int64 {
	c.now++
	return c.now
}

func (c *fixedClock) ToTime(mono int64) Time { return Time(c.offset + mono) }

// =============================================================================
// Fixtures
// =============================================================================

// fixture wires a runtime, system, and session around mocks. The session
// was created through CreateSession, so the idle and ready notifications
// are already queued.
type fixture struct {
	rt   *Runtime
	sys  *System
	sess *Session
	comp *mockCompositor
	head *mockHead
	clk  *fixedClock
}

func testSystemDesc(head device.Device) SystemDesc {
	return SystemDesc{
		Head:     head,
		ViewType: compositor.ViewTypeStereo,
		BlendModes: compositor.BlendModeSet(
			compositor.BlendModeOpaque | compositor.BlendModeAdditive),
		HeadlessSupported: true,
	}
}

// newFixture builds a session with the mock compositor attached, going
// through the registered-initializer path.
func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	head := newMockHead()
	clk := &fixedClock{offset: int64(time.Hour)}
	rt := NewRuntime(cfg, WithClock(clk))

	sys, err := rt.NewSystem(testSystemDesc(head))
	if err != nil {
		t.Fatalf("NewSystem() error: %v", err)
	}

	comp := newMockCompositor()
	RegisterInitializer(BindingVulkan, func(_ *System, _ GraphicsBinding, sess *Session) error {
		sess.AttachCompositor(comp)
		return nil
	})
	t.Cleanup(func() { UnregisterInitializer(BindingVulkan) })

	sys.GraphicsRequirements(FamilyVulkan)

	sess, res, err := CreateSession(sys, &SessionCreateInfo{Binding: &GraphicsBindingVulkan{}})
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if res != Success {
		t.Fatalf("CreateSession() result = %v, want Success", res)
	}

	return &fixture{rt: rt, sys: sys, sess: sess, comp: comp, head: head, clk: clk}
}

// newHeadlessFixture builds a session with no compositor.
func newHeadlessFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	head := newMockHead()
	clk := &fixedClock{offset: int64(time.Hour)}
	rt := NewRuntime(cfg, WithClock(clk))

	sys, err := rt.NewSystem(testSystemDesc(head))
	if err != nil {
		t.Fatalf("NewSystem() error: %v", err)
	}

	sess, res, err := CreateSession(sys, &SessionCreateInfo{})
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	if res != Success {
		t.Fatalf("CreateSession() result = %v, want Success", res)
	}
	if !sess.Headless() {
		t.Fatal("session should be headless")
	}

	return &fixture{rt: rt, sys: sys, sess: sess, head: head, clk: clk}
}

// begin runs the session up to focused.
func (f *fixture) begin(t *testing.T) {
	t.Helper()
	res, err := f.sess.Begin(&SessionBeginInfo{PrimaryViewType: compositor.ViewTypeStereo})
	if err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if res != Success {
		t.Fatalf("Begin() result = %v, want Success", res)
	}
}

// beginFrame runs the wait/begin half of a frame.
func (f *fixture) beginFrame(t *testing.T) {
	t.Helper()
	if _, _, err := f.sess.WaitFrame(); err != nil {
		t.Fatalf("WaitFrame() error: %v", err)
	}
	if _, err := f.sess.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame() error: %v", err)
	}
}

// drainStates polls every queued event and returns the states in
// delivery order.
func (f *fixture) drainStates() []State {
	var states []State
	for {
		ev, ok := f.rt.PollEvent()
		if !ok {
			return states
		}
		states = append(states, ev.State)
	}
}

// registerSwapchain registers a ring and applies the released index.
func (f *fixture) registerSwapchain(images uint32, released int32) SwapchainHandle {
	sc := NewSwapchain(mockRing{images: images}, gputypes.TextureFormatRGBA8Unorm, 128, 128, 1)
	sc.ReleasedIndex = released
	return f.rt.RegisterSwapchain(sc)
}

// registerStageSpace registers an identity stage reference space.
func (f *fixture) registerStageSpace() SpaceHandle {
	return f.rt.RegisterSpace(NewReferenceSpace(SpaceStage, xrmath.PoseIdentity()))
}

// statesEqual compares two state sequences.
func statesEqual(got, want []State) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
