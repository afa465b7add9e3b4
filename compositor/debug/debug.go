// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package debug provides an in-memory compositor: frames are paced
// against a configurable refresh interval and committed layer batches
// are kept for inspection or flattened into an image. It backs tests,
// examples, and headless development where no display stack exists.
package debug

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr/compositor"
)

// Clock is the subset of the engine clock the compositor paces against.
type Clock interface {
	Now() int64
}

// wallClock is the default pacing clock.
type wallClock struct {
	start time.Time
}

func (c *wallClock) Now() int64 { return time.Since(c.start).Nanoseconds() + 1 }

// Layer is one recorded submission, exactly one field set.
type Layer struct {
	Quad       *compositor.QuadLayerDesc
	Projection *compositor.ProjectionLayerDesc
}

// Batch is one committed frame: the blend mode and the layers in
// submission order.
type Batch struct {
	BlendMode compositor.BlendMode
	Layers    []Layer
}

// Counts records how many times each compositor method was called.
type Counts struct {
	BeginSession int
	EndSession   int
	WaitFrame    int
	BeginFrame   int
	DiscardFrame int
	LayerBegin   int
	LayerQuad    int
	LayerProj    int
	LayerCommit  int
	Poll         int
	Destroy      int
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithRefreshInterval sets the simulated display refresh interval.
// The default is 16ms, roughly 60Hz.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Compositor) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// WithFormats sets the pixel formats reported to sessions, in
// preference order.
func WithFormats(formats ...gputypes.TextureFormat) Option {
	return func(c *Compositor) {
		c.formats = append([]gputypes.TextureFormat(nil), formats...)
	}
}

// WithClock paces frames against the given clock instead of the wall
// clock, so display times land in the same monotonic domain the engine
// converts from.
func WithClock(clk Clock) Option {
	return func(c *Compositor) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// Compositor is an in-memory compositor.Compositor. It is safe for
// concurrent use, though sessions drive it from one goroutine; the lock
// exists so tests can inspect it while a frame loop runs.
type Compositor struct {
	mu      sync.Mutex
	clock   Clock
	refresh time.Duration
	formats []gputypes.TextureFormat

	sessionBegun bool
	destroyed    bool
	viewType     compositor.ViewType

	open      *Batch
	committed []Batch

	calls    Counts
	failNext map[string]error
}

// New returns a debug compositor presenting RGBA8 and BGRA8 at 60Hz
// unless options say otherwise.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		clock:   &wallClock{start: time.Now()},
		refresh: 16 * time.Millisecond,
		formats: []gputypes.TextureFormat{
			gputypes.TextureFormatRGBA8Unorm,
			gputypes.TextureFormatBGRA8Unorm,
		},
		failNext: make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FailNext arranges for the next call to the named method (its Counts
// field name) to return err instead of doing its work.
func (c *Compositor) FailNext(method string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext[method] = err
}

// guard handles destruction and fault injection. Callers hold the lock.
func (c *Compositor) guard(method string) error {
	if c.destroyed {
		return compositor.ErrDestroyed
	}
	if err, ok := c.failNext[method]; ok {
		delete(c.failNext, method)
		return err
	}
	return nil
}

// BeginSession implements compositor.Compositor.
func (c *Compositor) BeginSession(viewType compositor.ViewType) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard("BeginSession"); err != nil {
		return err
	}
	c.calls.BeginSession++
	if c.sessionBegun {
		return fmt.Errorf("debug: session already begun")
	}
	c.sessionBegun = true
	c.viewType = viewType
	return nil
}

// EndSession implements compositor.Compositor.
func (c *Compositor) EndSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard("EndSession"); err != nil {
		return err
	}
	c.calls.EndSession++
	if !c.sessionBegun {
		return compositor.ErrSessionNotBegun
	}
	c.sessionBegun = false
	c.open = nil
	return nil
}

// WaitFrame implements compositor.Compositor. It sleeps to the next
// refresh slot and predicts display one interval after that, so a free
// running loop settles at the refresh rate.
func (c *Compositor) WaitFrame() (int64, int64, error) {
	c.mu.Lock()
	if err := c.guard("WaitFrame"); err != nil {
		c.mu.Unlock()
		return 0, 0, err
	}
	c.calls.WaitFrame++
	if !c.sessionBegun {
		c.mu.Unlock()
		return 0, 0, compositor.ErrSessionNotBegun
	}
	refresh := c.refresh.Nanoseconds()
	clk := c.clock
	c.mu.Unlock()

	// Pace without holding the lock.
	now := clk.Now()
	slot := (now/refresh + 1) * refresh
	if wait := time.Duration(slot - now); wait > 0 {
		time.Sleep(wait)
	}

	displayTime := slot + refresh
	return displayTime, refresh, nil
}

// BeginFrame implements compositor.Compositor.
func (c *Compositor) BeginFrame() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard("BeginFrame"); err != nil {
		return err
	}
	c.calls.BeginFrame++
	if !c.sessionBegun {
		return compositor.ErrSessionNotBegun
	}
	return nil
}

// DiscardFrame implements compositor.Compositor.
func (c *Compositor) DiscardFrame() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard("DiscardFrame"); err != nil {
		return err
	}
	c.calls.DiscardFrame++
	if !c.sessionBegun {
		return compositor.ErrSessionNotBegun
	}
	c.open = nil
	return nil
}

// LayerBegin implements compositor.Compositor.
func (c *Compositor) LayerBegin(mode compositor.BlendMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard("LayerBegin"); err != nil {
		return err
	}
	c.calls.LayerBegin++
	if !c.sessionBegun {
		return compositor.ErrSessionNotBegun
	}
	c.open = &Batch{BlendMode: mode}
	return nil
}

// LayerQuad implements compositor.Compositor. The descriptor is copied;
// the engine may reuse it.
func (c *Compositor) LayerQuad(desc *compositor.QuadLayerDesc) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard("LayerQuad"); err != nil {
		return err
	}
	c.calls.LayerQuad++
	if c.open == nil {
		return fmt.Errorf("debug: quad layer outside a layer batch")
	}
	d := *desc
	c.open.Layers = append(c.open.Layers, Layer{Quad: &d})
	return nil
}

// LayerStereoProjection implements compositor.Compositor. The
// descriptor is copied; the engine may reuse it.
func (c *Compositor) LayerStereoProjection(desc *compositor.ProjectionLayerDesc) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard("LayerProj"); err != nil {
		return err
	}
	c.calls.LayerProj++
	if c.open == nil {
		return fmt.Errorf("debug: projection layer outside a layer batch")
	}
	d := *desc
	c.open.Layers = append(c.open.Layers, Layer{Projection: &d})
	return nil
}

// LayerCommit implements compositor.Compositor.
func (c *Compositor) LayerCommit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard("LayerCommit"); err != nil {
		return err
	}
	c.calls.LayerCommit++
	if c.open == nil {
		return fmt.Errorf("debug: commit outside a layer batch")
	}
	c.committed = append(c.committed, *c.open)
	c.open = nil
	return nil
}

// Poll implements compositor.Compositor.
func (c *Compositor) Poll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls.Poll++
}

// Formats implements compositor.Compositor.
func (c *Compositor) Formats() []gputypes.TextureFormat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]gputypes.TextureFormat(nil), c.formats...)
}

// Destroy implements compositor.Compositor.
func (c *Compositor) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return compositor.ErrDestroyed
	}
	c.calls.Destroy++
	c.destroyed = true
	c.sessionBegun = false
	c.open = nil
	return nil
}

// Counts returns a snapshot of the per-method call counts.
func (c *Compositor) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Committed returns the committed batches in commit order.
func (c *Compositor) Committed() []Batch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Batch(nil), c.committed...)
}

// LastBatch returns the most recently committed batch.
func (c *Compositor) LastBatch() (Batch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.committed) == 0 {
		return Batch{}, false
	}
	return c.committed[len(c.committed)-1], true
}

// SessionBegun reports whether a session is currently begun.
func (c *Compositor) SessionBegun() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionBegun
}
