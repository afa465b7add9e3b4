// Command xrdemo runs a complete XR session against the debug
// compositor: stereo projection layers with a moving stripe, a quad HUD,
// and a PNG of the last composited frame.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/xr"
	"github.com/gogpu/xr/compositor"
	"github.com/gogpu/xr/compositor/debug"
	"github.com/gogpu/xr/device/sim"
	"github.com/gogpu/xr/xrmath"
)

const eyeSize = 256

func main() {
	var (
		frames  = flag.Int("frames", 60, "frames to run")
		refresh = flag.Duration("refresh", 16*time.Millisecond, "simulated display refresh interval")
		output  = flag.String("output", "xrdemo.png", "output file for the last frame")
		verbose = flag.Bool("v", false, "log engine internals to stderr")
	)
	flag.Parse()

	if *verbose {
		xr.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	head := sim.NewHead(sim.WithSampleLatency(2 * time.Millisecond))
	head.SetAngularVelocity(xrmath.V3(0, 0.5, 0))

	rt := xr.NewRuntime(xr.DefaultConfig())
	sys, err := rt.NewSystem(xr.SystemDesc{
		Head:       head,
		ViewType:   compositor.ViewTypeStereo,
		BlendModes: compositor.BlendModeSet(compositor.BlendModeOpaque),
	})
	if err != nil {
		log.Fatalf("NewSystem: %v", err)
	}

	comp := debug.New(debug.WithRefreshInterval(*refresh))
	xr.RegisterInitializer(xr.BindingVulkan, func(_ *xr.System, _ xr.GraphicsBinding, sess *xr.Session) error {
		sess.AttachCompositor(comp)
		return nil
	})
	defer xr.UnregisterInitializer(xr.BindingVulkan)
	sys.GraphicsRequirements(xr.FamilyVulkan)

	sess, _, err := xr.CreateSession(sys, &xr.SessionCreateInfo{
		Binding: &xr.GraphicsBindingVulkan{},
	})
	if err != nil {
		log.Fatalf("CreateSession: %v", err)
	}
	if _, err := sess.Begin(&xr.SessionBeginInfo{
		PrimaryViewType: compositor.ViewTypeStereo,
	}); err != nil {
		log.Fatalf("Begin: %v", err)
	}

	// Per-eye projection rings plus a small HUD ring.
	left := newRing(rt, eyeSize, eyeSize, 3)
	right := newRing(rt, eyeSize, eyeSize, 3)
	hud := newRing(rt, 128, 64, 1)
	drawHUD(hud.ring.Image(0))
	hud.sc.Release(0)

	stage := rt.RegisterSpace(xr.NewReferenceSpace(xr.SpaceStage, xrmath.PoseIdentity()))
	views := make([]xr.View, 2)

	for frame := 0; frame < *frames; frame++ {
		state, _, err := sess.WaitFrame()
		if err != nil {
			log.Fatalf("WaitFrame: %v", err)
		}
		if _, err := sess.BeginFrame(); err != nil {
			log.Fatalf("BeginFrame: %v", err)
		}

		if _, _, _, err := sess.LocateViews(&xr.ViewLocateInfo{
			Space:       stage,
			DisplayTime: state.PredictedDisplayTime,
		}, views); err != nil {
			log.Fatalf("LocateViews: %v", err)
		}

		if !state.ShouldRender {
			if _, err := sess.EndFrame(&xr.FrameEndInfo{
				DisplayTime: state.PredictedDisplayTime,
				BlendMode:   xr.BlendOpaque,
			}); err != nil {
				log.Fatalf("EndFrame: %v", err)
			}
			continue
		}

		idx := int32(frame % 3)
		drawEye(left.ring.Image(int(idx)), frame, color.RGBA{R: 0x20, G: 0x50, B: 0x60, A: 0xff})
		drawEye(right.ring.Image(int(idx)), frame, color.RGBA{R: 0x50, G: 0x20, B: 0x60, A: 0xff})
		left.sc.Release(idx)
		right.sc.Release(idx)

		proj := &xr.ProjectionLayer{
			Space: stage,
			Views: []xr.ProjectionView{
				{Pose: views[0].Pose, Fov: views[0].Fov, SubImage: xr.SwapchainSubImage{Swapchain: left.handle}},
				{Pose: views[1].Pose, Fov: views[1].Fov, SubImage: xr.SwapchainSubImage{Swapchain: right.handle}},
			},
		}
		quad := &xr.QuadLayer{
			Space:      stage,
			Visibility: compositor.EyeVisibilityBoth,
			SubImage:   xr.SwapchainSubImage{Swapchain: hud.handle},
			Pose: xrmath.Pose{
				Orientation: xrmath.QuatIdentity(),
				Position:    xrmath.V3(0, 1.2, -1.5),
			},
			Size: xrmath.V2(0.8, 0.4),
		}

		if _, err := sess.EndFrame(&xr.FrameEndInfo{
			DisplayTime: state.PredictedDisplayTime,
			BlendMode:   xr.BlendOpaque,
			Layers:      []xr.CompositionLayer{proj, quad},
		}); err != nil {
			log.Fatalf("EndFrame: %v", err)
		}
	}

	// Flatten the last committed frame, both eyes side by side.
	out := image.NewRGBA(image.Rect(0, 0, 2*eyeSize, eyeSize))
	comp.CompositeRGBA(out)
	if err := savePNG(*output, out); err != nil {
		log.Fatalf("saving %s: %v", *output, err)
	}

	if _, err := sess.RequestExit(); err != nil {
		log.Fatalf("RequestExit: %v", err)
	}
	if _, err := sess.End(); err != nil {
		log.Fatalf("End: %v", err)
	}
	for {
		ev, ok := rt.PollEvent()
		if !ok {
			break
		}
		log.Printf("session entered %s", ev.State)
	}
	if _, err := sess.Destroy(); err != nil {
		log.Fatalf("Destroy: %v", err)
	}

	counts := comp.Counts()
	log.Printf("ran %d frames: %d waited, %d committed, %d discarded", *frames,
		counts.WaitFrame, counts.LayerCommit, counts.DiscardFrame)
	log.Printf("demo saved to %s (%dx%d)", *output, 2*eyeSize, eyeSize)
}

// eyeRing bundles a debug image ring with its engine-side record.
type eyeRing struct {
	ring   *debug.Swapchain
	sc     *xr.Swapchain
	handle xr.SwapchainHandle
}

func newRing(rt *xr.Runtime, w, h, count uint32) eyeRing {
	ring := debug.NewSwapchain(gputypes.TextureFormatRGBA8Unorm, w, h, count)
	sc := xr.NewSwapchain(ring, ring.Format(), w, h, 1)
	return eyeRing{ring: ring, sc: sc, handle: rt.RegisterSwapchain(sc)}
}

// drawEye paints a flat background with a white stripe that advances
// with the frame counter, so motion survives into the output image.
func drawEye(img *image.RGBA, frame int, bg color.RGBA) {
	b := img.Bounds()
	draw.Draw(img, b, image.NewUniform(bg), image.Point{}, draw.Src)

	stripe := b
	stripe.Min.X = b.Min.X + (frame*8)%(b.Dx()-16)
	stripe.Max.X = stripe.Min.X + 16
	draw.Draw(img, stripe, image.NewUniform(color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}), image.Point{}, draw.Src)
}

// drawHUD paints the quad content: an orange panel with a darker border.
func drawHUD(img *image.RGBA) {
	b := img.Bounds()
	draw.Draw(img, b, image.NewUniform(color.RGBA{R: 0xb0, G: 0x5a, B: 0x00, A: 0xff}), image.Point{}, draw.Src)
	draw.Draw(img, b.Inset(4), image.NewUniform(color.RGBA{R: 0xff, G: 0x8c, B: 0x00, A: 0xff}), image.Point{}, draw.Src)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
