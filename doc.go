// Package xr provides the session-lifecycle and frame-submission core of
// an XR runtime for Go.
//
// # Overview
//
// xr tracks an application's session through the XR state machine,
// arbitrates the per-frame timing contract with a display compositor,
// predicts head pose for a requested display time, and validates and
// submits composition layers for presentation. It is designed to sit
// behind an API-dispatch layer and in front of pluggable device and
// compositor backends from the GoGPU ecosystem.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/xr"
//	    "github.com/gogpu/xr/compositor"
//	    _ "github.com/gogpu/xr/binding/wgpu" // session initializers
//	)
//
//	rt := xr.NewRuntime(xr.DefaultConfig())
//	sys, _ := rt.NewSystem(xr.SystemDesc{
//	    Head:       head, // a device.Device implementation
//	    ViewType:   compositor.ViewTypeStereo,
//	    BlendModes: compositor.BlendModeSet(compositor.BlendModeOpaque),
//	})
//
//	sys.GraphicsRequirements(xr.FamilyWGPU)
//	sess, _, err := xr.CreateSession(sys, &xr.SessionCreateInfo{
//	    Binding: &xr.GraphicsBindingWGPU{},
//	})
//	if err != nil {
//	    // ...
//	}
//	defer sess.Destroy()
//
//	sess.Begin(&xr.SessionBeginInfo{PrimaryViewType: compositor.ViewTypeStereo})
//	for sess.Running() {
//	    state, _, _ := sess.WaitFrame()
//	    sess.BeginFrame()
//	    // render...
//	    sess.EndFrame(&xr.FrameEndInfo{
//	        DisplayTime: state.PredictedDisplayTime,
//	        BlendMode:   xr.BlendOpaque,
//	        Layers:      layers,
//	    })
//	}
//
// # Architecture
//
// The module is organized into:
//   - Public API: Runtime, System, Session, layers, handles, results
//   - xrmath: poses, quaternions, vectors, fields of view
//   - device: the tracked-device capability sessions consume
//   - compositor: the presentation capability, with a debug
//     implementation under compositor/debug
//   - binding/wgpu: session initializers for WebGPU-native backends
//
// # Concurrency
//
// A session is driven by one application goroutine; its operations are
// not synchronized internally. Runtime-owned state (clock, events,
// handle arenas) is safe to share. Session.WaitFrame is the only
// blocking call: it paces the application to the display.
package xr

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
