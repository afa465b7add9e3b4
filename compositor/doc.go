// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor defines the capability surface the XR session engine
// consumes from a display compositor: session bracketing, frame pacing and
// validated layer submission.
//
// The engine never talks to a GPU or a display itself; it drives an
// implementation of [Compositor]. Implementations are expected to live near
// the presentation hardware — in-process over wgpu, out-of-process over an
// IPC bridge, or purely in memory for tests (see the debug subpackage).
//
// # Call protocol
//
// For a session: BeginSession, then any number of frames, then EndSession.
// For a frame: WaitFrame (which may block up to roughly one refresh
// interval — this is the engine's only pacing/backpressure point),
// BeginFrame, then either DiscardFrame or a layer batch of
// LayerBegin, zero or more LayerQuad/LayerStereoProjection calls, and
// LayerCommit. The engine guarantees every layer it submits has already
// been validated.
package compositor
