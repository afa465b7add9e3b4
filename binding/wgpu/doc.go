// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu registers WebGPU-backed session initializers.
//
// Importing the package makes two graphics bindings usable with
// xr.CreateSession:
//
//	import _ "github.com/gogpu/xr/binding/wgpu"
//
//   - *xr.GraphicsBindingWGPU: the session creates and owns its WebGPU
//     device (instance → adapter → device → queue). The device is
//     released, in reverse creation order, when the session is
//     destroyed.
//   - *xr.GraphicsBindingGPUContext: the session borrows a caller-owned
//     device behind gpucontext.DeviceProvider. The session never
//     destroys the provided device; the host application keeps
//     ownership for its whole lifetime.
//
// Both initializers precompile the presentation blit shader from WGSL
// to SPIR-V with naga, so shader problems surface at session creation
// rather than mid-frame.
//
// # Current status
//
// Device creation, adapter selection, format negotiation and teardown
// are live. Layer batches are recorded through the in-memory compositor
// until the core render-pass bridge lands; the compiled blit shader and
// the device queue are staged here for that submission path.
package wgpu
