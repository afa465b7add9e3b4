// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/xr"
)

// init registers the WebGPU session initializers on package import.
//
// To make the bindings available, import this package:
//
//	import _ "github.com/gogpu/xr/binding/wgpu"
func init() {
	xr.RegisterInitializer(xr.BindingWGPU, initOwnedDevice)
	xr.RegisterInitializer(xr.BindingGPUContext, initSharedDevice)
}

// initOwnedDevice builds a session compositor on a device the session
// creates and owns.
func initOwnedDevice(_ *xr.System, binding xr.GraphicsBinding, sess *xr.Session) error {
	b, ok := binding.(*xr.GraphicsBindingWGPU)
	if !ok {
		return fmt.Errorf("wgpu: binding is %T, want *xr.GraphicsBindingWGPU", binding)
	}

	comp, err := New(b.Label, b.PowerPreference)
	if err != nil {
		return err
	}

	sess.AttachCompositor(comp)
	return nil
}

// initSharedDevice builds a session compositor on the host
// application's device. The session never destroys it.
func initSharedDevice(_ *xr.System, binding xr.GraphicsBinding, sess *xr.Session) error {
	b, ok := binding.(*xr.GraphicsBindingGPUContext)
	if !ok {
		return fmt.Errorf("wgpu: binding is %T, want *xr.GraphicsBindingGPUContext", binding)
	}

	comp, err := NewShared(b.Provider)
	if err != nil {
		return err
	}

	sess.AttachCompositor(comp)
	return nil
}
