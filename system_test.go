// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"testing"

	"github.com/gogpu/xr/compositor"
)

func TestMakeAPIVersion(t *testing.T) {
	v := MakeAPIVersion(1, 3, 204)
	if got := uint64(v); got != 1<<48|3<<32|204 {
		t.Errorf("MakeAPIVersion(1, 3, 204) = %#x", got)
	}
	if MakeAPIVersion(4, 6, 0) <= MakeAPIVersion(3, 3, 0) {
		t.Error("4.6 does not order above 3.3")
	}
	if MakeAPIVersion(1, 3, 0) <= MakeAPIVersion(1, 2, 131) {
		t.Error("1.3.0 does not order above 1.2.131")
	}
}

func TestNewSystemValidation(t *testing.T) {
	rt := NewRuntime(DefaultConfig())

	if _, err := rt.NewSystem(SystemDesc{ViewType: compositor.ViewTypeStereo}); err == nil {
		t.Error("NewSystem accepted a nil head device")
	}

	head := newMockHead()
	if _, err := rt.NewSystem(SystemDesc{Head: head}); err == nil {
		t.Error("NewSystem accepted a zero view type")
	}
	if _, err := rt.NewSystem(SystemDesc{Head: head, ViewType: compositor.ViewType(9)}); err == nil {
		t.Error("NewSystem accepted an unknown view type")
	}

	sys, err := rt.NewSystem(testSystemDesc(head))
	if err != nil {
		t.Fatalf("NewSystem() error: %v", err)
	}
	if sys.Head() != head || sys.Runtime() != rt {
		t.Error("system accessors do not return the construction arguments")
	}
	if sys.ViewType() != compositor.ViewTypeStereo {
		t.Errorf("ViewType() = %v, want stereo", sys.ViewType())
	}
	if !sys.BlendModes().Has(compositor.BlendModeOpaque) {
		t.Error("BlendModes() lost the opaque bit")
	}
	if !sys.HeadlessSupported() {
		t.Error("HeadlessSupported() = false, want true")
	}
}

func TestGraphicsRequirements(t *testing.T) {
	rt := NewRuntime(DefaultConfig())
	sys, err := rt.NewSystem(testSystemDesc(newMockHead()))
	if err != nil {
		t.Fatalf("NewSystem() error: %v", err)
	}

	tests := []struct {
		family   BindingFamily
		min, max APIVersion
	}{
		{FamilyOpenGL, MakeAPIVersion(3, 3, 0), MakeAPIVersion(4, 6, 0)},
		{FamilyVulkan, MakeAPIVersion(1, 0, 0), MakeAPIVersion(1, 3, 0)},
		{FamilyWGPU, MakeAPIVersion(1, 0, 0), MakeAPIVersion(1, 0, 0)},
	}
	for _, tt := range tests {
		if sys.requirementsNegotiated(tt.family) {
			t.Errorf("%v marked negotiated before the query", tt.family)
		}
		req := sys.GraphicsRequirements(tt.family)
		if req.MinAPIVersion != tt.min || req.MaxAPIVersion != tt.max {
			t.Errorf("%v requirements = %#x..%#x, want %#x..%#x",
				tt.family, req.MinAPIVersion, req.MaxAPIVersion, tt.min, tt.max)
		}
		if !sys.requirementsNegotiated(tt.family) {
			t.Errorf("%v not marked negotiated after the query", tt.family)
		}
	}
}

func TestBindingFamilies(t *testing.T) {
	tests := []struct {
		binding GraphicsBinding
		family  BindingFamily
		kind    string
	}{
		{&GraphicsBindingOpenGLXlib{}, FamilyOpenGL, BindingOpenGLXlib},
		{&GraphicsBindingEGL{}, FamilyOpenGL, BindingEGL},
		{&GraphicsBindingVulkan{}, FamilyVulkan, BindingVulkan},
		{&GraphicsBindingWGPU{}, FamilyWGPU, BindingWGPU},
		{&GraphicsBindingGPUContext{}, FamilyWGPU, BindingGPUContext},
	}
	for _, tt := range tests {
		if got := tt.binding.Family(); got != tt.family {
			t.Errorf("%T.Family() = %v, want %v", tt.binding, got, tt.family)
		}
		if got := bindingKind(tt.binding); got != tt.kind {
			t.Errorf("bindingKind(%T) = %q, want %q", tt.binding, got, tt.kind)
		}
	}
}
