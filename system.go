// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"sync"

	"github.com/gogpu/xr/compositor"
	"github.com/gogpu/xr/device"
)

// APIVersion is a packed graphics API version: major in the top 16
// bits, minor in the next 16, patch in the low 32.
type APIVersion uint64

// MakeAPIVersion packs an API version.
func MakeAPIVersion(major, minor uint16, patch uint32) APIVersion {
	return APIVersion(uint64(major)<<48 | uint64(minor)<<32 | uint64(patch))
}

// GraphicsRequirements is what a binding family requires of the
// caller's graphics API before a session can be created with it.
type GraphicsRequirements struct {
	MinAPIVersion APIVersion
	MaxAPIVersion APIVersion
}

// SystemDesc describes the system a Runtime exposes: the head device,
// the view arrangement it renders, and what it can present.
type SystemDesc struct {
	// Head is the tracked display device. Required.
	Head device.Device

	// ViewType is the view arrangement sessions must begin with.
	ViewType compositor.ViewType

	// BlendModes are the environment blend modes the system supports.
	BlendModes compositor.BlendModeSet

	// HeadlessSupported allows creating sessions with no graphics
	// binding.
	HeadlessSupported bool
}

// System is one usable XR device stack: a head device plus the
// capabilities sessions created on it inherit.
type System struct {
	rt         *Runtime
	head       device.Device
	viewType   compositor.ViewType
	blendModes compositor.BlendModeSet
	headless   bool

	mu         sync.Mutex
	negotiated map[BindingFamily]bool
}

// NewSystem binds a system to the runtime. The head device and view
// type are required.
func (r *Runtime) NewSystem(desc SystemDesc) (*System, error) {
	if desc.Head == nil {
		return nil, errorf(ErrValidationFailure, "system requires a head device")
	}
	if desc.ViewType != compositor.ViewTypeMono && desc.ViewType != compositor.ViewTypeStereo {
		return nil, errorf(ErrValidationFailure, "view type %d is not supported", desc.ViewType)
	}
	return &System{
		rt:         r,
		head:       desc.Head,
		viewType:   desc.ViewType,
		blendModes: desc.BlendModes,
		headless:   desc.HeadlessSupported,
		negotiated: make(map[BindingFamily]bool),
	}, nil
}

// Runtime returns the owning runtime.
func (s *System) Runtime() *Runtime { return s.rt }

// Head returns the system's head device.
func (s *System) Head() device.Device { return s.head }

// ViewType returns the view arrangement the system renders.
func (s *System) ViewType() compositor.ViewType { return s.viewType }

// BlendModes returns the environment blend modes the system supports.
func (s *System) BlendModes() compositor.BlendModeSet { return s.blendModes }

// HeadlessSupported reports whether sessions may be created without a
// graphics binding.
func (s *System) HeadlessSupported() bool { return s.headless }

// GraphicsRequirements returns what the given binding family requires
// and records that the caller asked. Session creation with a binding
// whose family was never queried fails validation.
func (s *System) GraphicsRequirements(f BindingFamily) GraphicsRequirements {
	s.mu.Lock()
	s.negotiated[f] = true
	s.mu.Unlock()

	switch f {
	case FamilyOpenGL:
		return GraphicsRequirements{
			MinAPIVersion: MakeAPIVersion(3, 3, 0),
			MaxAPIVersion: MakeAPIVersion(4, 6, 0),
		}
	case FamilyVulkan:
		return GraphicsRequirements{
			MinAPIVersion: MakeAPIVersion(1, 0, 0),
			MaxAPIVersion: MakeAPIVersion(1, 3, 0),
		}
	default:
		return GraphicsRequirements{
			MinAPIVersion: MakeAPIVersion(1, 0, 0),
			MaxAPIVersion: MakeAPIVersion(1, 0, 0),
		}
	}
}

// requirementsNegotiated reports whether GraphicsRequirements was
// called for the family.
func (s *System) requirementsNegotiated(f BindingFamily) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.negotiated[f]
}
