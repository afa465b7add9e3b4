// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package xr

import (
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// BindingFamily groups graphics bindings that share one requirements
// negotiation. Both OpenGL bindings (Xlib and EGL) belong to the same
// family.
type BindingFamily int32

const (
	// FamilyOpenGL covers desktop OpenGL and EGL bindings.
	FamilyOpenGL BindingFamily = iota + 1

	// FamilyVulkan covers the Vulkan binding.
	FamilyVulkan

	// FamilyWGPU covers the WebGPU-native bindings, both self-owned
	// devices and caller-provided device contexts.
	FamilyWGPU
)

// String returns the family name.
func (f BindingFamily) String() string {
	switch f {
	case FamilyOpenGL:
		return "opengl"
	case FamilyVulkan:
		return "vulkan"
	case FamilyWGPU:
		return "wgpu"
	default:
		return "unknown"
	}
}

// GraphicsBinding describes the graphics API a session presents with.
// The set of bindings is closed: each carries exactly the data its
// session initializer needs, already converted to engine field types.
type GraphicsBinding interface {
	// Family returns the requirements-negotiation family.
	Family() BindingFamily

	isGraphicsBinding()
}

// GraphicsBindingOpenGLXlib binds a session to a GLX context.
type GraphicsBindingOpenGLXlib struct {
	Display     uintptr
	VisualID    uint32
	GLXFBConfig uintptr
	GLXDrawable uintptr
	GLXContext  uintptr
}

func (*GraphicsBindingOpenGLXlib) Family() BindingFamily { return FamilyOpenGL }
func (*GraphicsBindingOpenGLXlib) isGraphicsBinding()    {}

// GraphicsBindingEGL binds a session to an EGL context.
type GraphicsBindingEGL struct {
	GetProcAddress uintptr
	Display        uintptr
	Config         uintptr
	Context        uintptr
}

func (*GraphicsBindingEGL) Family() BindingFamily { return FamilyOpenGL }
func (*GraphicsBindingEGL) isGraphicsBinding()    {}

// GraphicsBindingVulkan binds a session to caller-owned Vulkan objects.
type GraphicsBindingVulkan struct {
	Instance         uint64
	PhysicalDevice   uint64
	Device           uint64
	QueueFamilyIndex uint32
	QueueIndex       uint32
}

func (*GraphicsBindingVulkan) Family() BindingFamily { return FamilyVulkan }
func (*GraphicsBindingVulkan) isGraphicsBinding()    {}

// GraphicsBindingWGPU asks the session to create and own its WebGPU
// device. The zero value requests the default adapter.
type GraphicsBindingWGPU struct {
	// Label names the device in backend diagnostics.
	Label string

	// PowerPreference steers adapter selection.
	PowerPreference gputypes.PowerPreference
}

func (*GraphicsBindingWGPU) Family() BindingFamily { return FamilyWGPU }
func (*GraphicsBindingWGPU) isGraphicsBinding()    {}

// GraphicsBindingGPUContext binds a session to a caller-owned WebGPU
// device behind the gpucontext provider interface. The session never
// destroys the provided device.
type GraphicsBindingGPUContext struct {
	Provider gpucontext.DeviceProvider
}

func (*GraphicsBindingGPUContext) Family() BindingFamily { return FamilyWGPU }
func (*GraphicsBindingGPUContext) isGraphicsBinding()    {}

// bindingKind names a binding's concrete type for initializer lookup.
func bindingKind(b GraphicsBinding) string {
	switch b.(type) {
	case *GraphicsBindingOpenGLXlib:
		return BindingOpenGLXlib
	case *GraphicsBindingEGL:
		return BindingEGL
	case *GraphicsBindingVulkan:
		return BindingVulkan
	case *GraphicsBindingWGPU:
		return BindingWGPU
	case *GraphicsBindingGPUContext:
		return BindingGPUContext
	default:
		return ""
	}
}

// Binding kind names, as used with RegisterInitializer.
const (
	BindingOpenGLXlib = "opengl-xlib"
	BindingEGL        = "egl"
	BindingVulkan     = "vulkan"
	BindingWGPU       = "wgpu"
	BindingGPUContext = "gpucontext"
)

// SessionInitializer wires a session to a graphics backend: it builds
// the compositor for the binding and attaches it with
// Session.AttachCompositor. On error the session is torn down by the
// caller.
type SessionInitializer func(sys *System, binding GraphicsBinding, sess *Session) error

// registry holds registered session initializers.
var (
	registryMu   sync.RWMutex
	initializers = make(map[string]SessionInitializer)
)

// RegisterInitializer registers a session initializer for a binding
// kind. This is typically called from init() functions in binding
// packages. If an initializer for the same kind is already registered,
// it will be replaced.
func RegisterInitializer(kind string, init SessionInitializer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	initializers[kind] = init
}

// UnregisterInitializer removes an initializer from the registry.
// This is useful for testing.
func UnregisterInitializer(kind string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(initializers, kind)
}

// InitializerRegistered checks if an initializer for the given binding
// kind is registered.
func InitializerRegistered(kind string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := initializers[kind]
	return ok
}

// RegisteredBindings returns a list of binding kinds with initializers.
func RegisteredBindings() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]string, 0, len(initializers))
	for kind := range initializers {
		kinds = append(kinds, kind)
	}
	return kinds
}

// initializerFor returns the initializer for a binding kind.
// Returns nil if none is registered.
func initializerFor(kind string) SessionInitializer {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return initializers[kind]
}
