// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import "github.com/glkit/glkit/internal/gl"

// RawContext is the OS level context handle. Its meaning depends on the
// backend; it is only passed back into the backend or compared against
// zero.
type RawContext uintptr

// Backend is the uniform capability every platform context
// implementation provides. All methods except CreateContext and
// DestroyContext must be called on the thread the context is, or is
// being made, current on.
type Backend interface {
	// CreateContext creates a native context for the given surface
	// handle, sharing resources with share when it is nonzero.
	CreateContext(surface uintptr, pf PixelFormat, share RawContext) (RawContext, error)
	// DestroyContext destroys a context. The context must not be
	// current on any thread.
	DestroyContext(ctx RawContext)
	// MakeCurrent binds the context to the calling thread. It reports
	// failure instead of returning an error because the only recovery
	// is context recreation.
	MakeCurrent(ctx RawContext) bool
	// ClearCurrent unbinds whatever context is current on the calling
	// thread.
	ClearCurrent()
	SwapBuffers(ctx RawContext)
	// SetSwapInterval reports false when the platform does not support
	// the requested interval policy.
	SetSwapInterval(ctx RawContext, interval int) bool
	// Functions returns the core GL entry point table for the context.
	Functions(ctx RawContext) gl.Functions
	// LookupFunc resolves a dynamically loaded entry point, returning
	// nil when the platform does not export it. The context must be
	// current.
	LookupFunc(ctx RawContext, name string) any
}

// NewBackend creates the platform backend. It is set by the init
// function of the platform backend package that is linked in.
var NewBackend func() (Backend, error)
