// SPDX-License-Identifier: Unlicense OR MIT

package glctx

// Surface is the toolkit's view of the rendering target. It is
// implemented by the windowing integration; the context machinery only
// queries it and never takes ownership.
type Surface interface {
	// Size returns the surface dimensions in pixels. A zero size means
	// the surface cannot be rendered to yet.
	Size() (width, height int)
	// Visible reports whether the surface is currently on screen.
	Visible() bool
	// NativeHandle returns the platform handle the native context is
	// created against.
	NativeHandle() uintptr
	// Subscribe registers an observer for visibility and size changes.
	Subscribe(o SurfaceObserver)
	Unsubscribe(o SurfaceObserver)
}

// SurfaceObserver receives surface state change notifications. The
// surface may deliver them on any thread except the render thread.
type SurfaceObserver interface {
	// SurfaceChanged is delivered after any visibility or size change.
	SurfaceChanged()
	// SurfaceDestroyed is delivered when the surface is going away for
	// good. The observer must drop all references to it.
	SurfaceDestroyed()
}
