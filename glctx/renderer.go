// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import "image"

// Renderer receives the context lifecycle callbacks. All three methods
// are invoked on the render thread with the context current, never
// concurrently with each other. OnContextCreated always precedes the
// first OnRender; OnContextClosing always follows the last one and runs
// before the native context is destroyed, even after a render failure.
//
// A context without a renderer still runs its loop, so component
// painting keeps working.
type Renderer interface {
	// OnContextCreated is the place to build textures, programs and
	// other GPU state.
	OnContextCreated()
	// OnRender draws the next frame. Returning an error stops the
	// render thread for good.
	OnRender() error
	// OnContextClosing is the last chance to release GPU state while
	// the context is still current.
	OnContextClosing()
}

// Compositor supplies software-rendered component content. When
// component painting is enabled the render loop asks it for the current
// image every frame and composites the result into the context before
// the buffer swap.
type Compositor interface {
	// PaintComponent returns the content to composite, or nil when
	// there is nothing to draw. The image is only read until the call
	// returns. Called on the render thread.
	PaintComponent() *image.RGBA
}
