// SPDX-License-Identifier: Unlicense OR MIT

/*
Package glctx manages the lifecycle of hardware accelerated rendering
contexts bound to a visual surface.

A Context is attached to a Surface with AttachTo. Once the surface is
visible, a native context is created and a dedicated render thread is
started. The configured Renderer receives its lifecycle callbacks on
that thread: OnContextCreated when the context has been made current for
the first time, OnRender for every frame, and OnContextClosing just
before teardown. Detach blocks until the render thread has exited and
the native context is destroyed.

All GL work for a context happens on its render thread. Callers may
attach, detach, trigger repaints and change continuous repainting from
any goroutine; everything else that touches GL state must run on the
render thread, for example through Execute.
*/
package glctx
