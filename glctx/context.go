// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
)

func init() {
	if envy.Get("GLKIT_DEBUG", "") != "" {
		log.SetLevel(log.DebugLevel)
	}
}

// defaultSwapInterval reads the initial swap interval from the
// environment, defaulting to syncing every frame.
func defaultSwapInterval() int {
	n, err := strconv.Atoi(envy.Get("GLKIT_SWAP_INTERVAL", "1"))
	if err != nil || n < 0 {
		return 1
	}
	return n
}

// Option configures infrastructure of a new Context.
type Option func(*Context)

// WithBackend uses b instead of the registered platform backend.
func WithBackend(b Backend) Option {
	return func(c *Context) {
		c.backend = b
	}
}

// WithRegistry tracks the context's active state in r instead of the
// default registry.
func WithRegistry(r *Registry) Option {
	return func(c *Context) {
		c.reg = r
	}
}

// Context is the single object applications hold: it carries the
// pre-attach configuration, owns the surface attachment and fronts the
// per-context state queries. The zero value is not usable; construct
// with New.
type Context struct {
	backend Backend
	reg     *Registry

	mu           sync.Mutex
	renderer     Renderer
	compositor   Compositor
	pf           PixelFormat
	share        *Context
	paintEnabled bool
	swapInterval int
	att          *attachment

	continuous atomic.Bool

	width, height atomic.Int32
	fboID         atomic.Uint32

	errMu sync.Mutex
	err   error

	cache resourceCache
}

// New creates an unattached context with the default pixel format,
// component painting enabled and continuous repainting on.
func New(opts ...Option) *Context {
	c := &Context{
		reg:          defaultRegistry,
		pf:           DefaultPixelFormat(),
		paintEnabled: true,
		swapInterval: defaultSwapInterval(),
	}
	c.continuous.Store(true)
	for _, o := range opts {
		o(c)
	}
	return c
}

// Current returns the context active on the calling thread in the
// default registry, or nil. Inside renderer callbacks and Execute this
// is the context driving them.
func Current() *Context {
	return defaultRegistry.Current()
}

// SetRenderer configures the renderer invoked on the render thread. The
// context does not own r; it must outlive the attachment. Must be
// called before AttachTo.
func (c *Context) SetRenderer(r Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertConfigurable("SetRenderer")
	c.renderer = r
}

// SetComponentPaintingEnabled controls whether software-painted
// component content is composited each frame. Enabled by default;
// disable it when all drawing happens in the renderer. Must be called
// before AttachTo.
func (c *Context) SetComponentPaintingEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertConfigurable("SetComponentPaintingEnabled")
	c.paintEnabled = enabled
}

// SetCompositor configures the source of software-painted content. Must
// be called before AttachTo.
func (c *Context) SetCompositor(comp Compositor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertConfigurable("SetCompositor")
	c.compositor = comp
}

// SetPixelFormat configures the buffer layout requested for the native
// context. Must be called before AttachTo.
func (c *Context) SetPixelFormat(pf PixelFormat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertConfigurable("SetPixelFormat")
	c.pf = pf
}

// SetShareContext requests resource sharing with another context. The
// other context must stay alive while this one may use it. Must be
// called before AttachTo.
func (c *Context) SetShareContext(other *Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assertConfigurable("SetShareContext")
	c.share = other
}

// SetContinuousRepainting switches the free-running frame cadence on or
// off. Unlike the other setters this may be flipped at any time; with
// it off, frames render only on TriggerRepaint.
func (c *Context) SetContinuousRepainting(on bool) {
	c.continuous.Store(on)
}

// AttachTo binds the context to a surface. For a visible surface the
// native context is created and the render thread started before
// AttachTo returns; otherwise creation is deferred until the surface
// becomes visible. Attaching to the surface the context is already
// attached to is a no-op.
func (c *Context) AttachTo(s Surface) error {
	c.mu.Lock()
	if c.att != nil {
		att := c.att
		c.mu.Unlock()
		if att.surface == s {
			return nil
		}
		return ErrAlreadyAttached
	}
	if c.backend == nil {
		if NewBackend == nil {
			c.mu.Unlock()
			return errNoBackend
		}
		b, err := NewBackend()
		if err != nil {
			c.mu.Unlock()
			return err
		}
		c.backend = b
	}
	att := newAttachment(c, s)
	c.att = att
	c.mu.Unlock()
	if err := att.attach(); err != nil {
		c.mu.Lock()
		c.att = nil
		c.mu.Unlock()
		return err
	}
	return nil
}

// Detach tears the attachment down. It blocks until the render thread
// has exited and the native context is destroyed, which is why it must
// not be called from the render thread. Detaching a detached context is
// a no-op.
func (c *Context) Detach() {
	c.mu.Lock()
	att := c.att
	c.mu.Unlock()
	if att == nil {
		return
	}
	att.detach()
	c.mu.Lock()
	if c.att == att {
		c.att = nil
	}
	c.mu.Unlock()
	c.fboID.Store(0)
}

// IsAttached reports whether a render thread is live and the surface is
// on screen. It is false between AttachTo on a hidden surface and the
// surface becoming visible.
func (c *Context) IsAttached() bool {
	att := c.attachment()
	return att != nil && att.isAttached()
}

// Target returns the surface passed to AttachTo, or nil.
func (c *Context) Target() Surface {
	att := c.attachment()
	if att == nil {
		return nil
	}
	return att.surface
}

// TriggerRepaint asynchronously schedules one frame. Any number of
// triggers before the next frame renders coalesce into a single frame.
func (c *Context) TriggerRepaint() {
	att := c.attachment()
	if att == nil {
		return
	}
	if l := att.runningLoop(); l != nil {
		l.triggerRepaint()
	}
}

// Execute runs f on the render thread with the context current and
// waits for it to return. When called from the render thread itself, f
// runs inline.
func (c *Context) Execute(f func()) error {
	att := c.attachment()
	if att == nil {
		return ErrDetached
	}
	l := att.runningLoop()
	if l == nil {
		return ErrDetached
	}
	return l.Run(f)
}

// Width returns the context width in pixels, 0 while detached.
func (c *Context) Width() int {
	return int(c.width.Load())
}

// Height returns the context height in pixels, 0 while detached.
func (c *Context) Height() int {
	return int(c.height.Load())
}

// FrameBufferID returns the framebuffer the component paint target is
// bound to, or 0 when the context renders straight to the surface.
func (c *Context) FrameBufferID() uint {
	return uint(c.fboID.Load())
}

// ShadersAvailable reports whether the shader object entry points were
// resolved for the live native context.
func (c *Context) ShadersAvailable() bool {
	nc := c.native()
	return nc != nil && nc.Extensions().ShadersSupported()
}

// AssociatedObject retrieves a resource stored with
// SetAssociatedObject, or nil. Render thread only.
func (c *Context) AssociatedObject(name string) Resource {
	c.assertRenderThread("AssociatedObject")
	return c.cache.get(name)
}

// SetAssociatedObject caches a named resource on the context, taking
// over the caller's reference. A previous entry under the same name is
// released; storing nil just removes the entry. Everything left in the
// cache is released during teardown, before the native context is
// destroyed. Render thread only.
func (c *Context) SetAssociatedObject(name string, r Resource) {
	c.assertRenderThread("SetAssociatedObject")
	c.cache.put(name, r)
}

// MakeActive makes the context current on the calling thread. Renderer
// callbacks already run with the context active; this is for render
// thread code paths that switched contexts in between.
func (c *Context) MakeActive() bool {
	nc := c.native()
	if nc == nil {
		return false
	}
	return c.makeActive(nc)
}

// IsActive reports whether this context is current on the calling
// thread.
func (c *Context) IsActive() bool {
	return c.reg.Current() == c
}

// SwapBuffers presents the back buffer. The render loop swaps after
// every frame already; this is for render thread code outside the
// frame path.
func (c *Context) SwapBuffers() {
	c.assertRenderThread("SwapBuffers")
	c.native().SwapBuffers()
}

// SetSwapInterval requests the vertical sync policy: 0 no sync, 1 sync
// every frame, n>1 sync every nth frame. Before AttachTo the value is
// recorded and applied when the native context comes up; afterwards it
// is applied directly and must be called on the render thread. Reports
// false, keeping the previous interval, when the platform does not
// support the requested policy.
func (c *Context) SetSwapInterval(n int) bool {
	nc := c.native()
	if nc == nil {
		if n < 0 {
			return false
		}
		c.mu.Lock()
		c.swapInterval = n
		c.mu.Unlock()
		return true
	}
	c.assertRenderThread("SetSwapInterval")
	return nc.SetSwapInterval(n)
}

// SwapInterval returns the current swap interval.
func (c *Context) SwapInterval() int {
	nc := c.native()
	if nc == nil {
		return c.pendingSwapInterval()
	}
	return nc.SwapInterval()
}

// RawContext returns the OS level context handle, 0 while no native
// context exists. The meaning of the value is backend specific.
func (c *Context) RawContext() RawContext {
	nc := c.native()
	if nc == nil {
		return 0
	}
	return nc.Raw()
}

// Err returns the first terminal render thread failure, or nil.
func (c *Context) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Context) setErr(err error) {
	if err == nil {
		return
	}
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()
}

func (c *Context) assertConfigurable(what string) {
	if c.att != nil {
		panic("glctx: " + what + " must be called before AttachTo")
	}
}

func (c *Context) assertRenderThread(what string) {
	att := c.attachment()
	if att != nil {
		if l := att.liveLoop(); l != nil && l.onRenderThread() {
			return
		}
	}
	panic("glctx: " + what + " called off the render thread")
}

func (c *Context) attachment() *attachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.att
}

func (c *Context) native() *NativeContext {
	att := c.attachment()
	if att == nil {
		return nil
	}
	return att.native()
}

func (c *Context) registry() *Registry {
	return c.reg
}

func (c *Context) makeActive(nc *NativeContext) bool {
	if !nc.MakeCurrent() {
		return false
	}
	c.reg.bind(goroutineID(), c)
	return true
}

func (c *Context) clearActive(nc *NativeContext) {
	nc.ClearCurrent()
	c.reg.unbind(goroutineID(), c)
}

func (c *Context) configuredRenderer() Renderer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderer
}

func (c *Context) configuredCompositor() Compositor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compositor
}

func (c *Context) componentPaintingOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paintEnabled
}

func (c *Context) continuousRepainting() bool {
	return c.continuous.Load()
}

func (c *Context) pixelFormat() PixelFormat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pf
}

// shareWith resolves the raw handle of the configured share context, 0
// when there is none or it has no native context yet.
func (c *Context) shareWith() RawContext {
	c.mu.Lock()
	share := c.share
	c.mu.Unlock()
	if share == nil {
		return 0
	}
	return share.RawContext()
}

func (c *Context) pendingSwapInterval() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.swapInterval
}

func (c *Context) setFrameBufferID(id uint) {
	c.fboID.Store(uint32(id))
}
