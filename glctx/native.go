// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	log "github.com/sirupsen/logrus"

	"github.com/glkit/glkit/internal/gl"
)

// NativeContext owns exactly one platform context bound to one surface.
// It is single-owner state: after creation it belongs to the render
// thread, which is also where it must be destroyed. Only Destroy may be
// called from elsewhere, and only when the render thread is gone.
type NativeContext struct {
	backend  Backend
	raw      RawContext
	funcs    gl.Functions
	exts     gl.Extensions
	loaded   bool
	interval int

	destroyed bool
}

func newNativeContext(b Backend, surface uintptr, pf PixelFormat, share RawContext) (*NativeContext, error) {
	raw, err := b.CreateContext(surface, pf, share)
	if err != nil {
		return nil, &ContextCreationError{Cause: err}
	}
	log.WithField("context", raw).Debug("glctx: native context created")
	return &NativeContext{
		backend:  b,
		raw:      raw,
		funcs:    b.Functions(raw),
		interval: 1,
	}, nil
}

// MakeCurrent binds the context to the calling thread. The dynamically
// loaded entry point table is populated on the first successful
// activation; some platforms only resolve entry points with a current
// context.
func (nc *NativeContext) MakeCurrent() bool {
	if !nc.backend.MakeCurrent(nc.raw) {
		return false
	}
	if !nc.loaded {
		nc.exts.Load(nc.funcs, func(name string) any {
			return nc.backend.LookupFunc(nc.raw, name)
		})
		nc.loaded = true
	}
	return true
}

func (nc *NativeContext) ClearCurrent() {
	nc.backend.ClearCurrent()
}

func (nc *NativeContext) SwapBuffers() {
	nc.backend.SwapBuffers(nc.raw)
}

// SetSwapInterval requests n vertical sync intervals between buffer
// swaps: 0 disables synchronization, 1 syncs every frame, larger values
// sync every nth frame. It reports false, leaving the previous interval
// in place, when the platform does not support the requested policy.
func (nc *NativeContext) SetSwapInterval(n int) bool {
	if n < 0 {
		return false
	}
	if !nc.backend.SetSwapInterval(nc.raw, n) {
		return false
	}
	nc.interval = n
	return true
}

func (nc *NativeContext) SwapInterval() int {
	return nc.interval
}

// Destroy releases the platform context. Destroying a context twice is
// a caller bug.
func (nc *NativeContext) Destroy() {
	if nc.destroyed {
		panic("glctx: native context destroyed twice")
	}
	nc.destroyed = true
	nc.backend.DestroyContext(nc.raw)
	log.WithField("context", nc.raw).Debug("glctx: native context destroyed")
}

func (nc *NativeContext) Raw() RawContext {
	return nc.raw
}

func (nc *NativeContext) Functions() gl.Functions {
	return nc.funcs
}

func (nc *NativeContext) Extensions() *gl.Extensions {
	return &nc.exts
}
