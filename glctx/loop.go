// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// nominalFramePeriod paces free-running frames when the platform's
// buffer swap does not block. With a nonzero swap interval the swap
// itself throttles the loop to the display rate.
const nominalFramePeriod = 16 * time.Millisecond

// renderLoop drives one native context on a dedicated OS-locked
// goroutine. All renderer callbacks, cache access and buffer swaps for
// the context happen on that goroutine, which keeps the context current
// for its entire life.
type renderLoop struct {
	c        *Context
	nc       *NativeContext
	renderer Renderer

	gid atomic.Uint64

	// repaint is buffered with capacity one so that any number of
	// triggers between two frames coalesce into a single extra frame.
	repaint chan struct{}
	funcs   chan func()

	stop     chan struct{}
	stopOnce sync.Once
	stopped  chan struct{}

	// err holds the terminal render failure. Written by the loop
	// goroutine only; read after stopped is closed.
	err error

	comp componentTarget
}

var errMakeCurrent = errors.New("glctx: cannot make the new context current")

// startLoop spins up the render thread for nc and blocks until the
// context is current and the renderer's creation callback has run. On
// error no goroutine is left behind and nc is still owned by the
// caller.
func startLoop(c *Context, nc *NativeContext) (*renderLoop, error) {
	l := &renderLoop{
		c:        c,
		nc:       nc,
		renderer: c.configuredRenderer(),
		repaint:  make(chan struct{}, 1),
		funcs:    make(chan func()),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	initErr := make(chan error)
	go func() {
		defer close(l.stopped)
		// GL state is bound to the OS thread. The thread is never
		// unlocked again so the runtime cannot hand it to another
		// goroutine while driver state may linger on it.
		runtime.LockOSThread()
		l.gid.Store(goroutineID())
		if !c.makeActive(nc) {
			initErr <- errMakeCurrent
			return
		}
		nc.SetSwapInterval(c.pendingSwapInterval())
		l.comp.create(c, nc)
		err := guardCallback(func() {
			if l.renderer != nil {
				l.renderer.OnContextCreated()
			}
		})
		initErr <- nil
		if err == nil {
			err = l.run()
		}
		l.err = err
		if err != nil {
			c.setErr(err)
			log.WithError(err).Error("glctx: render thread failed")
		}
		// Fixed teardown order, still on the render thread with the
		// context current: closing callback, resource cache, paint
		// target, then the native context itself.
		guardCallback(func() {
			if l.renderer != nil {
				l.renderer.OnContextClosing()
			}
		})
		c.cache.clear()
		l.comp.release()
		c.clearActive(nc)
		c.registry().drop(c)
		nc.Destroy()
	}()
	if err := <-initErr; err != nil {
		<-l.stopped
		return nil, err
	}
	return l, nil
}

func (l *renderLoop) run() error {
	ticker := time.NewTicker(nominalFramePeriod)
	defer ticker.Stop()
	for {
		// The free-run tick is only armed while continuous repainting
		// is on; explicit triggers work either way.
		var tick <-chan time.Time
		if l.c.continuousRepainting() {
			tick = ticker.C
		}
		select {
		case <-l.stop:
			return nil
		case f := <-l.funcs:
			f()
		case <-l.repaint:
			if err := l.frame(); err != nil {
				return err
			}
		case <-tick:
			if err := l.frame(); err != nil {
				return err
			}
		}
	}
}

// frame renders one frame. A panic or error escaping the renderer is a
// terminal failure for the thread, not for the process.
func (l *renderLoop) frame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("glctx: panic in renderer: %v", r)
		}
	}()
	if l.renderer != nil {
		if rerr := l.renderer.OnRender(); rerr != nil {
			return fmt.Errorf("glctx: renderer failed: %w", rerr)
		}
	}
	l.comp.compose()
	l.nc.SwapBuffers()
	return nil
}

func (l *renderLoop) triggerRepaint() {
	select {
	case l.repaint <- struct{}{}:
	default:
	}
}

// Run executes f on the render thread and waits for it to return. When
// called from the render thread itself it runs f directly.
func (l *renderLoop) Run(f func()) error {
	if l.onRenderThread() {
		f()
		return nil
	}
	done := make(chan struct{})
	g := func() {
		defer close(done)
		f()
	}
	select {
	case l.funcs <- g:
	case <-l.stopped:
		return ErrDetached
	}
	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrDetached
	}
}

// Stop shuts the loop down and joins it. It is idempotent and safe to
// call on a loop that already failed. Calling it from the render thread
// would be a self-join, which is a caller bug.
func (l *renderLoop) Stop() error {
	if l.onRenderThread() {
		panic("glctx: Detach called from the render thread")
	}
	l.stopOnce.Do(func() {
		close(l.stop)
	})
	<-l.stopped
	return l.err
}

func (l *renderLoop) exited() bool {
	select {
	case <-l.stopped:
		return true
	default:
		return false
	}
}

func (l *renderLoop) onRenderThread() bool {
	return l.gid.Load() == goroutineID()
}

func guardCallback(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("glctx: panic in renderer: %v", r)
		}
	}()
	f()
	return nil
}
