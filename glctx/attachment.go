// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

type attachState uint8

const (
	stateDetached attachState = iota
	stateWaitingForVisibility
	stateAttached
	stateDetaching
	// stateFailed is entered when the render thread stopped on its own
	// after a terminal render failure. The thread is not restarted; the
	// attachment stays inert until Detach.
	stateFailed
)

func (s attachState) String() string {
	switch s {
	case stateDetached:
		return "detached"
	case stateWaitingForVisibility:
		return "waiting-for-visibility"
	case stateAttached:
		return "attached"
	case stateDetaching:
		return "detaching"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

// attachment tracks one context's relationship to one surface and
// decides when the native context and render thread exist. It observes
// the surface and owns the state machine
// Detached -> WaitingForVisibility -> Attached -> Detaching -> Detached.
type attachment struct {
	c       *Context
	surface Surface

	// transMu serializes lifecycle transitions, including the blocking
	// join of the render thread. mu guards the fields below and is
	// never held across a blocking call, so the render thread may query
	// attachment state at any time.
	transMu sync.Mutex
	mu      sync.Mutex
	state   attachState
	loop    *renderLoop
	nc      *NativeContext
}

func newAttachment(c *Context, s Surface) *attachment {
	return &attachment{c: c, surface: s, state: stateDetached}
}

func (a *attachment) attach() error {
	a.transMu.Lock()
	defer a.transMu.Unlock()
	a.setState(stateWaitingForVisibility)
	a.surface.Subscribe(a)
	if err := a.evaluate(); err != nil {
		a.surface.Unsubscribe(a)
		a.setState(stateDetached)
		return err
	}
	return nil
}

// evaluate settles the state machine against the surface's current
// visibility and size. transMu must be held.
func (a *attachment) evaluate() error {
	for {
		visible := a.surface.Visible()
		w, h := a.surface.Size()
		switch a.currentState() {
		case stateWaitingForVisibility:
			if !visible || w <= 0 || h <= 0 {
				return nil
			}
			return a.start(w, h)
		case stateAttached:
			a.mu.Lock()
			loop := a.loop
			a.mu.Unlock()
			if loop.exited() {
				// Terminal render failure. Collect the loop's error and
				// park the attachment; only Detach leaves this state.
				a.c.setErr(loop.Stop())
				a.mu.Lock()
				a.loop, a.nc = nil, nil
				a.state = stateFailed
				a.mu.Unlock()
				return nil
			}
			if visible && w > 0 && h > 0 {
				a.c.width.Store(int32(w))
				a.c.height.Store(int32(h))
				return nil
			}
			// Hidden or unsized: tear down and wait for the surface to
			// come back. Re-evaluate afterwards in case it already has.
			a.stopRenderThread(stateWaitingForVisibility)
			continue
		default:
			return nil
		}
	}
}

// start creates the native context at the surface's size and brings up
// the render thread. transMu must be held.
func (a *attachment) start(w, h int) error {
	c := a.c
	c.width.Store(int32(w))
	c.height.Store(int32(h))
	nc, err := newNativeContext(c.backend, a.surface.NativeHandle(), c.pixelFormat(), c.shareWith())
	if err != nil {
		return err
	}
	loop, err := startLoop(c, nc)
	if err != nil {
		nc.Destroy()
		return err
	}
	a.mu.Lock()
	a.nc, a.loop = nc, loop
	a.state = stateAttached
	a.mu.Unlock()
	log.WithFields(log.Fields{"width": w, "height": h}).Debug("glctx: surface attached")
	return nil
}

// stopRenderThread joins the render thread and moves to next. The
// loop and native context stay visible until the join completes so
// that in-flight render thread code keeps working during teardown.
// transMu must be held.
func (a *attachment) stopRenderThread(next attachState) {
	a.mu.Lock()
	loop := a.loop
	a.state = stateDetaching
	a.mu.Unlock()
	if loop != nil {
		a.c.setErr(loop.Stop())
	}
	a.mu.Lock()
	a.loop, a.nc = nil, nil
	a.state = next
	a.mu.Unlock()
	a.c.width.Store(0)
	a.c.height.Store(0)
}

func (a *attachment) SurfaceChanged() {
	a.transMu.Lock()
	defer a.transMu.Unlock()
	if err := a.evaluate(); err != nil {
		// Deferred context creation failed; there is no attach call to
		// return the error to.
		a.c.setErr(err)
		log.WithError(err).Error("glctx: context creation on surface change failed")
	}
}

func (a *attachment) SurfaceDestroyed() {
	a.shutdown()
}

func (a *attachment) detach() {
	if loop := a.liveLoop(); loop != nil && loop.onRenderThread() {
		// A self-join can never finish.
		panic("glctx: Detach called from the render thread")
	}
	a.shutdown()
}

func (a *attachment) shutdown() {
	a.transMu.Lock()
	defer a.transMu.Unlock()
	if a.currentState() == stateDetached {
		return
	}
	a.surface.Unsubscribe(a)
	a.stopRenderThread(stateDetached)
}

func (a *attachment) isAttached() bool {
	a.mu.Lock()
	ok := a.state == stateAttached && a.loop != nil && !a.loop.exited()
	a.mu.Unlock()
	return ok && a.surface.Visible()
}

// runningLoop returns the render loop while the attachment is live, or
// nil.
func (a *attachment) runningLoop() *renderLoop {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != stateAttached {
		return nil
	}
	return a.loop
}

// liveLoop returns the render loop regardless of attachment state, nil
// once teardown has completed. Render thread identity checks use it so
// they keep holding during the closing callback.
func (a *attachment) liveLoop() *renderLoop {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loop
}

func (a *attachment) native() *NativeContext {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nc
}

func (a *attachment) currentState() attachState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *attachment) setState(s attachState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}
