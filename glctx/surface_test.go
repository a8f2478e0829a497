// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"sync"
	"testing"
	"time"
)

// fakeSurface is a Surface whose visibility and size are driven by the
// test. Observer callbacks run outside the surface lock, never on the
// render thread.
type fakeSurface struct {
	mu      sync.Mutex
	visible bool
	w, h    int
	handle  uintptr
	obs     []SurfaceObserver
}

func newFakeSurface(w, h int, visible bool) *fakeSurface {
	return &fakeSurface{visible: visible, w: w, h: h, handle: 0xfeed}
}

func (s *fakeSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

func (s *fakeSurface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *fakeSurface) NativeHandle() uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

func (s *fakeSurface) Subscribe(o SurfaceObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs = append(s.obs, o)
}

func (s *fakeSurface) Unsubscribe(o SurfaceObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ob := range s.obs {
		if ob == o {
			s.obs = append(s.obs[:i], s.obs[i+1:]...)
			return
		}
	}
}

func (s *fakeSurface) observers() []SurfaceObserver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SurfaceObserver(nil), s.obs...)
}

func (s *fakeSurface) show() {
	s.mu.Lock()
	s.visible = true
	s.mu.Unlock()
	for _, o := range s.observers() {
		o.SurfaceChanged()
	}
}

func (s *fakeSurface) hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
	for _, o := range s.observers() {
		o.SurfaceChanged()
	}
}

func (s *fakeSurface) resize(w, h int) {
	s.mu.Lock()
	s.w, s.h = w, h
	s.mu.Unlock()
	for _, o := range s.observers() {
		o.SurfaceChanged()
	}
}

func (s *fakeSurface) destroy() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
	for _, o := range s.observers() {
		o.SurfaceDestroyed()
	}
}

// mockRenderer records lifecycle callbacks in order.
type mockRenderer struct {
	mu        sync.Mutex
	seq       []string
	renderErr error
	renderCh  chan struct{}
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{renderCh: make(chan struct{}, 64)}
}

func (r *mockRenderer) OnContextCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq = append(r.seq, "created")
}

func (r *mockRenderer) OnRender() error {
	r.mu.Lock()
	r.seq = append(r.seq, "render")
	err := r.renderErr
	r.mu.Unlock()
	select {
	case r.renderCh <- struct{}{}:
	default:
	}
	return err
}

func (r *mockRenderer) OnContextClosing() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq = append(r.seq, "closing")
}

func (r *mockRenderer) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.seq...)
}

func (r *mockRenderer) count(event string) int {
	n := 0
	for _, e := range r.events() {
		if e == event {
			n++
		}
	}
	return n
}

func waitSignal(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", msg)
	}
}

func waitUntil(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting until %s", msg)
}

func expectPanic(t *testing.T, msg string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic: %s", msg)
		}
	}()
	f()
}
