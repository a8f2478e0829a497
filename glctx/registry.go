// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"runtime"
	"sync"
)

// Registry is the index of which context is active on which thread.
// There is at most one entry per thread. The package wide default
// registry behaves like the usual process global; constructing contexts
// with WithRegistry keeps separate context populations isolated.
//
// Render threads are OS-locked goroutines, so goroutine identity is the
// thread identity the index is keyed by.
type Registry struct {
	mu      sync.Mutex
	current map[uint64]*Context
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{current: make(map[uint64]*Context)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used by contexts constructed
// without WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Current returns the context active on the calling thread, or nil.
func (r *Registry) Current() *Context {
	id := goroutineID()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current[id]
}

func (r *Registry) bind(id uint64, c *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current[id] = c
}

func (r *Registry) unbind(id uint64, c *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current[id] == c {
		delete(r.current, id)
	}
}

// drop removes every binding for c, wherever it was made current. It is
// called when c's native context is destroyed.
func (r *Registry) drop(c *Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cur := range r.current {
		if cur == c {
			delete(r.current, id)
		}
	}
}

// goroutineID parses the ID of the calling goroutine from its stack
// header. The runtime does not expose thread identity; for OS-locked
// goroutines the goroutine ID identifies the thread exactly.
func goroutineID() uint64 {
	var buf [64]byte
	s := buf[len("goroutine "):runtime.Stack(buf[:], false)]
	var id uint64
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
