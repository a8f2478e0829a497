// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"sync/atomic"

	"golang.org/x/exp/maps"
)

// Resource is a reference counted GPU side object cached on a context.
// Putting a resource into the cache transfers the caller's reference;
// the cache releases it when the entry is replaced or when the context
// is torn down.
type Resource interface {
	AddRef()
	Release()
}

// RefCounted implements the Resource reference count, running free when
// the last reference is released. It is meant for embedding:
//
//	type texture struct {
//		*glctx.RefCounted
//		id gl.Texture
//	}
//
// A new RefCounted holds one reference.
type RefCounted struct {
	refs int32
	free func()
}

// NewRefCounted returns a RefCounted with a single reference. free may
// be nil.
func NewRefCounted(free func()) *RefCounted {
	return &RefCounted{refs: 1, free: free}
}

func (r *RefCounted) AddRef() {
	atomic.AddInt32(&r.refs, 1)
}

func (r *RefCounted) Release() {
	switch n := atomic.AddInt32(&r.refs, -1); {
	case n == 0:
		if r.free != nil {
			r.free()
		}
	case n < 0:
		panic("glctx: resource released more often than retained")
	}
}

// Refs returns the current reference count.
func (r *RefCounted) Refs() int {
	return int(atomic.LoadInt32(&r.refs))
}

// resourceCache maps names to resources owned by a context. It is
// accessed from the render thread only, with the context current; that
// contract replaces internal locking.
type resourceCache struct {
	res map[string]Resource
}

func (c *resourceCache) get(name string) Resource {
	return c.res[name]
}

func (c *resourceCache) put(name string, r Resource) {
	if prev, ok := c.res[name]; ok {
		prev.Release()
	}
	if c.res == nil {
		c.res = make(map[string]Resource)
	}
	if r == nil {
		delete(c.res, name)
		return
	}
	c.res[name] = r
}

// clear releases every entry, in no particular order. It runs exactly
// once per context generation, during teardown and before the native
// context is destroyed.
func (c *resourceCache) clear() {
	for _, name := range maps.Keys(c.res) {
		c.res[name].Release()
		delete(c.res, name)
	}
}
