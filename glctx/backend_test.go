// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"sync"

	"github.com/glkit/glkit/internal/gl"
)

// fakeBackend is an in-memory Backend for exercising the lifecycle
// machinery without a GPU.
type fakeBackend struct {
	mu            sync.Mutex
	nextCtx       RawContext
	createErr     error
	makeCurrentOK bool
	maxInterval   int
	noShaders     bool

	created   []RawContext
	destroyed []RawContext
	swaps     map[RawContext]int
	intervals map[RawContext]int
	lookups   map[string]int
	funcs     *fakeFuncs
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		makeCurrentOK: true,
		maxInterval:   4,
		swaps:         make(map[RawContext]int),
		intervals:     make(map[RawContext]int),
		lookups:       make(map[string]int),
		funcs: &fakeFuncs{
			extensions: "GL_ARB_framebuffer_object GL_ARB_shader_objects",
		},
	}
}

func (b *fakeBackend) CreateContext(surface uintptr, pf PixelFormat, share RawContext) (RawContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.createErr != nil {
		return 0, b.createErr
	}
	b.nextCtx++
	ctx := b.nextCtx
	b.created = append(b.created, ctx)
	b.intervals[ctx] = 1
	return ctx, nil
}

func (b *fakeBackend) DestroyContext(ctx RawContext) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = append(b.destroyed, ctx)
}

func (b *fakeBackend) MakeCurrent(ctx RawContext) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.makeCurrentOK
}

func (b *fakeBackend) ClearCurrent() {}

func (b *fakeBackend) SwapBuffers(ctx RawContext) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.swaps[ctx]++
}

func (b *fakeBackend) SetSwapInterval(ctx RawContext, interval int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if interval < 0 || interval > b.maxInterval {
		return false
	}
	b.intervals[ctx] = interval
	return true
}

func (b *fakeBackend) Functions(ctx RawContext) gl.Functions {
	return b.funcs
}

func (b *fakeBackend) LookupFunc(ctx RawContext, name string) any {
	b.mu.Lock()
	b.lookups[name]++
	noShaders := b.noShaders
	b.mu.Unlock()
	switch name {
	case "glGenFramebuffers":
		return func() gl.Framebuffer {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.nextCtx++ // any unique nonzero value will do
			return gl.Framebuffer{V: uint(b.nextCtx)}
		}
	case "glDeleteFramebuffers":
		return func(gl.Framebuffer) {}
	case "glBindFramebuffer":
		return func(gl.Enum, gl.Framebuffer) {}
	case "glFramebufferTexture2D":
		return func(gl.Enum, gl.Enum, gl.Enum, gl.Texture, int) {}
	case "glCheckFramebufferStatus":
		return func(gl.Enum) gl.Enum { return gl.FRAMEBUFFER_COMPLETE }
	}
	if noShaders {
		return nil
	}
	switch name {
	case "glCreateProgram":
		return func() gl.Program { return gl.Program{V: 1} }
	case "glDeleteProgram":
		return func(gl.Program) {}
	case "glUseProgram":
		return func(gl.Program) {}
	case "glCreateShader":
		return func(gl.Enum) gl.Shader { return gl.Shader{V: 1} }
	case "glDeleteShader":
		return func(gl.Shader) {}
	}
	return nil
}

func (b *fakeBackend) swapCount(ctx RawContext) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.swaps[ctx]
}

func (b *fakeBackend) destroyedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.destroyed)
}

func (b *fakeBackend) createdCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.created)
}

func (b *fakeBackend) lookupCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lookups[name]
}

// fakeFuncs records the GL calls the machinery issues.
type fakeFuncs struct {
	mu         sync.Mutex
	extensions string

	nextTex     uint
	deletedTex  []gl.Texture
	verts       []float32
	uvs         []float32
	scissor     [4]int
	draws       int
	texImages   int
	texSubs     int
	texSubBytes int
}

func (f *fakeFuncs) ActiveTexture(texture gl.Enum)       {}
func (f *fakeFuncs) BindTexture(target gl.Enum, t gl.Texture) {}
func (f *fakeFuncs) Clear(mask gl.Enum)                  {}
func (f *fakeFuncs) ClearColor(r, g, b, a float32)       {}

func (f *fakeFuncs) CreateTexture() gl.Texture {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTex++
	return gl.Texture{V: f.nextTex}
}

func (f *fakeFuncs) DeleteTexture(t gl.Texture) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedTex = append(f.deletedTex, t)
}

func (f *fakeFuncs) Disable(cap gl.Enum)            {}
func (f *fakeFuncs) DisableClientState(array gl.Enum) {}

func (f *fakeFuncs) DrawArrays(mode gl.Enum, first, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draws++
}

func (f *fakeFuncs) Enable(cap gl.Enum)            {}
func (f *fakeFuncs) EnableClientState(array gl.Enum) {}
func (f *fakeFuncs) Finish()                       {}
func (f *fakeFuncs) Flush()                        {}
func (f *fakeFuncs) GetError() gl.Enum             { return gl.NO_ERROR }
func (f *fakeFuncs) GetInteger(pname gl.Enum) int  { return 0 }

func (f *fakeFuncs) GetString(pname gl.Enum) string {
	if pname == gl.EXTENSIONS {
		return f.extensions
	}
	return "fake"
}

func (f *fakeFuncs) PixelStorei(pname gl.Enum, param int) {}

func (f *fakeFuncs) Scissor(x, y, width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scissor = [4]int{x, y, width, height}
}

func (f *fakeFuncs) TexCoordPointer(size, stride int, data []float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uvs = append([]float32(nil), data...)
}

func (f *fakeFuncs) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texImages++
}

func (f *fakeFuncs) TexParameteri(target, pname gl.Enum, param int) {}

func (f *fakeFuncs) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texSubs++
	f.texSubBytes = len(data)
}

func (f *fakeFuncs) VertexPointer(size, stride int, data []float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verts = append([]float32(nil), data...)
}

func (f *fakeFuncs) Viewport(x, y, width, height int) {}

func (f *fakeFuncs) drawCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draws
}

func (f *fakeFuncs) lastVerts() []float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verts
}

func (f *fakeFuncs) lastUVs() []float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uvs
}

func (f *fakeFuncs) lastScissor() [4]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scissor
}

func (f *fakeFuncs) texSubCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.texSubs
}
