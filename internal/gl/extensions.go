// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Extensions is the per-context table of dynamically loaded GL entry
// points. Fields left nil after Load were not provided by the platform;
// callers must check availability before use.
type Extensions struct {
	names []string

	// Framebuffer objects.
	GenFramebuffer         func() Framebuffer
	DeleteFramebuffer      func(f Framebuffer)
	BindFramebuffer        func(target Enum, f Framebuffer)
	FramebufferTexture2D   func(target, attachment, texTarget Enum, t Texture, level int)
	CheckFramebufferStatus func(target Enum) Enum

	// Shader objects.
	CreateProgram func() Program
	DeleteProgram func(p Program)
	UseProgram    func(p Program)
	CreateShader  func(ty Enum) Shader
	DeleteShader  func(s Shader)
}

// Load populates the table by querying the platform for each entry
// point. It is called exactly once per context, with the context
// current. Entry points the platform does not export stay nil.
func (e *Extensions) Load(f Functions, lookup func(name string) any) {
	e.names = strings.Fields(f.GetString(EXTENSIONS))

	e.GenFramebuffer, _ = lookup("glGenFramebuffers").(func() Framebuffer)
	e.DeleteFramebuffer, _ = lookup("glDeleteFramebuffers").(func(Framebuffer))
	e.BindFramebuffer, _ = lookup("glBindFramebuffer").(func(Enum, Framebuffer))
	e.FramebufferTexture2D, _ = lookup("glFramebufferTexture2D").(func(Enum, Enum, Enum, Texture, int))
	e.CheckFramebufferStatus, _ = lookup("glCheckFramebufferStatus").(func(Enum) Enum)

	e.CreateProgram, _ = lookup("glCreateProgram").(func() Program)
	e.DeleteProgram, _ = lookup("glDeleteProgram").(func(Program))
	e.UseProgram, _ = lookup("glUseProgram").(func(Program))
	e.CreateShader, _ = lookup("glCreateShader").(func(Enum) Shader)
	e.DeleteShader, _ = lookup("glDeleteShader").(func(Shader))
}

// Has reports whether the context advertises the named extension.
func (e *Extensions) Has(name string) bool {
	return slices.Contains(e.names, name)
}

// FramebuffersSupported reports whether the framebuffer object entry
// points were all resolved.
func (e *Extensions) FramebuffersSupported() bool {
	return e.GenFramebuffer != nil && e.DeleteFramebuffer != nil &&
		e.BindFramebuffer != nil && e.FramebufferTexture2D != nil &&
		e.CheckFramebufferStatus != nil
}

// ShadersSupported reports whether the shader object entry points were
// all resolved.
func (e *Extensions) ShadersSupported() bool {
	return e.CreateProgram != nil && e.DeleteProgram != nil &&
		e.UseProgram != nil && e.CreateShader != nil && e.DeleteShader != nil
}
