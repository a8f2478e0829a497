// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the table of core GL entry points a native context
// exposes. The platform backend provides an implementation bound to its
// context; every method must be called with that context current.
type Functions interface {
	ActiveTexture(texture Enum)
	BindTexture(target Enum, t Texture)
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	CreateTexture() Texture
	DeleteTexture(t Texture)
	Disable(cap Enum)
	DisableClientState(array Enum)
	DrawArrays(mode Enum, first, count int)
	Enable(cap Enum)
	EnableClientState(array Enum)
	Finish()
	Flush()
	GetError() Enum
	GetInteger(pname Enum) int
	GetString(pname Enum) string
	PixelStorei(pname Enum, param int)
	Scissor(x, y, width, height int)
	TexCoordPointer(size, stride int, data []float32)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte)
	VertexPointer(size, stride int, data []float32)
	Viewport(x, y, width, height int)
}
