// SPDX-License-Identifier: Unlicense OR MIT

// Package gl contains the OpenGL constants, object handle types and
// function tables used by the context machinery. Only the entry points
// the toolkit itself needs are declared; renderers are expected to bring
// their own GL bindings.
package gl

type Enum uint

const (
	BLEND                = 0xbe2
	CLAMP_TO_EDGE        = 0x812f
	COLOR_ATTACHMENT0    = 0x8ce0
	COLOR_BUFFER_BIT     = 0x4000
	EXTENSIONS           = 0x1f03
	FRAGMENT_SHADER      = 0x8b30
	FRAMEBUFFER          = 0x8d40
	FRAMEBUFFER_BINDING  = 0x8ca6
	FRAMEBUFFER_COMPLETE = 0x8cd5
	LINEAR               = 0x2601
	MAX_TEXTURE_SIZE     = 0xd33
	NEAREST              = 0x2600
	NO_ERROR             = 0x0
	RENDERER             = 0x1f01
	RGBA                 = 0x1908
	SCISSOR_TEST         = 0xc11
	TEXTURE_2D           = 0xde1
	TEXTURE_COORD_ARRAY  = 0x8078
	TEXTURE_MAG_FILTER   = 0x2800
	TEXTURE_MIN_FILTER   = 0x2801
	TEXTURE_WRAP_S       = 0x2802
	TEXTURE_WRAP_T       = 0x2803
	TEXTURE0             = 0x84c0
	TRIANGLE_STRIP       = 0x5
	UNPACK_ALIGNMENT     = 0xcf5
	UNSIGNED_BYTE        = 0x1401
	VENDOR               = 0x1f00
	VERSION              = 0x1f02
	VERTEX_ARRAY         = 0x8074
	VERTEX_SHADER        = 0x8b31
)
