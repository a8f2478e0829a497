// SPDX-License-Identifier: Unlicense OR MIT

package glctx

// PixelFormat describes the buffer layout requested for a native
// context. The platform treats it as a hint and picks the closest
// supported configuration.
type PixelFormat struct {
	RedBits     int
	GreenBits   int
	BlueBits    int
	AlphaBits   int
	DepthBits   int
	StencilBits int
	// Multisamples is the number of samples per pixel, 0 for no
	// multisampling.
	Multisamples int
}

// DefaultPixelFormat returns the format used when none is configured:
// 8 bits per channel, a 16 bit depth buffer and an 8 bit stencil buffer.
func DefaultPixelFormat() PixelFormat {
	return PixelFormat{
		RedBits:     8,
		GreenBits:   8,
		BlueBits:    8,
		AlphaBits:   8,
		DepthBits:   16,
		StencilBits: 8,
	}
}
