// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glkit/glkit/internal/gl"
)

// CopyTexture draws the currently bound texture into this context.
// target is the area to draw into and anchor positions the texture in
// target space, both in top-left origin coordinates; the size of anchor
// must be the full texture size. contextWidth and contextHeight scale
// the coordinates to the framebuffer being drawn into, with
// contextHeight flipping the Y axis between the target's top-left
// origin and GL's bottom-left one. The context must be current on the
// calling thread.
func (c *Context) CopyTexture(target, anchor image.Rectangle, contextWidth, contextHeight int) {
	if !c.IsActive() {
		panic("glctx: CopyTexture requires the context to be current")
	}
	clip := target.Intersect(anchor)
	if clip.Empty() || contextWidth <= 0 || contextHeight <= 0 {
		return
	}
	f := c.native().Functions()

	// Top-left origin to GL bottom-left.
	x0, x1 := float32(clip.Min.X), float32(clip.Max.X)
	y0 := float32(contextHeight - clip.Max.Y)
	y1 := float32(contextHeight - clip.Min.Y)

	proj := mgl32.Ortho2D(0, float32(contextWidth), 0, float32(contextHeight))
	corners := [4]mgl32.Vec3{
		{x0, y0, 0},
		{x1, y0, 0},
		{x0, y1, 0},
		{x1, y1, 0},
	}
	var verts [8]float32
	for i, p := range corners {
		v := mgl32.TransformCoordinate(p, proj)
		verts[2*i] = v.X()
		verts[2*i+1] = v.Y()
	}

	// Texture coordinates of the clipped area within the anchor. V runs
	// bottom-up, so the anchor's top edge maps to v=1.
	aw, ah := float32(anchor.Dx()), float32(anchor.Dy())
	u0 := float32(clip.Min.X-anchor.Min.X) / aw
	u1 := float32(clip.Max.X-anchor.Min.X) / aw
	v1 := 1 - float32(clip.Min.Y-anchor.Min.Y)/ah
	v0 := 1 - float32(clip.Max.Y-anchor.Min.Y)/ah
	uvs := [8]float32{
		u0, v0,
		u1, v0,
		u0, v1,
		u1, v1,
	}

	f.Enable(gl.SCISSOR_TEST)
	f.Scissor(clip.Min.X, contextHeight-clip.Max.Y, clip.Dx(), clip.Dy())
	f.EnableClientState(gl.VERTEX_ARRAY)
	f.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	f.VertexPointer(2, 0, verts[:])
	f.TexCoordPointer(2, 0, uvs[:])
	f.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	f.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	f.DisableClientState(gl.VERTEX_ARRAY)
	f.Disable(gl.SCISSOR_TEST)
}
