// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"image"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/glkit/glkit/internal/gl"
)

// componentTarget is the texture the software-painted component content
// is composited through, with a framebuffer wrapped around it when the
// platform has framebuffer objects. It lives entirely on the render
// thread.
type componentTarget struct {
	c       *Context
	nc      *NativeContext
	enabled bool

	tex  gl.Texture
	fbo  gl.Framebuffer
	w, h int
	buf  *image.RGBA
}

func (t *componentTarget) create(c *Context, nc *NativeContext) {
	t.c, t.nc = c, nc
	t.enabled = c.componentPaintingOn()
	if !t.enabled {
		return
	}
	t.resize(c.Width(), c.Height())
}

func (t *componentTarget) resize(w, h int) {
	t.drop()
	if w <= 0 || h <= 0 {
		return
	}
	f := t.nc.Functions()
	t.w, t.h = w, h
	t.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	t.tex = f.CreateTexture()
	f.BindTexture(gl.TEXTURE_2D, t.tex)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	f.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	exts := t.nc.Extensions()
	if exts.FramebuffersSupported() {
		t.fbo = exts.GenFramebuffer()
		exts.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
		exts.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.tex, 0)
		if exts.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
			log.Warn("glctx: component paint framebuffer incomplete")
			exts.DeleteFramebuffer(t.fbo)
			t.fbo = gl.Framebuffer{}
		}
		exts.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{})
	}
	t.c.setFrameBufferID(t.fbo.V)
}

// compose uploads the current component image and draws it across the
// full context. Runs once per frame, before the buffer swap.
func (t *componentTarget) compose() {
	if !t.enabled {
		return
	}
	comp := t.c.configuredCompositor()
	if comp == nil {
		return
	}
	if w, h := t.c.Width(), t.c.Height(); w != t.w || h != t.h {
		t.resize(w, h)
	}
	if !t.tex.Valid() {
		return
	}
	img := comp.PaintComponent()
	if img == nil {
		return
	}
	if img.Bounds() != t.buf.Bounds() {
		draw.ApproxBiLinear.Scale(t.buf, t.buf.Bounds(), img, img.Bounds(), draw.Src, nil)
	} else {
		draw.Copy(t.buf, image.Point{}, img, img.Bounds(), draw.Src, nil)
	}
	f := t.nc.Functions()
	f.BindTexture(gl.TEXTURE_2D, t.tex)
	f.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, t.w, t.h, gl.RGBA, gl.UNSIGNED_BYTE, t.buf.Pix)
	t.c.CopyTexture(image.Rect(0, 0, t.w, t.h), image.Rect(0, 0, t.w, t.h), t.w, t.h)
}

func (t *componentTarget) release() {
	if !t.enabled {
		return
	}
	t.drop()
	t.c.setFrameBufferID(0)
}

func (t *componentTarget) drop() {
	if t.fbo.Valid() {
		if del := t.nc.Extensions().DeleteFramebuffer; del != nil {
			del(t.fbo)
		}
		t.fbo = gl.Framebuffer{}
	}
	if t.tex.Valid() {
		t.nc.Functions().DeleteTexture(t.tex)
		t.tex = gl.Texture{}
	}
	t.buf = nil
	t.w, t.h = 0, 0
	t.c.setFrameBufferID(0)
}
