// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Framebuffer struct{ V uint }
	Program     struct{ V uint }
	Shader      struct{ V uint }
	Texture     struct{ V uint }
)

func (f Framebuffer) Valid() bool {
	return f.V != 0
}

func (p Program) Valid() bool {
	return p.V != 0
}

func (s Shader) Valid() bool {
	return s.V != 0
}

func (t Texture) Valid() bool {
	return t.V != 0
}
