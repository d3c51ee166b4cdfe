// Package glprog adapts github.com/soypat/glgl's generic GL program/texture
// plumbing (v4.6-core/glgl) to shaq's specific rendering model: one
// fullscreen-triangle fragment shader per project-file shader entry, each
// rendering into a ping-ponged pair of render targets. Grounded on
// original_source/src/shader.c's shader_reload/shader_make_last_pass_shader
// (the pass-through vertex source and last-pass blit source below are a
// direct port of its PASS_THROUGH_VERT_SHADER_SOURCE and
// LAST_PASS_FRAGMENT_SHADER_SOURCE constants) and texture.c's
// texture_make_empty.
package glprog

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/henrikglass/shaq/v4.6-core/glgl"
)

// passThroughVertexSource passes through the 2-component positions of the
// oversized fullscreen triangle; every shaq fragment shader uses this same vertex
// stage, same as the original's one shared PASS_THROUGH_VERT_SHADER_SOURCE.
const passThroughVertexSource = "#version 330 core\n" +
	"layout (location = 0) in vec2 in_xy;\n" +
	"void main() {\n" +
	"    gl_Position = vec4(in_xy, 0.0, 1.0);\n" +
	"}\n\x00"

// lastPassFragmentSource blits a texture to the default framebuffer,
// matching LAST_PASS_FRAGMENT_SHADER_SOURCE.
const lastPassFragmentSource = "#version 330 core\n" +
	"out vec4 frag_color;\n" +
	"uniform sampler2D tex;\n" +
	"uniform ivec2 iresolution;\n" +
	"void main() {\n" +
	"    vec2 uv = gl_FragCoord.xy / vec2(iresolution);\n" +
	"    frag_color = vec4(texture(tex, uv).rgb, 1.0);\n" +
	"}\n\x00"

// CompileFragmentProgram links fragSource (a shader author's file contents,
// not yet null-terminated) against the shared pass-through vertex shader.
// The CompileFlags set here favour correctness over raw compile speed,
// since shaq recompiles only on an explicit source-file reload, not every
// frame.
func CompileFragmentProgram(fragSource string) (glgl.Program, error) {
	return glgl.CompileProgram(glgl.ShaderSource{
		Vertex:       passThroughVertexSource,
		Fragment:     nullTerminate(fragSource),
		CompileFlags: glgl.CompileFlagsStrict,
	})
}

// CompileLastPassProgram builds the fixed fullscreen blit program used to
// present the final shader's output to the window.
func CompileLastPassProgram() (glgl.Program, error) {
	return glgl.CompileProgram(glgl.ShaderSource{
		Vertex:       passThroughVertexSource,
		Fragment:     lastPassFragmentSource,
		CompileFlags: glgl.CompileFlagsStrict,
	})
}

func nullTerminate(s string) string {
	if len(s) > 0 && s[len(s)-1] == 0 {
		return s
	}
	return s + "\x00"
}

// RenderTarget is one of a shader's ping-ponged output textures: the
// current frame's render destination, which becomes next frame's
// "last_output_of" source. Corrects original_source's bug (documented in
// DESIGN.md) where renderer.c assumed a single texture per shader despite
// shader.c already maintaining a ping-pong pair: this port keeps exactly two
// RenderTargets per shader and never collapses them into one.
//
// Unlike the loaded-image textures in render/texture.go (which are sampled
// only, via glgl.Texture.Bind), a render target must also be attachable to a
// framebuffer as a color attachment -- a capability glgl.Texture doesn't
// expose, since it keeps its GL name unexported. RenderTarget therefore
// manages its own GL texture name directly, mirroring texture_make_empty's
// parameters and GL call sequence one level below glgl.
type RenderTarget struct {
	id     uint32
	Width  int
	Height int
	Format int32
}

// NewRenderTarget allocates an empty GPU texture of the given size and
// internal format, ported from texture_make_empty(resolution, format) --
// using both arguments, unlike original_source/src/texture.c's
// single-argument definition which silently dropped the format the header
// promised (see DESIGN.md correction 5).
func NewRenderTarget(width, height int, format int32) (RenderTarget, error) {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, format, int32(width), int32(height), 0, uint32(format), gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return RenderTarget{}, fmt.Errorf("glprog: allocating render target: gl error 0x%x", errCode)
	}
	return RenderTarget{id: id, Width: width, Height: height, Format: format}, nil
}

// ID returns the GL texture name, for framebuffer attachment.
func (rt RenderTarget) ID() uint32 { return rt.id }

// Bind binds the render target to a texture unit for sampling, matching
// glgl.Texture.Bind's "slot 0..32" convention.
func (rt RenderTarget) Bind(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, rt.id)
}

// Delete releases the render target's GPU texture.
func (rt RenderTarget) Delete() { gl.DeleteTextures(1, &rt.id) }
