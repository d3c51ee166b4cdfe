package render

import (
	"fmt"
	"log/slog"
	"os"

	glraw "github.com/go-gl/gl/v4.6-core/gl"

	"github.com/henrikglass/shaq/internal/glprog"
	"github.com/henrikglass/shaq/internal/reload"
	"github.com/henrikglass/shaq/sel"
)

// Shader is one project-file section: a fragment shader source file, its
// uniform bindings, and the two ping-ponged render targets it draws into.
// Grounded on original_source/src/shader.h's Shader struct.
type Shader struct {
	Name string

	SourcePath       string
	OutputWidth      int
	OutputHeight     int
	OutputFormat     int32
	RenderAfterNames []string
	Display          bool // explicit `attribute display = true`; see project.Load

	Uniforms      []*Uniform
	ShaderDepends []int // indices into Session.Shaders, resolved by DetermineDependencies

	fragSrc string
	modTime *reload.MtimeWatcher

	gl          glProgramer
	targets     [2]glprog.RenderTarget
	currentIdx  int // 0 or 1: targets[currentIdx] is this frame's render destination
	initialized bool
}

// glProgramer is satisfied by glgl.Program; declared as a narrow interface
// here so shader.go only depends on the handful of methods it actually
// calls (ID/Bind/Unbind/Delete/UniformLocation), not glgl.Program's full
// surface.
type glProgramer interface {
	ID() uint32
	Bind()
	Unbind()
	Delete()
	UniformLocation(name string) (int32, error)
}

// Current returns the render target holding this shader's output from the
// frame currently being drawn (or just finished).
func (s *Shader) Current() glprog.RenderTarget { return s.targets[s.currentIdx] }

// Last returns the render target holding this shader's output from the
// previous frame.
func (s *Shader) Last() glprog.RenderTarget { return s.targets[1-s.currentIdx] }

// Swap ping-pongs the current/last render targets, called once per frame
// after every shader has drawn, same as shader_swap_render_textures.
func (s *Shader) Swap() { s.currentIdx = 1 - s.currentIdx }

// LoadSource reads the shader's fragment source file from disk and starts
// watching its modification time.
func (s *Shader) LoadSource() error {
	b, err := os.ReadFile(s.SourcePath)
	if err != nil {
		return fmt.Errorf("shader %q: reading source %q: %w", s.Name, s.SourcePath, err)
	}
	s.fragSrc = string(b)
	s.modTime = reload.NewMtimeWatcher(s.SourcePath)
	return nil
}

// WasModified reports whether the shader's source file changed since the
// last reload, same semantics as shader_was_modified: a transient stat
// failure (file mid-save) is reported as "unchanged", never as an error.
func (s *Shader) WasModified() bool {
	if s.modTime == nil {
		return false
	}
	return s.modTime.Changed()
}

// Reload recompiles the shader's GL program and reallocates its render
// targets. Unlike original_source/src/shader.c's shader_reload (which
// deletes the old GL program and frees the old render textures *before*
// attempting to compile the new ones, so a syntax error leaves the shader
// with no program and a black screen), this port keeps the old program and
// old targets bound until the new program links successfully -- see
// DESIGN.md correction 2.
func (s *Shader) Reload() error {
	if err := s.LoadSource(); err != nil {
		return err
	}

	newProgram, err := glprog.CompileFragmentProgram(s.fragSrc)
	if err != nil {
		return fmt.Errorf("shader %q: compile failed: %w", s.Name, err)
	}

	if s.OutputFormat == 0 {
		s.OutputFormat = defaultOutputFormat
	}
	newTargets := [2]glprog.RenderTarget{}
	for i := range newTargets {
		rt, err := glprog.NewRenderTarget(s.OutputWidth, s.OutputHeight, s.OutputFormat)
		if err != nil {
			newProgram.Delete()
			for j := 0; j < i; j++ {
				newTargets[j].Delete()
			}
			return fmt.Errorf("shader %q: allocating render targets: %w", s.Name, err)
		}
		newTargets[i] = rt
	}

	// New program and targets are live; only now do we tear down the old
	// ones (if this is a reload rather than first compile).
	if s.initialized {
		s.gl.Delete()
		s.targets[0].Delete()
		s.targets[1].Delete()
	}
	s.gl = newProgram
	s.targets = newTargets
	s.currentIdx = 0
	s.initialized = true

	for _, u := range s.Uniforms {
		loc, err := newProgram.UniformLocation(u.Name)
		if err == nil {
			u.Location = loc
		} else {
			u.Location = -1
		}
	}
	return nil
}

const defaultOutputFormat = 0x1908 // GL_RGBA

// DetermineDependencies recomputes s.ShaderDepends from scratch: every
// texture-typed uniform is force-evaluated (bypassing Const memoisation,
// same as the original passing force=true) and, if it resolves to
// output_of(...) (TextureCurrentOutput), that shader becomes a dependency.
// last_output_of(...) (TextureLastOutput) deliberately does not -- that is
// the project author's escape hatch for a feedback loop. Explicit
// render_after names are resolved last and appended the same way. Ported
// directly from shader.c's shader_determine_dependencies.
func (s *Shader) DetermineDependencies(vm *sel.VM, host sel.HostContext, reg sel.Registry, shaderIndex map[string]int, log *slog.Logger) {
	s.ShaderDepends = s.ShaderDepends[:0]
	for _, u := range s.Uniforms {
		if u.Type != sel.TypeTexture {
			continue
		}
		val, err := vm.Eval(u.Exe, host, reg, true)
		if err != nil {
			log.Error("shader: evaluating texture uniform for dependency analysis", "shader", s.Name, "uniform", u.Name, "err", err)
			continue
		}
		if val.Tex.Err {
			continue
		}
		if val.Tex.Kind == sel.TextureCurrentOutput {
			s.ShaderDepends = append(s.ShaderDepends, int(val.Tex.Index))
		}
	}
	for _, name := range s.RenderAfterNames {
		idx, ok := shaderIndex[name]
		if !ok {
			log.Error("shader: render_after references no such shader", "shader", s.Name, "render_after", name)
			continue
		}
		s.ShaderDepends = append(s.ShaderDepends, idx)
	}
}

// UpdateUniforms evaluates every uniform's SEL expression (without forcing
// recomputation -- Const-qualified uniforms reuse their per-frame cached
// value) and dispatches it to the matching glUniform*/glUniformMatrix*fv
// call. Texture uniforms are bound to successive texture units starting at
// 0 and their sampler uniform is set to that unit index. Ported directly
// from shader.c's shader_update_uniforms switch-on-type.
func (s *Shader) UpdateUniforms(vm *sel.VM, host sel.HostContext, reg sel.Registry, textures *TextureSet, shaders []*Shader, imagePath func(int32) (string, bool), log *slog.Logger) {
	if !s.initialized {
		return
	}
	s.gl.Bind()

	var textureUnit int32
	for _, u := range s.Uniforms {
		if u.Location < 0 {
			continue
		}
		val, err := vm.Eval(u.Exe, host, reg, false)
		if err != nil {
			log.Error("shader: evaluating uniform", "shader", s.Name, "uniform", u.Name, "err", err)
			continue
		}

		switch u.Type {
		case sel.TypeBool:
			i := int32(0)
			if val.Bool {
				i = 1
			}
			glraw.Uniform1i(u.Location, i)
		case sel.TypeInt:
			glraw.Uniform1i(u.Location, val.Int)
		case sel.TypeUint:
			glraw.Uniform1ui(u.Location, val.Uint)
		case sel.TypeFloat:
			glraw.Uniform1f(u.Location, val.Float)
		case sel.TypeVec2:
			a := val.Vec2.Array()
			glraw.Uniform2fv(u.Location, 1, &a[0])
		case sel.TypeVec3:
			a := val.Vec3.Array()
			glraw.Uniform3fv(u.Location, 1, &a[0])
		case sel.TypeVec4:
			a := val.Vec4.Array()
			glraw.Uniform4fv(u.Location, 1, &a[0])
		case sel.TypeIVec2:
			glraw.Uniform2iv(u.Location, 1, &val.IVec2[0])
		case sel.TypeIVec3:
			glraw.Uniform3iv(u.Location, 1, &val.IVec3[0])
		case sel.TypeIVec4:
			glraw.Uniform4iv(u.Location, 1, &val.IVec4[0])
		case sel.TypeMat2:
			a := val.Mat2.Array()
			glraw.UniformMatrix2fv(u.Location, 1, true, &a[0])
		case sel.TypeMat3:
			a := val.Mat3.Array()
			glraw.UniformMatrix3fv(u.Location, 1, true, &a[0])
		case sel.TypeMat4:
			a := val.Mat4.Array()
			glraw.UniformMatrix4fv(u.Location, 1, true, &a[0])
		case sel.TypeTexture:
			unit := textureUnit
			textureUnit++
			glraw.Uniform1i(u.Location, unit)
			if err := textures.Bind(val.Tex, shaders, imagePath, int(unit)); err != nil {
				log.Error("shader: binding texture uniform", "shader", s.Name, "uniform", u.Name, "err", err)
			}
		}
	}
}
