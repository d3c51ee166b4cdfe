// Package render implements shaq's shader lifecycle, render-graph
// scheduling, uniform binding, and the per-frame draw loop: everything
// downstream of a parsed project file and a compiled SEL program, up to
// the pixels landing in a window.
package render

import (
	"fmt"
	"log/slog"

	glraw "github.com/go-gl/gl/v4.6-core/gl"

	"github.com/henrikglass/shaq/internal/glprog"
	"github.com/henrikglass/shaq/sel"
)

// fullscreenTriVerts is a single oversized triangle covering the viewport,
// the same trick original_source/src/renderer.c uses in renderer_init to
// avoid a seam down the middle of a fullscreen quad.
var fullscreenTriVerts = [3][2]float32{
	{-1, -1},
	{3, -1},
	{-1, 3},
}

// Session owns every GL resource shared across shaders: the offscreen
// framebuffer each shader pass renders into, the fullscreen-triangle
// geometry, the final blit program, and the host/texture/VM state threaded
// through every SEL evaluation. Grounded on original_source/src/renderer.c's
// file-scope `renderer` struct.
type Session struct {
	log *slog.Logger

	Host     *Host
	Textures *TextureSet
	VM       *sel.VM
	Registry sel.Registry

	Shaders      []*Shader
	RenderOrder  []int
	DisplayIndex int // index into Shaders whose output is blitted to the window

	vao, vbo, offscreenFB uint32
	lastPass              glProgramer

	windowWidth, windowHeight int32
}

// NewSession allocates the session's fixed GL objects (VAO/VBO/FBO, final
// blit program) and its host-side state. Must be called with a current GL
// context, same requirement as renderer_init.
func NewSession(log *slog.Logger, reg sel.Registry, seed int64, imageCacheCapacity int) (*Session, error) {
	s := &Session{
		log:      log,
		Host:     NewHost(log, seed),
		Textures: NewTextureSet(imageCacheCapacity),
		VM:       sel.NewVM(),
		Registry: reg,
	}

	glraw.GenVertexArrays(1, &s.vao)
	glraw.BindVertexArray(s.vao)
	glraw.GenBuffers(1, &s.vbo)
	glraw.BindBuffer(glraw.ARRAY_BUFFER, s.vbo)
	glraw.BufferData(glraw.ARRAY_BUFFER, len(fullscreenTriVerts)*2*4, glraw.Ptr(&fullscreenTriVerts[0][0]), glraw.STATIC_DRAW)
	glraw.VertexAttribPointer(0, 2, glraw.FLOAT, false, 2*4, nil)
	glraw.EnableVertexAttribArray(0)
	glraw.GenFramebuffers(1, &s.offscreenFB)

	lastPass, err := glprog.CompileLastPassProgram()
	if err != nil {
		return nil, fmt.Errorf("render: compiling last-pass program: %w", err)
	}
	s.lastPass = lastPass

	return s, nil
}

// SetWindowSize updates the viewport size used by the final pass and by
// aspect_ratio()/iresolution() evaluation.
func (s *Session) SetWindowSize(w, h int32) {
	s.windowWidth, s.windowHeight = w, h
	s.Host.SetWindowSize(w, h)
}

// SetShaders installs a freshly parsed/compiled shader list, resolves the
// render-graph order, and picks displayName as the shader blitted to the
// window each frame.
func (s *Session) SetShaders(shaders []*Shader, displayName string) error {
	s.Shaders = shaders
	s.Host.BindShaders(shaders)
	s.Textures.Clear()

	for _, sh := range shaders {
		if sh.OutputWidth == 0 && sh.OutputHeight == 0 {
			sh.OutputWidth, sh.OutputHeight = int(s.windowWidth), int(s.windowHeight)
		}
		if err := sh.Reload(); err != nil {
			// A shader that fails to compile stays uninitialized (see
			// Shader.Reload / DrawFrame's initialized guard) rather than
			// aborting the whole project load, matching shader_reload's
			// per-shader error logging.
			s.log.Error("render: shader failed to (re)load", "shader", sh.Name, "err", err)
		}
	}

	shaderIndex := make(map[string]int, len(shaders))
	for i, sh := range shaders {
		shaderIndex[sh.Name] = i
	}
	for _, sh := range shaders {
		sh.DetermineDependencies(s.VM, s.Host, s.Registry, shaderIndex, s.log)
	}
	s.RenderOrder = Schedule(shaders, s.log)

	idx, ok := shaderIndex[displayName]
	if !ok {
		return fmt.Errorf("render: no shader named %q to display", displayName)
	}
	s.DisplayIndex = idx
	return nil
}

// DrawFrame renders every shader in render-graph order into its offscreen
// target, then blits the display shader's output to the window. Ported
// directly from renderer.c's renderer_do_shader_pass / renderer_begin_final_pass
// / renderer_display_output_of_shader / renderer_end_final_pass sequence.
func (s *Session) DrawFrame() {
	s.Host.NewFrame()
	glraw.BindVertexArray(s.vao)

	for _, idx := range s.RenderOrder {
		sh := s.Shaders[idx]
		if !sh.initialized {
			continue
		}

		sh.UpdateUniforms(s.VM, s.Host, s.Registry, s.Textures, s.Shaders, s.Host.ImagePath, s.log)

		glraw.BindFramebuffer(glraw.FRAMEBUFFER, s.offscreenFB)
		glraw.FramebufferTexture2D(glraw.FRAMEBUFFER, glraw.COLOR_ATTACHMENT0, glraw.TEXTURE_2D, sh.Current().ID(), 0)
		if glraw.CheckFramebufferStatus(glraw.FRAMEBUFFER) != glraw.FRAMEBUFFER_COMPLETE {
			s.log.Error("render: offscreen framebuffer incomplete", "shader", sh.Name)
			continue
		}
		glraw.Viewport(0, 0, int32(sh.OutputWidth), int32(sh.OutputHeight))
		glraw.Clear(glraw.COLOR_BUFFER_BIT)
		glraw.DrawArrays(glraw.TRIANGLES, 0, 3)
	}

	// Swap only after every shader has drawn, so an output_of(...) read by a
	// later shader this frame still finds this frame's result in Current().
	for _, idx := range s.RenderOrder {
		if sh := s.Shaders[idx]; sh.initialized {
			sh.Swap()
		}
	}

	s.finalPass()
	s.Host.EndFrame()
}

func (s *Session) finalPass() {
	s.lastPass.Bind()
	if loc, err := s.lastPass.UniformLocation("tex\x00"); err == nil {
		glraw.Uniform1i(loc, 0)
	}
	if loc, err := s.lastPass.UniformLocation("iresolution\x00"); err == nil {
		glraw.Uniform2i(loc, s.windowWidth, s.windowHeight)
	}

	glraw.BindFramebuffer(glraw.FRAMEBUFFER, 0)
	glraw.Viewport(0, 0, s.windowWidth, s.windowHeight)
	glraw.Clear(glraw.COLOR_BUFFER_BIT)

	if s.DisplayIndex >= 0 && s.DisplayIndex < len(s.Shaders) {
		// every shader swapped after DrawFrame's draw loop, so the display
		// shader's finished frame is now in Last(), not Current().
		s.Shaders[s.DisplayIndex].Last().Bind(0)
	}
	glraw.DrawArrays(glraw.TRIANGLES, 0, 3)
}

// Close releases the session's GL objects.
func (s *Session) Close() {
	glraw.DeleteVertexArrays(1, &s.vao)
	glraw.DeleteBuffers(1, &s.vbo)
	glraw.DeleteFramebuffers(1, &s.offscreenFB)
	s.lastPass.Delete()
	s.Textures.Clear()
}
