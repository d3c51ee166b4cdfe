package render_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"
	"github.com/henrikglass/shaq/math/ms4"
	"github.com/henrikglass/shaq/render"
	"github.com/henrikglass/shaq/sel"
	"github.com/henrikglass/shaq/sel/builtins"
)

// depHost is a sel.HostContext stub whose OutputOf/LastOutputOf resolve
// against a fixed shader-name table, matching what render.Host does for real
// via its own shader index, without needing a GL context.
type depHost struct {
	outputs map[string]int32
}

func (h depHost) Iota() int32                          { return 0 }
func (h depHost) Time() float32                         { return 0 }
func (h depHost) DeltaTime() float32                    { return 0 }
func (h depHost) FrameCount() int32                     { return 0 }
func (h depHost) Rand(min, max float32) float32         { return min }
func (h depHost) RandI(min, max int32) int32            { return min }
func (h depHost) AspectRatio() float32                  { return 1 }
func (h depHost) IResolution() (int32, int32)           { return 1, 1 }
func (h depHost) MousePosition() (float32, float32)     { return 0, 0 }
func (h depHost) MouseDragPosition() (float32, float32) { return 0, 0 }
func (h depHost) LeftMouseButtonIsDown() bool           { return false }
func (h depHost) RightMouseButtonIsDown() bool          { return false }
func (h depHost) LeftMouseButtonWasClicked() bool       { return false }
func (h depHost) RightMouseButtonWasClicked() bool      { return false }
func (h depHost) KeyIsDown(key string) bool             { return false }
func (h depHost) KeyWasPressed(key string) bool         { return false }
func (h depHost) LoadImage(path string) sel.TextureDescriptor {
	return sel.TextureDescriptor{Kind: sel.TextureLoadedImage}
}
func (h depHost) OutputOf(name string) sel.TextureDescriptor {
	idx, ok := h.outputs[name]
	if !ok {
		return sel.TextureDescriptor{Err: true}
	}
	return sel.TextureDescriptor{Kind: sel.TextureCurrentOutput, Index: idx}
}
func (h depHost) LastOutputOf(name string) sel.TextureDescriptor {
	idx, ok := h.outputs[name]
	if !ok {
		return sel.TextureDescriptor{Err: true}
	}
	return sel.TextureDescriptor{Kind: sel.TextureLastOutput, Index: idx}
}
func (h depHost) InputFloat(label string, def float32) float32     { return def }
func (h depHost) InputInt(label string, def int32) int32           { return def }
func (h depHost) InputVec2(label string, def ms2.Vec) ms2.Vec       { return def }
func (h depHost) InputVec3(label string, def ms3.Vec) ms3.Vec       { return def }
func (h depHost) InputVec4(label string, def ms4.Vec) ms4.Vec       { return def }
func (h depHost) Checkbox(label string, def bool) bool              { return def }
func (h depHost) DragInt(label string, min, max, def int32) int32   { return def }
func (h depHost) SliderFloat(label string, min, max, def float32) float32 {
	return def
}
func (h depHost) SliderFloatLog(label string, min, max, def float32) float32 {
	return def
}
func (h depHost) ColorPicker(label string, def ms4.Vec) ms4.Vec { return def }

var _ sel.HostContext = depHost{}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustUniform(t *testing.T, name, expr string, typ sel.Type) *render.Uniform {
	t.Helper()
	u, err := render.NewUniform(name, typ, expr, builtins.Global())
	if err != nil {
		t.Fatalf("NewUniform(%q): %v", expr, err)
	}
	return u
}

func TestDetermineDependenciesFromTextureUniform(t *testing.T) {
	u := mustUniform(t, "u_prev", `output_of("glow")`, sel.TypeTexture)
	sh := &render.Shader{Name: "main", Uniforms: []*render.Uniform{u}}

	host := depHost{outputs: map[string]int32{"glow": 2}}
	vm := sel.NewVM()
	sh.DetermineDependencies(vm, host, builtins.Global(), map[string]int{"main": 0, "glow": 2}, discardLogger())

	if len(sh.ShaderDepends) != 1 || sh.ShaderDepends[0] != 2 {
		t.Fatalf("ShaderDepends = %v, want [2]", sh.ShaderDepends)
	}
}

func TestDetermineDependenciesLastOutputOfIsNotADependency(t *testing.T) {
	u := mustUniform(t, "u_prev", `last_output_of("glow")`, sel.TypeTexture)
	sh := &render.Shader{Name: "main", Uniforms: []*render.Uniform{u}}

	host := depHost{outputs: map[string]int32{"glow": 2}}
	vm := sel.NewVM()
	sh.DetermineDependencies(vm, host, builtins.Global(), map[string]int{"main": 0, "glow": 2}, discardLogger())

	if len(sh.ShaderDepends) != 0 {
		t.Fatalf("last_output_of must not create a dependency edge, got %v", sh.ShaderDepends)
	}
}

func TestDetermineDependenciesResolvesRenderAfterNames(t *testing.T) {
	sh := &render.Shader{Name: "main", RenderAfterNames: []string{"blur"}}

	host := depHost{}
	vm := sel.NewVM()
	sh.DetermineDependencies(vm, host, builtins.Global(), map[string]int{"main": 0, "blur": 1}, discardLogger())

	if len(sh.ShaderDepends) != 1 || sh.ShaderDepends[0] != 1 {
		t.Fatalf("ShaderDepends = %v, want [1]", sh.ShaderDepends)
	}
}

func TestDetermineDependenciesUnknownRenderAfterIsSkipped(t *testing.T) {
	sh := &render.Shader{Name: "main", RenderAfterNames: []string{"does_not_exist"}}

	host := depHost{}
	vm := sel.NewVM()
	sh.DetermineDependencies(vm, host, builtins.Global(), map[string]int{"main": 0}, discardLogger())

	if len(sh.ShaderDepends) != 0 {
		t.Fatalf("expected an unresolved render_after name to be skipped, got %v", sh.ShaderDepends)
	}
}

func TestDetermineDependenciesResetsBetweenCalls(t *testing.T) {
	u := mustUniform(t, "u_prev", `output_of("glow")`, sel.TypeTexture)
	sh := &render.Shader{Name: "main", Uniforms: []*render.Uniform{u}, ShaderDepends: []int{99}}

	host := depHost{outputs: map[string]int32{"glow": 2}}
	vm := sel.NewVM()
	sh.DetermineDependencies(vm, host, builtins.Global(), map[string]int{"main": 0, "glow": 2}, discardLogger())

	if len(sh.ShaderDepends) != 1 || sh.ShaderDepends[0] != 2 {
		t.Fatalf("expected stale dependency 99 to be cleared, got %v", sh.ShaderDepends)
	}
}
