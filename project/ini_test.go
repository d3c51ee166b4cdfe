package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"
	"github.com/henrikglass/shaq/math/ms4"
	"github.com/henrikglass/shaq/project"
	"github.com/henrikglass/shaq/render"
	"github.com/henrikglass/shaq/sel"
	"github.com/henrikglass/shaq/sel/builtins"
)

type stubHost struct{}

func (stubHost) Iota() int32                                      { return 0 }
func (stubHost) Time() float32                                    { return 0 }
func (stubHost) DeltaTime() float32                                { return 0 }
func (stubHost) FrameCount() int32                                 { return 0 }
func (stubHost) Rand(min, max float32) float32                     { return min }
func (stubHost) RandI(min, max int32) int32                       { return min }
func (stubHost) AspectRatio() float32                              { return 1 }
func (stubHost) IResolution() (int32, int32)                       { return 1, 1 }
func (stubHost) MousePosition() (float32, float32)                 { return 0, 0 }
func (stubHost) MouseDragPosition() (float32, float32)             { return 0, 0 }
func (stubHost) LeftMouseButtonIsDown() bool                       { return false }
func (stubHost) RightMouseButtonIsDown() bool                      { return false }
func (stubHost) LeftMouseButtonWasClicked() bool                   { return false }
func (stubHost) RightMouseButtonWasClicked() bool                  { return false }
func (stubHost) KeyIsDown(key string) bool                         { return false }
func (stubHost) KeyWasPressed(key string) bool                     { return false }
func (stubHost) LoadImage(path string) sel.TextureDescriptor {
	return sel.TextureDescriptor{Kind: sel.TextureLoadedImage}
}
func (stubHost) OutputOf(name string) sel.TextureDescriptor {
	return sel.TextureDescriptor{Kind: sel.TextureCurrentOutput}
}
func (stubHost) LastOutputOf(name string) sel.TextureDescriptor {
	return sel.TextureDescriptor{Kind: sel.TextureLastOutput}
}
func (stubHost) InputFloat(label string, def float32) float32       { return def }
func (stubHost) InputInt(label string, def int32) int32             { return def }
func (stubHost) InputVec2(label string, def ms2.Vec) ms2.Vec         { return def }
func (stubHost) InputVec3(label string, def ms3.Vec) ms3.Vec         { return def }
func (stubHost) InputVec4(label string, def ms4.Vec) ms4.Vec         { return def }
func (stubHost) Checkbox(label string, def bool) bool                { return def }
func (stubHost) DragInt(label string, min, max, def int32) int32     { return def }
func (stubHost) SliderFloat(label string, min, max, def float32) float32 {
	return def
}
func (stubHost) SliderFloatLog(label string, min, max, def float32) float32 {
	return def
}
func (stubHost) ColorPicker(label string, def ms4.Vec) ms4.Vec { return def }

var _ sel.HostContext = stubHost{}

func writeProject(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "project.ini")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture project file: %v", err)
	}
	return path
}

func TestLoadParsesUniformsAttributesAndRenderAfter(t *testing.T) {
	path := writeProject(t, `
[main]
attribute source = "main.frag"
attribute output_resolution = ivec2(640, 480)
attribute display = true
attribute render_after = "glow"
attribute render_after = "blur"
uniform float u_speed = 1.0 + 0.5

[glow]
attribute source = "glow.frag"

[blur]
attribute source = "blur.frag"
`)

	shaders, err := project.Load(path, builtins.Global(), sel.NewVM(), stubHost{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(shaders) != 3 {
		t.Fatalf("expected 3 shaders, got %d", len(shaders))
	}

	var main *render.Shader
	for _, sh := range shaders {
		if sh.Name == "main" {
			main = sh
		}
	}
	if main == nil {
		t.Fatal("expected a shader named `main`")
	}
	if main.SourcePath != "main.frag" {
		t.Errorf("SourcePath = %q, want main.frag", main.SourcePath)
	}
	if main.OutputWidth != 640 || main.OutputHeight != 480 {
		t.Errorf("output_resolution = (%d, %d), want (640, 480)", main.OutputWidth, main.OutputHeight)
	}
	if !main.Display {
		t.Errorf("expected `main`'s display attribute to be true")
	}
	if len(main.RenderAfterNames) != 2 || main.RenderAfterNames[0] != "glow" || main.RenderAfterNames[1] != "blur" {
		t.Errorf("RenderAfterNames = %v, want [glow blur]", main.RenderAfterNames)
	}
	if len(main.Uniforms) != 1 || main.Uniforms[0].Name != "u_speed" {
		t.Fatalf("expected one uniform named u_speed, got %v", main.Uniforms)
	}
}

func TestLoadRejectsNonConstAttribute(t *testing.T) {
	path := writeProject(t, `
[main]
attribute source = "main.frag"
attribute output_resolution = ivec2(iota(), 480)
`)
	_, err := project.Load(path, builtins.Global(), sel.NewVM(), stubHost{})
	if err == nil {
		t.Fatal("expected an error for a non-const attribute expression")
	}
}

func TestLoadRejectsMissingSource(t *testing.T) {
	path := writeProject(t, `
[main]
attribute output_resolution = ivec2(640, 480)
`)
	_, err := project.Load(path, builtins.Global(), sel.NewVM(), stubHost{})
	if err == nil {
		t.Fatal("expected an error for a shader section with no `source` attribute")
	}
}
