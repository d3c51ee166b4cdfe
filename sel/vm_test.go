package sel_test

import (
	"testing"

	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"
	"github.com/henrikglass/shaq/math/ms4"
	"github.com/henrikglass/shaq/sel"
	"github.com/henrikglass/shaq/sel/builtins"
)

// fakeHost is a minimal sel.HostContext stub: time/frame counters are
// settable directly so tests can observe memoization and impurity without a
// real render.Host or GL context.
type fakeHost struct {
	t        float32
	frame    int32
	evalCalls int32
}

func (h *fakeHost) Iota() int32 {
	v := h.evalCalls
	h.evalCalls++
	return v
}
func (h *fakeHost) Time() float32      { return h.t }
func (h *fakeHost) DeltaTime() float32 { return 1.0 / 60.0 }
func (h *fakeHost) FrameCount() int32  { return h.frame }
func (h *fakeHost) Rand(min, max float32) float32 { return min }
func (h *fakeHost) RandI(min, max int32) int32    { return min }
func (h *fakeHost) AspectRatio() float32           { return 16.0 / 9.0 }
func (h *fakeHost) IResolution() (int32, int32)    { return 1920, 1080 }
func (h *fakeHost) MousePosition() (float32, float32)     { return 0, 0 }
func (h *fakeHost) MouseDragPosition() (float32, float32) { return 0, 0 }
func (h *fakeHost) LeftMouseButtonIsDown() bool       { return false }
func (h *fakeHost) RightMouseButtonIsDown() bool      { return false }
func (h *fakeHost) LeftMouseButtonWasClicked() bool   { return false }
func (h *fakeHost) RightMouseButtonWasClicked() bool  { return false }
func (h *fakeHost) KeyIsDown(key string) bool         { return false }
func (h *fakeHost) KeyWasPressed(key string) bool     { return false }
func (h *fakeHost) LoadImage(path string) sel.TextureDescriptor {
	return sel.TextureDescriptor{Kind: sel.TextureLoadedImage, Index: 0}
}
func (h *fakeHost) OutputOf(name string) sel.TextureDescriptor {
	return sel.TextureDescriptor{Kind: sel.TextureCurrentOutput, Index: 0}
}
func (h *fakeHost) LastOutputOf(name string) sel.TextureDescriptor {
	return sel.TextureDescriptor{Kind: sel.TextureLastOutput, Index: 0}
}
func (h *fakeHost) InputFloat(label string, def float32) float32 { return def }
func (h *fakeHost) InputInt(label string, def int32) int32       { return def }
func (h *fakeHost) InputVec2(label string, def ms2.Vec) ms2.Vec   { return def }
func (h *fakeHost) InputVec3(label string, def ms3.Vec) ms3.Vec   { return def }
func (h *fakeHost) InputVec4(label string, def ms4.Vec) ms4.Vec   { return def }
func (h *fakeHost) Checkbox(label string, def bool) bool          { return def }
func (h *fakeHost) DragInt(label string, min, max, def int32) int32 { return def }
func (h *fakeHost) SliderFloat(label string, min, max, def float32) float32 {
	return def
}
func (h *fakeHost) SliderFloatLog(label string, min, max, def float32) float32 {
	return def
}
func (h *fakeHost) ColorPicker(label string, def ms4.Vec) ms4.Vec { return def }

var _ sel.HostContext = (*fakeHost)(nil)

func mustCompile(t *testing.T, src string) *sel.ExeExpr {
	t.Helper()
	exe, err := sel.Compile(src, builtins.Global())
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return exe
}

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want int32
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 - 3", 3},
		{"-5 + 10", 5},
	}
	vm := sel.NewVM()
	host := &fakeHost{}
	for _, c := range cases {
		exe := mustCompile(t, c.src)
		if exe.Type != sel.TypeInt {
			t.Fatalf("%q: expected int, got %s", c.src, exe.Type)
		}
		val, err := vm.Eval(exe, host, builtins.Global(), false)
		if err != nil {
			t.Fatalf("Eval(%q): %v", c.src, err)
		}
		if val.Int != c.want {
			t.Errorf("%q = %d, want %d", c.src, val.Int, c.want)
		}
	}
}

func TestEvalFloatDivisionByZeroIsInfNotError(t *testing.T) {
	exe := mustCompile(t, "1.0 / 0.0")
	vm := sel.NewVM()
	val, err := vm.Eval(exe, &fakeHost{}, builtins.Global(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isInf(val.Float) {
		t.Errorf("expected +Inf, got %v", val.Float)
	}
}

func isInf(f float32) bool { return f > 3.0e38 || f < -3.0e38 }

func TestEvalIntegerDivisionByZeroIsRuntimeError(t *testing.T) {
	exe := mustCompile(t, "1 / 0")
	vm := sel.NewVM()
	_, err := vm.Eval(exe, &fakeHost{}, builtins.Global(), false)
	if err == nil {
		t.Fatal("expected a runtime error for integer division by zero")
	}
}

func TestConstExpressionIsMemoizedAcrossFrames(t *testing.T) {
	// time() is impure, so `time()` standing alone must never be Const. But
	// `1.0 + 1.0` is Const and, per spec.md's memoization rule, the VM must
	// not re-evaluate it on subsequent calls unless force is true.
	exe := mustCompile(t, "1.0 + 1.0")
	if exe.Qual != sel.QualifierConst {
		t.Fatalf("expected `1.0 + 1.0` to be Const, got qualifier %v", exe.Qual)
	}

	vm := sel.NewVM()
	host := &fakeHost{}
	first, err := vm.Eval(exe, host, builtins.Global(), false)
	if err != nil {
		t.Fatalf("first Eval: %v", err)
	}
	host.evalCalls = 999 // mutate host state; memoized result must not change
	second, err := vm.Eval(exe, host, builtins.Global(), false)
	if err != nil {
		t.Fatalf("second Eval: %v", err)
	}
	if second.Float != first.Float {
		t.Errorf("expected memoized Const result %v, got %v", first.Float, second.Float)
	}
}

func TestImpureExpressionIsNotMemoized(t *testing.T) {
	exe := mustCompile(t, "iota()")
	if exe.Qual == sel.QualifierConst {
		t.Fatalf("expected `iota()` to be non-Const (impure host call)")
	}

	vm := sel.NewVM()
	host := &fakeHost{}
	a, err := vm.Eval(exe, host, builtins.Global(), false)
	if err != nil {
		t.Fatalf("first Eval: %v", err)
	}
	b, err := vm.Eval(exe, host, builtins.Global(), false)
	if err != nil {
		t.Fatalf("second Eval: %v", err)
	}
	if a.Int == b.Int {
		t.Errorf("expected successive iota() calls to differ, got %d and %d", a.Int, b.Int)
	}
}

func TestVec2Construction(t *testing.T) {
	exe := mustCompile(t, "vec2(1.0, 2.0)")
	if exe.Type != sel.TypeVec2 {
		t.Fatalf("expected vec2, got %s", exe.Type)
	}
	vm := sel.NewVM()
	val, err := vm.Eval(exe, &fakeHost{}, builtins.Global(), false)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if val.Vec2[0] != 1.0 || val.Vec2[1] != 2.0 {
		t.Errorf("vec2(1.0, 2.0) = %v, want (1, 2)", val.Vec2)
	}
}

func TestUnknownNameIsCheckError(t *testing.T) {
	_, err := sel.Compile("not_a_real_builtin()", builtins.Global())
	if err == nil {
		t.Fatal("expected a name error for an unknown builtin")
	}
	if _, ok := err.(*sel.NameError); !ok {
		t.Fatalf("expected *sel.NameError, got %T", err)
	}
}
