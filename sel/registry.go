package sel

import (
	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"

	"github.com/henrikglass/shaq/math/ms4"
)

// HostContext is threaded through every native builtin call. It carries the
// host state (time, input, widgets, texture cache, render-graph view) that
// impure builtins consult, per spec.md §9 Design Notes' recommendation of
// passing a handle as the first argument to every native implementation
// rather than reaching into free functions/globals as original_source does.
type HostContext interface {
	// Iota returns the next value of a reload-scoped monotonic counter,
	// advancing it. See DESIGN.md's resolution of Open Question 3.
	Iota() int32

	// Frame-latched clock state (spec.md §5: "observe values latched at
	// frame start").
	Time() float32
	DeltaTime() float32
	FrameCount() int32

	// PRNG seeded at startup from a CLI option or wall clock (spec.md §5).
	Rand(min, max float32) float32
	RandI(min, max int32) int32

	// Window/viewport state. Impure per spec.md §4.6, see DESIGN.md's
	// resolution of the aspect_ratio/iresolution purity discrepancy.
	AspectRatio() float32
	IResolution() (w, h int32)

	// Input polling.
	MousePosition() (x, y float32)
	MouseDragPosition() (x, y float32)
	LeftMouseButtonIsDown() bool
	RightMouseButtonIsDown() bool
	LeftMouseButtonWasClicked() bool
	RightMouseButtonWasClicked() bool
	KeyIsDown(key string) bool
	KeyWasPressed(key string) bool

	// Texture resolution (render-graph-aware; see render.HostContext).
	LoadImage(path string) TextureDescriptor
	OutputOf(shaderName string) TextureDescriptor
	LastOutputOf(shaderName string) TextureDescriptor

	// GUI widgets: each call both reads and (re-)registers the widget,
	// touching its "seen this frame" flag (internal/gui).
	InputFloat(label string, def float32) float32
	InputInt(label string, def int32) int32
	InputVec2(label string, def ms2.Vec) ms2.Vec
	InputVec3(label string, def ms3.Vec) ms3.Vec
	InputVec4(label string, def ms4.Vec) ms4.Vec
	Checkbox(label string, def bool) bool
	DragInt(label string, min, max, def int32) int32
	SliderFloat(label string, min, max, def float32) float32
	SliderFloatLog(label string, min, max, def float32) float32
	ColorPicker(label string, def ms4.Vec) ms4.Vec
}

// Func describes one entry of the builtin function table: signature,
// purity, and native implementation. ArgTypes is the declared argument type
// sequence (spec.md's "nil-terminated" list is represented directly as a
// Go slice).
type Func struct {
	Name     string
	Result   Type
	ArgTypes []Type
	Pure     bool
	Synopsis string
	Doc      string
	Native   func(host HostContext, args []Value) Value
}

// Const describes one entry of the builtin constant table (PI, TAU, GL_*, ...).
type Const struct {
	Name  string
	Value Value
}

// Registry is the interface the checker, codegen and VM need of the builtin
// table. sel/builtins provides the concrete implementation; sel itself stays
// free of any dependency on the registry's contents so the language core
// never needs to change when a builtin is added.
type Registry interface {
	LookupConst(name string) (Const, bool)
	LookupFunc(name string) (Func, int, bool) // returns the function and its table index
	FuncByIndex(i int) Func
}
