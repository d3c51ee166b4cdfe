// Package gui implements shaq's persistent widget registry: the bookkeeping
// behind input_float, checkbox, slider_float, color_picker and friends.
// Actual widget rendering (the original's imguic.cpp Dear ImGui bridge) is
// out of scope per the specification's Non-goals, but the registry those
// draw calls would read from is in scope, since every widget builtin in
// sel/builtins/widgets.go needs somewhere to keep a value alive across
// frames. Grounded on original_source/src/gui.c's Widget{label, value, kind,
// touched_this_frame} struct and its per-frame GC via gui_clear_widgets.
package gui

import (
	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"

	"github.com/henrikglass/shaq/math/ms4"
)

// Kind discriminates the value shape a Widget holds. Unlike the original's
// single secondary_args[64] byte blob, each Kind here carries its own typed
// min/max/default fields: Go has no reason to byte-pack this.
type Kind uint8

const (
	KindFloat Kind = iota
	KindInt
	KindVec2
	KindVec3
	KindVec4
	KindBool
	KindDragInt
	KindSliderFloat
	KindSliderFloatLog
	KindColor
)

// Widget is one persistent GUI element, keyed by its label.
type Widget struct {
	Label   string
	Kind    Kind
	Touched bool

	Float float32
	Int   int32
	Vec2  ms2.Vec
	Vec3  ms3.Vec
	Vec4  ms4.Vec
	Bool  bool

	Min, Max float32 // only meaningful for KindSliderFloat*
	MinI     int32   // only meaningful for KindDragInt
	MaxI     int32
}

// Registry owns every widget created this session, keyed by label. A widget
// not touched in a frame is dropped by that frame's EndFrame, same semantics
// as gui_clear_widgets except the original clears everything unconditionally
// every reload while Go's GC-per-frame sweep mirrors the live ImGui idiom of
// widgets disappearing the moment their call site stops being evaluated
// (e.g. behind a since-toggled GUI_if-like condition in the project file).
type Registry struct {
	widgets map[string]*Widget
}

// NewRegistry creates an empty widget registry.
func NewRegistry() *Registry {
	return &Registry{widgets: make(map[string]*Widget)}
}

// BeginFrame clears the touched flag on every widget; widgets not re-touched
// by the time EndFrame runs are garbage.
func (r *Registry) BeginFrame() {
	for _, w := range r.widgets {
		w.Touched = false
	}
}

// EndFrame sweeps every widget that wasn't touched this frame.
func (r *Registry) EndFrame() {
	for label, w := range r.widgets {
		if !w.Touched {
			delete(r.widgets, label)
		}
	}
}

// Clear drops every widget unconditionally, mirroring gui_clear_widgets:
// shaq calls this on project reload since widget identities (types,
// min/max) may have changed between revisions of the *.ini file.
func (r *Registry) Clear() {
	r.widgets = make(map[string]*Widget)
}

func (r *Registry) getOrCreate(label string, kind Kind, init func(*Widget)) *Widget {
	w, ok := r.widgets[label]
	if !ok {
		w = &Widget{Label: label, Kind: kind}
		init(w)
		r.widgets[label] = w
	}
	w.Touched = true
	return w
}

func (r *Registry) Float(label string, def float32) float32 {
	return r.getOrCreate(label, KindFloat, func(w *Widget) { w.Float = def }).Float
}

func (r *Registry) Int(label string, def int32) int32 {
	return r.getOrCreate(label, KindInt, func(w *Widget) { w.Int = def }).Int
}

func (r *Registry) Vec2(label string, def ms2.Vec) ms2.Vec {
	return r.getOrCreate(label, KindVec2, func(w *Widget) { w.Vec2 = def }).Vec2
}

func (r *Registry) Vec3(label string, def ms3.Vec) ms3.Vec {
	return r.getOrCreate(label, KindVec3, func(w *Widget) { w.Vec3 = def }).Vec3
}

func (r *Registry) Vec4(label string, def ms4.Vec) ms4.Vec {
	return r.getOrCreate(label, KindVec4, func(w *Widget) { w.Vec4 = def }).Vec4
}

func (r *Registry) Bool(label string, def bool) bool {
	return r.getOrCreate(label, KindBool, func(w *Widget) { w.Bool = def }).Bool
}

func (r *Registry) DragInt(label string, min, max, def int32) int32 {
	return r.getOrCreate(label, KindDragInt, func(w *Widget) {
		w.Int, w.MinI, w.MaxI = def, min, max
	}).Int
}

func (r *Registry) SliderFloat(label string, min, max, def float32) float32 {
	return r.getOrCreate(label, KindSliderFloat, func(w *Widget) {
		w.Float, w.Min, w.Max = def, min, max
	}).Float
}

func (r *Registry) SliderFloatLog(label string, min, max, def float32) float32 {
	return r.getOrCreate(label, KindSliderFloatLog, func(w *Widget) {
		w.Float, w.Min, w.Max = def, min, max
	}).Float
}

func (r *Registry) Color(label string, def ms4.Vec) ms4.Vec {
	return r.getOrCreate(label, KindColor, func(w *Widget) { w.Vec4 = def }).Vec4
}

// Set overwrites a widget's value in place, called by the (out-of-scope)
// rendering layer when the user interacts with a drawn control.
func (r *Registry) Set(label string, mutate func(*Widget)) {
	if w, ok := r.widgets[label]; ok {
		mutate(w)
	}
}

// All returns every live widget, for the GUI layer to draw.
func (r *Registry) All() []*Widget {
	out := make([]*Widget, 0, len(r.widgets))
	for _, w := range r.widgets {
		out = append(out, w)
	}
	return out
}
