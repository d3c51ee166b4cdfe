package builtins

import "github.com/henrikglass/shaq/sel"

// hostStateFuncs are all QUALIFIER_NONE (impure): each reads HostContext.
// Grounded on spec.md §4.6's "Host state (impure)" list. Per DESIGN.md,
// aspect_ratio and iresolution are impure here, diverging from
// original_source/src/selvm.c's QUALIFIER_PURE marking, since spec.md is
// authoritative and window size is host state.
func hostStateFuncs() []sel.Func {
	f := func(name string, result sel.Type, args []sel.Type, synopsis string, native func(sel.HostContext, []sel.Value) sel.Value) sel.Func {
		return sel.Func{Name: name, Result: result, ArgTypes: args, Pure: false, Synopsis: synopsis, Native: native}
	}
	noArgs := []sel.Type{}
	return []sel.Func{
		f("time", sel.TypeFloat, noArgs, "time() -> float", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.FloatValue(h.Time())
		}),
		f("deltatime", sel.TypeFloat, noArgs, "deltatime() -> float", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.FloatValue(h.DeltaTime())
		}),
		f("frame_count", sel.TypeInt, noArgs, "frame_count() -> int", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.IntValue(h.FrameCount())
		}),
		f("iota", sel.TypeInt, noArgs, "iota() -> int", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.IntValue(h.Iota())
		}),
		f("rand", sel.TypeFloat, []sel.Type{sel.TypeFloat, sel.TypeFloat}, "rand(min, max) -> float", func(h sel.HostContext, a []sel.Value) sel.Value {
			return sel.FloatValue(h.Rand(a[0].Float, a[1].Float))
		}),
		f("randi", sel.TypeInt, []sel.Type{sel.TypeInt, sel.TypeInt}, "randi(min, max) -> int", func(h sel.HostContext, a []sel.Value) sel.Value {
			return sel.IntValue(h.RandI(a[0].Int, a[1].Int))
		}),
		f("aspect_ratio", sel.TypeFloat, noArgs, "aspect_ratio() -> float", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.FloatValue(h.AspectRatio())
		}),
		f("iresolution", sel.TypeIVec2, noArgs, "iresolution() -> ivec2", func(h sel.HostContext, _ []sel.Value) sel.Value {
			w, hh := h.IResolution()
			return sel.Value{Typ: sel.TypeIVec2, IVec2: [2]int32{w, hh}}
		}),
		f("mouse_position", sel.TypeVec2, noArgs, "mouse_position() -> vec2", func(h sel.HostContext, _ []sel.Value) sel.Value {
			x, y := h.MousePosition()
			return sel.Value{Typ: sel.TypeVec2, Vec2: vec2xy(x, y)}
		}),
		f("mouse_drag_position", sel.TypeVec2, noArgs, "mouse_drag_position() -> vec2", func(h sel.HostContext, _ []sel.Value) sel.Value {
			x, y := h.MouseDragPosition()
			return sel.Value{Typ: sel.TypeVec2, Vec2: vec2xy(x, y)}
		}),
		f("left_mouse_button_is_down", sel.TypeBool, noArgs, "left_mouse_button_is_down() -> bool", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.BoolValue(h.LeftMouseButtonIsDown())
		}),
		f("right_mouse_button_is_down", sel.TypeBool, noArgs, "right_mouse_button_is_down() -> bool", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.BoolValue(h.RightMouseButtonIsDown())
		}),
		f("left_mouse_button_was_clicked", sel.TypeBool, noArgs, "left_mouse_button_was_clicked() -> bool", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.BoolValue(h.LeftMouseButtonWasClicked())
		}),
		f("right_mouse_button_was_clicked", sel.TypeBool, noArgs, "right_mouse_button_was_clicked() -> bool", func(h sel.HostContext, _ []sel.Value) sel.Value {
			return sel.BoolValue(h.RightMouseButtonWasClicked())
		}),
		f("key_is_down", sel.TypeBool, []sel.Type{sel.TypeStr}, "key_is_down(str) -> bool", func(h sel.HostContext, a []sel.Value) sel.Value {
			return sel.BoolValue(h.KeyIsDown(a[0].Str))
		}),
		f("key_was_pressed", sel.TypeBool, []sel.Type{sel.TypeStr}, "key_was_pressed(str) -> bool", func(h sel.HostContext, a []sel.Value) sel.Value {
			return sel.BoolValue(h.KeyWasPressed(a[0].Str))
		}),
	}
}
