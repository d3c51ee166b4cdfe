package builtins

import "github.com/henrikglass/shaq/sel"

// widgetFuncs are impure by construction: each call creates or touches a
// persistent GUI widget keyed by its label argument (internal/gui's
// registry). Grounded on original_source/src/gui.c's Widget{label, value,
// kind, secondary_args} layout and spec.md §4.6's widget list; the default
// argument is a literal, so the widget only takes effect the first frame it
// is seen and afterwards reflects user interaction, same as the original.
func widgetFuncs() []sel.Func {
	return []sel.Func{
		{
			Name: "input_float", Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeStr, sel.TypeFloat}, Pure: false,
			Synopsis: "input_float(label, default) -> float",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(h.InputFloat(a[0].Str, a[1].Float))
			},
		},
		{
			Name: "input_int", Result: sel.TypeInt, ArgTypes: []sel.Type{sel.TypeStr, sel.TypeInt}, Pure: false,
			Synopsis: "input_int(label, default) -> int",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.IntValue(h.InputInt(a[0].Str, a[1].Int))
			},
		},
		{
			Name: "input_vec2", Result: sel.TypeVec2, ArgTypes: []sel.Type{sel.TypeStr, sel.TypeVec2}, Pure: false,
			Synopsis: "input_vec2(label, default) -> vec2",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec2Value(h.InputVec2(a[0].Str, a[1].Vec2))
			},
		},
		{
			Name: "input_vec3", Result: sel.TypeVec3, ArgTypes: []sel.Type{sel.TypeStr, sel.TypeVec3}, Pure: false,
			Synopsis: "input_vec3(label, default) -> vec3",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec3Value(h.InputVec3(a[0].Str, a[1].Vec3))
			},
		},
		{
			Name: "input_vec4", Result: sel.TypeVec4, ArgTypes: []sel.Type{sel.TypeStr, sel.TypeVec4}, Pure: false,
			Synopsis: "input_vec4(label, default) -> vec4",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec4Value(h.InputVec4(a[0].Str, a[1].Vec4))
			},
		},
		{
			Name: "checkbox", Result: sel.TypeBool, ArgTypes: []sel.Type{sel.TypeStr, sel.TypeBool}, Pure: false,
			Synopsis: "checkbox(label, default) -> bool",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.BoolValue(h.Checkbox(a[0].Str, a[1].Bool))
			},
		},
		{
			Name: "drag_int", Result: sel.TypeInt,
			ArgTypes: []sel.Type{sel.TypeStr, sel.TypeInt, sel.TypeInt, sel.TypeInt}, Pure: false,
			Synopsis: "drag_int(label, min, max, default) -> int",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.IntValue(h.DragInt(a[0].Str, a[1].Int, a[2].Int, a[3].Int))
			},
		},
		{
			Name: "slider_float", Result: sel.TypeFloat,
			ArgTypes: []sel.Type{sel.TypeStr, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: false,
			Synopsis: "slider_float(label, min, max, default) -> float",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(h.SliderFloat(a[0].Str, a[1].Float, a[2].Float, a[3].Float))
			},
		},
		{
			Name: "slider_float_log", Result: sel.TypeFloat,
			ArgTypes: []sel.Type{sel.TypeStr, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: false,
			Synopsis: "slider_float_log(label, min, max, default) -> float",
			Doc:      "logarithmic-scale variant of slider_float, for parameters spanning multiple orders of magnitude",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(h.SliderFloatLog(a[0].Str, a[1].Float, a[2].Float, a[3].Float))
			},
		},
		{
			Name: "color_picker", Result: sel.TypeVec4, ArgTypes: []sel.Type{sel.TypeStr, sel.TypeVec4}, Pure: false,
			Synopsis: "color_picker(label, default) -> vec4",
			Native: func(h sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec4Value(h.ColorPicker(a[0].Str, a[1].Vec4))
			},
		},
	}
}
