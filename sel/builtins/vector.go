package builtins

import (
	math "github.com/chewxy/math32"
	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"

	"github.com/henrikglass/shaq/math/ms4"
	"github.com/henrikglass/shaq/sel"
)

// vectorFuncs covers spec.md §4.6's "Constructors and vector/matrix helpers"
// category for vec2/vec3/vec4/ivec2/ivec3/ivec4 (matrix constructors and
// mat4_* helpers live in matrix.go). Grounded on the vec2/vec3 arithmetic in
// math/ms2, math/ms3 (teacher) and math/ms4 (added to this repo).
func vectorFuncs() []sel.Func {
	var funcs []sel.Func

	funcs = append(funcs,
		sel.Func{
			Name: "vec2", Result: sel.TypeVec2, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "vec2(x, y) -> vec2",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.Vec2Value(ms2.Vec{X: a[0].Float, Y: a[1].Float}) },
		},
		sel.Func{
			Name: "vec3", Result: sel.TypeVec3, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "vec3(x, y, z) -> vec3",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec3Value(ms3.Vec{X: a[0].Float, Y: a[1].Float, Z: a[2].Float})
			},
		},
		sel.Func{
			Name: "vec4", Result: sel.TypeVec4, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "vec4(x, y, z, w) -> vec4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec4Value(ms4.Vec{X: a[0].Float, Y: a[1].Float, Z: a[2].Float, W: a[3].Float})
			},
		},
		sel.Func{
			Name: "ivec2", Result: sel.TypeIVec2, ArgTypes: []sel.Type{sel.TypeInt, sel.TypeInt}, Pure: true,
			Synopsis: "ivec2(x, y) -> ivec2",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeIVec2, IVec2: [2]int32{a[0].Int, a[1].Int}}
			},
		},
		sel.Func{
			Name: "ivec3", Result: sel.TypeIVec3, ArgTypes: []sel.Type{sel.TypeInt, sel.TypeInt, sel.TypeInt}, Pure: true,
			Synopsis: "ivec3(x, y, z) -> ivec3",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeIVec3, IVec3: [3]int32{a[0].Int, a[1].Int, a[2].Int}}
			},
		},
		sel.Func{
			Name: "ivec4", Result: sel.TypeIVec4, ArgTypes: []sel.Type{sel.TypeInt, sel.TypeInt, sel.TypeInt, sel.TypeInt}, Pure: true,
			Synopsis: "ivec4(x, y, z, w) -> ivec4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeIVec4, IVec4: [4]int32{a[0].Int, a[1].Int, a[2].Int, a[3].Int}}
			},
		},
		sel.Func{
			Name: "vec2_from_polar", Result: sel.TypeVec2, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "vec2_from_polar(r, theta) -> vec2",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				r, theta := a[0].Float, a[1].Float
				return sel.Vec2Value(ms2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
			},
		},
		sel.Func{
			Name: "vec3_from_spherical", Result: sel.TypeVec3,
			ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "vec3_from_spherical(r, theta, phi) -> vec3",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				r, theta, phi := a[0].Float, a[1].Float, a[2].Float
				st, ct := math.Sincos(theta)
				sp, cp := math.Sincos(phi)
				return sel.Vec3Value(ms3.Vec{X: r * st * cp, Y: r * st * sp, Z: r * ct})
			},
		},
		sel.Func{
			Name: "vec3_cross", Result: sel.TypeVec3, ArgTypes: []sel.Type{sel.TypeVec3, sel.TypeVec3}, Pure: true,
			Synopsis: "vec3_cross(a, b) -> vec3",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.Vec3Value(ms3.Cross(a[0].Vec3, a[1].Vec3)) },
		},
		sel.Func{
			Name: "vec4_xyz", Result: sel.TypeVec3, ArgTypes: []sel.Type{sel.TypeVec4}, Pure: true,
			Synopsis: "vec4_xyz(v) -> vec3",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				x, y, z := ms4.XYZ(a[0].Vec4)
				return sel.Vec3Value(ms3.Vec{X: x, Y: y, Z: z})
			},
		},
		sel.Func{
			Name: "rgba", Result: sel.TypeVec4, ArgTypes: []sel.Type{sel.TypeInt}, Pure: true,
			Synopsis: "rgba(hex) -> vec4", Doc: "unpacks a 0xRRGGBBAA int into normalised [0,1] components",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				hex := uint32(a[0].Int)
				r := float32((hex>>24)&0xFF) / 255
				g := float32((hex>>16)&0xFF) / 255
				bb := float32((hex>>8)&0xFF) / 255
				al := float32(hex&0xFF) / 255
				return sel.Vec4Value(ms4.Vec{X: r, Y: g, Z: bb, W: al})
			},
		},
	)

	funcs = append(funcs, vec2Helpers()...)
	funcs = append(funcs, vec3Helpers()...)
	funcs = append(funcs, vec4Helpers()...)
	return funcs
}

func vec2Helpers() []sel.Func {
	t := sel.TypeVec2
	return []sel.Func{
		{Name: "vec2_distance", Result: sel.TypeFloat, ArgTypes: []sel.Type{t, t}, Pure: true,
			Synopsis: "vec2_distance(a, b) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(ms2.Norm(ms2.Sub(a[0].Vec2, a[1].Vec2)))
			}},
		{Name: "vec2_length", Result: sel.TypeFloat, ArgTypes: []sel.Type{t}, Pure: true,
			Synopsis: "vec2_length(v) -> float",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.FloatValue(ms2.Norm(a[0].Vec2)) }},
		{Name: "vec2_normalize", Result: t, ArgTypes: []sel.Type{t}, Pure: true,
			Synopsis: "vec2_normalize(v) -> vec2",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.Vec2Value(ms2.Unit(a[0].Vec2)) }},
		{Name: "vec2_dot", Result: sel.TypeFloat, ArgTypes: []sel.Type{t, t}, Pure: true,
			Synopsis: "vec2_dot(a, b) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(ms2.Dot(a[0].Vec2, a[1].Vec2))
			}},
		{Name: "vec2_mul_scalar", Result: t, ArgTypes: []sel.Type{t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec2_mul_scalar(v, s) -> vec2",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec2Value(ms2.Scale(a[1].Float, a[0].Vec2))
			}},
		{Name: "vec2_lerp", Result: t, ArgTypes: []sel.Type{t, t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec2_lerp(a, b, t) -> vec2",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec2Value(ms2.Add(a[0].Vec2, ms2.Scale(a[2].Float, ms2.Sub(a[1].Vec2, a[0].Vec2))))
			}},
		{Name: "vec2_slerp", Result: t, ArgTypes: []sel.Type{t, t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec2_slerp(a, b, t) -> vec2", Doc: "spherical interpolation between two directions",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec2Value(slerp2(a[0].Vec2, a[1].Vec2, a[2].Float))
			}},
	}
}

func vec3Helpers() []sel.Func {
	t := sel.TypeVec3
	return []sel.Func{
		{Name: "vec3_distance", Result: sel.TypeFloat, ArgTypes: []sel.Type{t, t}, Pure: true,
			Synopsis: "vec3_distance(a, b) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(ms3.Norm(ms3.Sub(a[0].Vec3, a[1].Vec3)))
			}},
		{Name: "vec3_length", Result: sel.TypeFloat, ArgTypes: []sel.Type{t}, Pure: true,
			Synopsis: "vec3_length(v) -> float",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.FloatValue(ms3.Norm(a[0].Vec3)) }},
		{Name: "vec3_normalize", Result: t, ArgTypes: []sel.Type{t}, Pure: true,
			Synopsis: "vec3_normalize(v) -> vec3",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.Vec3Value(ms3.Unit(a[0].Vec3)) }},
		{Name: "vec3_dot", Result: sel.TypeFloat, ArgTypes: []sel.Type{t, t}, Pure: true,
			Synopsis: "vec3_dot(a, b) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(ms3.Dot(a[0].Vec3, a[1].Vec3))
			}},
		{Name: "vec3_mul_scalar", Result: t, ArgTypes: []sel.Type{t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec3_mul_scalar(v, s) -> vec3",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec3Value(ms3.Scale(a[1].Float, a[0].Vec3))
			}},
		{Name: "vec3_lerp", Result: t, ArgTypes: []sel.Type{t, t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec3_lerp(a, b, t) -> vec3",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec3Value(ms3.Add(a[0].Vec3, ms3.Scale(a[2].Float, ms3.Sub(a[1].Vec3, a[0].Vec3))))
			}},
		{Name: "vec3_slerp", Result: t, ArgTypes: []sel.Type{t, t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec3_slerp(a, b, t) -> vec3",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec3Value(slerp3(a[0].Vec3, a[1].Vec3, a[2].Float))
			}},
	}
}

func vec4Helpers() []sel.Func {
	t := sel.TypeVec4
	return []sel.Func{
		{Name: "vec4_distance", Result: sel.TypeFloat, ArgTypes: []sel.Type{t, t}, Pure: true,
			Synopsis: "vec4_distance(a, b) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(ms4.Distance(a[0].Vec4, a[1].Vec4))
			}},
		{Name: "vec4_length", Result: sel.TypeFloat, ArgTypes: []sel.Type{t}, Pure: true,
			Synopsis: "vec4_length(v) -> float",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.FloatValue(ms4.Norm(a[0].Vec4)) }},
		{Name: "vec4_normalize", Result: t, ArgTypes: []sel.Type{t}, Pure: true,
			Synopsis: "vec4_normalize(v) -> vec4",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.Vec4Value(ms4.Unit(a[0].Vec4)) }},
		{Name: "vec4_dot", Result: sel.TypeFloat, ArgTypes: []sel.Type{t, t}, Pure: true,
			Synopsis: "vec4_dot(a, b) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(ms4.Dot(a[0].Vec4, a[1].Vec4))
			}},
		{Name: "vec4_mul_scalar", Result: t, ArgTypes: []sel.Type{t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec4_mul_scalar(v, s) -> vec4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec4Value(ms4.Scale(a[1].Float, a[0].Vec4))
			}},
		{Name: "vec4_lerp", Result: t, ArgTypes: []sel.Type{t, t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec4_lerp(a, b, t) -> vec4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec4Value(ms4.Lerp(a[0].Vec4, a[1].Vec4, a[2].Float))
			}},
		{Name: "vec4_slerp", Result: t, ArgTypes: []sel.Type{t, t, sel.TypeFloat}, Pure: true,
			Synopsis: "vec4_slerp(a, b, t) -> vec4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec4Value(slerp4(a[0].Vec4, a[1].Vec4, a[2].Float))
			}},
	}
}

func slerp2(a, b ms2.Vec, t float32) ms2.Vec {
	la, lb := ms2.Norm(a), ms2.Norm(b)
	if la == 0 || lb == 0 {
		return ms2.Add(a, ms2.Scale(t, ms2.Sub(b, a)))
	}
	ua, ub := ms2.Scale(1/la, a), ms2.Scale(1/lb, b)
	cosTheta := math.Min(1, math.Max(-1, ms2.Dot(ua, ub)))
	theta := math.Acos(cosTheta)
	if theta < 1e-6 {
		return ms2.Add(a, ms2.Scale(t, ms2.Sub(b, a)))
	}
	s := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / s
	wb := math.Sin(t*theta) / s
	mag := la + t*(lb-la)
	dir := ms2.Add(ms2.Scale(wa, ua), ms2.Scale(wb, ub))
	return ms2.Scale(mag, dir)
}

func slerp3(a, b ms3.Vec, t float32) ms3.Vec {
	la, lb := ms3.Norm(a), ms3.Norm(b)
	if la == 0 || lb == 0 {
		return ms3.Add(a, ms3.Scale(t, ms3.Sub(b, a)))
	}
	ua, ub := ms3.Scale(1/la, a), ms3.Scale(1/lb, b)
	cosTheta := math.Min(1, math.Max(-1, ms3.Dot(ua, ub)))
	theta := math.Acos(cosTheta)
	if theta < 1e-6 {
		return ms3.Add(a, ms3.Scale(t, ms3.Sub(b, a)))
	}
	s := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / s
	wb := math.Sin(t*theta) / s
	mag := la + t*(lb-la)
	dir := ms3.Add(ms3.Scale(wa, ua), ms3.Scale(wb, ub))
	return ms3.Scale(mag, dir)
}

func slerp4(a, b ms4.Vec, t float32) ms4.Vec {
	la, lb := ms4.Norm(a), ms4.Norm(b)
	if la == 0 || lb == 0 {
		return ms4.Add(a, ms4.Scale(t, ms4.Sub(b, a)))
	}
	ua, ub := ms4.Scale(1/la, a), ms4.Scale(1/lb, b)
	cosTheta := math.Min(1, math.Max(-1, ms4.Dot(ua, ub)))
	theta := math.Acos(cosTheta)
	if theta < 1e-6 {
		return ms4.Add(a, ms4.Scale(t, ms4.Sub(b, a)))
	}
	s := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / s
	wb := math.Sin(t*theta) / s
	mag := la + t*(lb-la)
	dir := ms4.Add(ms4.Scale(wa, ua), ms4.Scale(wb, ub))
	return ms4.Scale(mag, dir)
}
