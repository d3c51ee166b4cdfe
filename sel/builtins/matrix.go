package builtins

import (
	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"

	"github.com/henrikglass/shaq/math/ms4"
	"github.com/henrikglass/shaq/sel"
)

// matrixFuncs covers mat2/mat3/mat4 construction and the mat4_* transform
// helpers named in spec.md §4.6. Grounded directly on math/ms2/mat2.go and
// math/ms3/mat3.go, mat4.go (teacher): NewMat2/NewMat3/NewMat4 take row-major
// component lists, IdentityMatN/TranslateMat4/ScaleMat4/RotationMat4/MulMat4
// already exist verbatim in the teacher and are reused, not reimplemented.
func matrixFuncs() []sel.Func {
	return []sel.Func{
		{
			Name: "mat2", Result: sel.TypeMat2,
			ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "mat2(x00, x01, x10, x11) -> mat2 (row major)",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				v := [4]float32{a[0].Float, a[1].Float, a[2].Float, a[3].Float}
				return sel.Value{Typ: sel.TypeMat2, Mat2: ms2.NewMat2(v[:])}
			},
		},
		{
			Name: "mat2_id", Result: sel.TypeMat2, ArgTypes: []sel.Type{}, Pure: true,
			Synopsis: "mat2_id() -> mat2",
			Native:   func(_ sel.HostContext, _ []sel.Value) sel.Value { return sel.Value{Typ: sel.TypeMat2, Mat2: ms2.IdentityMat2()} },
		},
		{
			Name: "mat3", Result: sel.TypeMat3,
			ArgTypes: []sel.Type{
				sel.TypeFloat, sel.TypeFloat, sel.TypeFloat,
				sel.TypeFloat, sel.TypeFloat, sel.TypeFloat,
				sel.TypeFloat, sel.TypeFloat, sel.TypeFloat,
			},
			Pure:     true,
			Synopsis: "mat3(x00..x22) -> mat3 (row major)",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				v := make([]float32, 9)
				for i := range v {
					v[i] = a[i].Float
				}
				return sel.Value{Typ: sel.TypeMat3, Mat3: ms3.NewMat3(v)}
			},
		},
		{
			Name: "mat3_id", Result: sel.TypeMat3, ArgTypes: []sel.Type{}, Pure: true,
			Synopsis: "mat3_id() -> mat3",
			Native:   func(_ sel.HostContext, _ []sel.Value) sel.Value { return sel.Value{Typ: sel.TypeMat3, Mat3: ms3.IdentityMat3()} },
		},
		{
			Name: "mat4", Result: sel.TypeMat4,
			ArgTypes: []sel.Type{
				sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat,
				sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat,
				sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat,
				sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat,
			},
			Pure:     true,
			Synopsis: "mat4(x00..x33) -> mat4 (row major)",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				v := make([]float32, 16)
				for i := range v {
					v[i] = a[i].Float
				}
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.NewMat4(v)}
			},
		},
		{
			Name: "mat4_id", Result: sel.TypeMat4, ArgTypes: []sel.Type{}, Pure: true,
			Synopsis: "mat4_id() -> mat4",
			Native:   func(_ sel.HostContext, _ []sel.Value) sel.Value { return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.IdentityMat4()} },
		},
		{
			Name: "mat4_make_translation", Result: sel.TypeMat4, ArgTypes: []sel.Type{sel.TypeVec3}, Pure: true,
			Synopsis: "mat4_make_translation(v) -> mat4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.TranslateMat4(a[0].Vec3)}
			},
		},
		{
			Name: "mat4_make_scale", Result: sel.TypeMat4, ArgTypes: []sel.Type{sel.TypeVec3}, Pure: true,
			Synopsis: "mat4_make_scale(v) -> mat4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.ScaleMat4(a[0].Vec3)}
			},
		},
		{
			Name: "mat4_make_rotation", Result: sel.TypeMat4, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeVec3}, Pure: true,
			Synopsis: "mat4_make_rotation(angleRadians, axis) -> mat4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.RotationMat4(a[0].Float, a[1].Vec3)}
			},
		},
		{
			Name: "mat4_make_look_at", Result: sel.TypeMat4,
			ArgTypes: []sel.Type{sel.TypeVec3, sel.TypeVec3, sel.TypeVec3}, Pure: true,
			Synopsis: "mat4_make_look_at(eye, target, up) -> mat4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeMat4, Mat4: lookAt(a[0].Vec3, a[1].Vec3, a[2].Vec3)}
			},
		},
		{
			Name: "mat4_translate", Result: sel.TypeMat4, ArgTypes: []sel.Type{sel.TypeMat4, sel.TypeVec3}, Pure: true,
			Synopsis: "mat4_translate(m, v) -> mat4", Doc: "returns translate(v) * m",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.MulMat4(ms3.TranslateMat4(a[1].Vec3), a[0].Mat4)}
			},
		},
		{
			Name: "mat4_scale", Result: sel.TypeMat4, ArgTypes: []sel.Type{sel.TypeMat4, sel.TypeVec3}, Pure: true,
			Synopsis: "mat4_scale(m, v) -> mat4", Doc: "returns scale(v) * m",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.MulMat4(ms3.ScaleMat4(a[1].Vec3), a[0].Mat4)}
			},
		},
		{
			Name: "mat4_rotate", Result: sel.TypeMat4,
			ArgTypes: []sel.Type{sel.TypeMat4, sel.TypeFloat, sel.TypeVec3}, Pure: true,
			Synopsis: "mat4_rotate(m, angleRadians, axis) -> mat4", Doc: "returns rotate(angle,axis) * m",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.MulMat4(ms3.RotationMat4(a[1].Float, a[2].Vec3), a[0].Mat4)}
			},
		},
		{
			Name: "mat4_mul_mat4", Result: sel.TypeMat4, ArgTypes: []sel.Type{sel.TypeMat4, sel.TypeMat4}, Pure: true,
			Synopsis: "mat4_mul_mat4(a, b) -> mat4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.MulMat4(a[0].Mat4, a[1].Mat4)}
			},
		},
		{
			Name: "mat4_mul_vec4", Result: sel.TypeVec4, ArgTypes: []sel.Type{sel.TypeMat4, sel.TypeVec4}, Pure: true,
			Synopsis: "mat4_mul_vec4(m, v) -> vec4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.Vec4Value(mulMat4Vec4(a[0].Mat4, a[1].Vec4))
			},
		},
		{
			Name: "mat4_mul_scalar", Result: sel.TypeMat4, ArgTypes: []sel.Type{sel.TypeMat4, sel.TypeFloat}, Pure: true,
			Synopsis: "mat4_mul_scalar(m, s) -> mat4",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				arr := a[0].Mat4.Array()
				for i := range arr {
					arr[i] *= a[1].Float
				}
				return sel.Value{Typ: sel.TypeMat4, Mat4: ms3.NewMat4(arr[:])}
			},
		},
	}
}

// lookAt builds a right-handed view matrix, row major, following the same
// construction OpenGL's gluLookAt / glm::lookAt use.
func lookAt(eye, target, up ms3.Vec) ms3.Mat4 {
	f := ms3.Unit(ms3.Sub(target, eye))
	s := ms3.Unit(ms3.Cross(f, up))
	u := ms3.Cross(s, f)
	return ms3.NewMat4([]float32{
		s.X, s.Y, s.Z, -ms3.Dot(s, eye),
		u.X, u.Y, u.Z, -ms3.Dot(u, eye),
		-f.X, -f.Y, -f.Z, ms3.Dot(f, eye),
		0, 0, 0, 1,
	})
}

func mulMat4Vec4(m ms3.Mat4, v ms4.Vec) ms4.Vec {
	arr := m.Array()
	a := v.Array()
	var result [4]float32
	for row := 0; row < 4; row++ {
		var sum float32
		for col := 0; col < 4; col++ {
			sum += arr[row*4+col] * a[col]
		}
		result[row] = sum
	}
	return ms4.Vec{X: result[0], Y: result[1], Z: result[2], W: result[3]}
}
