package render

import (
	"fmt"

	"github.com/henrikglass/shaq/sel"
)

// Uniform binds one `uniform <type> <name> = <expr>` line from the project
// file to a compiled SEL program and (once a shader has linked) its GL
// uniform location. Grounded on original_source/src/uniform.h's Uniform
// struct and uniform.c's uniform_parse_from_ini_kv_pair.
type Uniform struct {
	Name     string
	Type     sel.Type
	Exe      *sel.ExeExpr
	Location int32 // -1 until resolved against a linked GL program
}

// uniformTypeNames mirrors uniform_parse_from_ini_kv_pair's chain of
// sv_starts_with_lchop checks for the left-hand-side type keyword, including
// GLSL's sampler2D spelling for SEL's texture type.
var uniformTypeNames = map[string]sel.Type{
	"bool":      sel.TypeBool,
	"int":       sel.TypeInt,
	"uint":      sel.TypeUint,
	"float":     sel.TypeFloat,
	"vec2":      sel.TypeVec2,
	"vec3":      sel.TypeVec3,
	"vec4":      sel.TypeVec4,
	"ivec2":     sel.TypeIVec2,
	"ivec3":     sel.TypeIVec3,
	"ivec4":     sel.TypeIVec4,
	"mat2":      sel.TypeMat2,
	"mat3":      sel.TypeMat3,
	"mat4":      sel.TypeMat4,
	"sampler2D": sel.TypeTexture,
}

// ParseUniformType maps a project-file type keyword to its sel.Type.
func ParseUniformType(keyword string) (sel.Type, bool) {
	t, ok := uniformTypeNames[keyword]
	return t, ok
}

// NewUniform compiles expr and binds it to name/declaredType, checking that
// the compiled expression's type matches the uniform's declared type, same
// check as uniform_parse_from_ini_kv_pair's final `exe->type != u->type`
// comparison.
func NewUniform(name string, declaredType sel.Type, expr string, reg sel.Registry) (*Uniform, error) {
	exe, err := sel.Compile(expr, reg)
	if err != nil {
		return nil, fmt.Errorf("compiling uniform %q: %w", name, err)
	}
	if exe.Type != declaredType {
		return nil, fmt.Errorf("uniform %q: expression `%s` has type %s, declared type is %s",
			name, expr, exe.Type, declaredType)
	}
	return &Uniform{Name: name, Type: declaredType, Exe: exe, Location: -1}, nil
}
