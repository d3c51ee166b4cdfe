// Package sel implements the Shader Expression Language: a small, closed,
// monomorphic expression language compiled to bytecode and evaluated by a
// single-threaded stack virtual machine against live host state.
package sel

import "fmt"

// Type is SEL's closed, monomorphic type enumeration. There is no
// polymorphism and no coercion between types: every expression has exactly
// one Type once it passes the checker.
type Type uint8

const (
	TypeNil Type = iota
	TypeBool
	TypeInt
	TypeUint
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeMat2
	TypeMat3
	TypeMat4
	TypeStr
	TypeTexture
	// TypeError is a sentinel assigned to expressions that failed checking.
	// It is never a valid result of a fully-checked program.
	TypeError
)

// sizes holds the fixed, non-portable, byte size of each Type's in-memory
// (and on-stack) representation. str and texture are both 16 bytes: str is
// conceptually a pointer+length pair, texture a tagged descriptor record.
var sizes = [...]int{
	TypeNil:     0,
	TypeBool:    1,
	TypeInt:     4,
	TypeUint:    4,
	TypeFloat:   4,
	TypeVec2:    8,
	TypeVec3:    12,
	TypeVec4:    16,
	TypeIVec2:   8,
	TypeIVec3:   12,
	TypeIVec4:   16,
	TypeMat2:    16,
	TypeMat3:    36,
	TypeMat4:    64,
	TypeStr:     16,
	TypeTexture: 16,
	TypeError:   0,
}

// Size returns the fixed byte size of t's on-stack representation.
func (t Type) Size() int {
	if int(t) >= len(sizes) {
		return 0
	}
	return sizes[t]
}

var names = [...]string{
	TypeNil:     "nil",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeUint:    "uint",
	TypeFloat:   "float",
	TypeVec2:    "vec2",
	TypeVec3:    "vec3",
	TypeVec4:    "vec4",
	TypeIVec2:   "ivec2",
	TypeIVec3:   "ivec3",
	TypeIVec4:   "ivec4",
	TypeMat2:    "mat2",
	TypeMat3:    "mat3",
	TypeMat4:    "mat4",
	TypeStr:     "str",
	TypeTexture: "texture",
	TypeError:   "error",
}

func (t Type) String() string {
	if int(t) >= len(names) || names[t] == "" && t != TypeNil {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return names[t]
}

// IsVector reports whether t is one of vec2/vec3/vec4/ivec2/ivec3/ivec4.
func (t Type) IsVector() bool {
	switch t {
	case TypeVec2, TypeVec3, TypeVec4, TypeIVec2, TypeIVec3, TypeIVec4:
		return true
	}
	return false
}

// IsIntVector reports whether t is one of ivec2/ivec3/ivec4: these are
// forbidden operands of the binary arithmetic operators (spec §4.3) and must
// go through the named builtin helpers instead.
func (t Type) IsIntVector() bool {
	switch t {
	case TypeIVec2, TypeIVec3, TypeIVec4:
		return true
	}
	return false
}

// IsMatrix reports whether t is one of mat2/mat3/mat4.
func (t Type) IsMatrix() bool {
	switch t {
	case TypeMat2, TypeMat3, TypeMat4:
		return true
	}
	return false
}

// Qualifier marks how an expression's value relates to host state across
// evaluations. It is the sole mechanism behind per-frame memoisation.
type Qualifier uint8

const (
	// QualifierNone marks an expression whose value may change between
	// evaluations (it reads host state, directly or transitively).
	QualifierNone Qualifier = iota
	// QualifierConst marks an expression whose value is independent of host
	// state: literals, constant-table atoms, and pure builtin calls applied
	// only to Const arguments. Const programs are evaluated once and cached.
	QualifierConst
	// QualifierPure is only ever attached to a builtin function's own
	// declaration (never to an ExprNode): it means the builtin's result
	// depends only on its arguments, with no host-state reads.
	QualifierPure
)

func (q Qualifier) String() string {
	switch q {
	case QualifierNone:
		return "none"
	case QualifierConst:
		return "const"
	case QualifierPure:
		return "pure"
	}
	return "?"
}
