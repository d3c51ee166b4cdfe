package sel

import (
	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"

	"github.com/henrikglass/shaq/math/ms4"
)

// TextureKind discriminates the three variants of a TextureDescriptor.
type TextureKind uint8

const (
	TextureCurrentOutput TextureKind = iota // current-frame output of shader N
	TextureLastOutput                       // previous-frame output of shader N
	TextureLoadedImage                      // loaded image N (texture cache slot)
)

// TextureDescriptor is SEL's tagged-variant texture handle: which shader (or
// cache slot) it refers to, optional GL filter/wrap overrides, and an error
// bit callers must test before use. Grounded on spec.md §3 and §9 Design
// Notes ("in a rewrite use a tagged variant" in place of the original's
// 16-byte bitfield union).
type TextureDescriptor struct {
	Kind   TextureKind
	Index  int32 // shader index, or texture-cache slot index
	Filter int32 // GL filter enum override, 0 = unset/default
	Wrap   int32 // GL wrap enum override, 0 = unset/default
	Err    bool
}

// Value is SEL's tagged-by-Type union of every representable value. Spec.md
// describes SelValue as a byte union "only meaningful in conjunction with a
// Type"; this port uses a plain tagged struct instead of reinterpreting raw
// bytes, since Go has no safe reinterpret-cast and the VM's bytecode layer
// (bytecode.go) already provides the byte-level encoding spec.md actually
// cares about testing (stack balance, opcode sizes).
type Value struct {
	Typ Type

	Bool  bool
	Int   int32
	Uint  uint32
	Float float32
	Vec2  ms2.Vec
	Vec3  ms3.Vec
	Vec4  ms4.Vec
	IVec2 [2]int32
	IVec3 [3]int32
	IVec4 [4]int32
	Mat2  ms2.Mat2
	Mat3  ms3.Mat3
	Mat4  ms3.Mat4
	Str   string
	Tex   TextureDescriptor
}

// BoolValue, IntValue, etc. are constructors for the common literal/result
// shapes, used by the lexer/parser/checker and by builtins.
func BoolValue(b bool) Value    { return Value{Typ: TypeBool, Bool: b} }
func IntValue(i int32) Value    { return Value{Typ: TypeInt, Int: i} }
func UintValue(u uint32) Value  { return Value{Typ: TypeUint, Uint: u} }
func FloatValue(f float32) Value { return Value{Typ: TypeFloat, Float: f} }
func Vec2Value(v ms2.Vec) Value { return Value{Typ: TypeVec2, Vec2: v} }
func Vec3Value(v ms3.Vec) Value { return Value{Typ: TypeVec3, Vec3: v} }
func Vec4Value(v ms4.Vec) Value { return Value{Typ: TypeVec4, Vec4: v} }
func StrValue(s string) Value   { return Value{Typ: TypeStr, Str: s} }
func TextureValue(t TextureDescriptor) Value { return Value{Typ: TypeTexture, Tex: t} }
