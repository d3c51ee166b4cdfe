package sel

import (
	"encoding/binary"
	"math"

	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"

	"github.com/henrikglass/shaq/math/ms4"
)

// Op is a bytecode opcode kind.
type Op uint8

const (
	OpPush Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpNeg
	OpFunc
)

// opHeaderSize is the fixed 4-byte opcode header: kind, type, argsize, pad.
const opHeaderSize = 4

// encoding uses native (little-endian on every platform this repo targets)
// byte order throughout, matching spec.md's framing of the bytecode as
// explicitly non-portable across machine word sizes — encoding/binary.
// LittleEndian is used as a concrete, fixed choice rather than host-endian
// detection, since Go itself only targets little- and big-endian hosts and
// every one of the teacher's own build targets (amd64, arm64) is
// little-endian.
var byteOrder = binary.LittleEndian

func putHeader(buf []byte, op Op, typ Type, argsize uint8) []byte {
	var hdr [opHeaderSize]byte
	hdr[0] = uint8(op)
	hdr[1] = uint8(typ)
	hdr[2] = argsize
	hdr[3] = 0
	return append(buf, hdr[:]...)
}

func readHeader(code []byte, pc int) (op Op, typ Type, argsize uint8) {
	return Op(code[pc]), Type(code[pc+1]), code[pc+2]
}

// encodeValue appends v's canonical on-stack byte representation (exactly
// v.Typ.Size() bytes) to buf and returns the extended slice. bool encodes as
// a 4-byte int 0/1 per spec.md §4.4.
func encodeValue(buf []byte, v Value) []byte {
	switch v.Typ {
	case TypeBool:
		var b uint32
		if v.Bool {
			b = 1
		}
		return appendU32(buf, b)
	case TypeInt:
		return appendU32(buf, uint32(v.Int))
	case TypeUint:
		return appendU32(buf, v.Uint)
	case TypeFloat:
		return appendU32(buf, math.Float32bits(v.Float))
	case TypeVec2:
		buf = appendU32(buf, math.Float32bits(v.Vec2.X))
		return appendU32(buf, math.Float32bits(v.Vec2.Y))
	case TypeVec3:
		buf = appendU32(buf, math.Float32bits(v.Vec3.X))
		buf = appendU32(buf, math.Float32bits(v.Vec3.Y))
		return appendU32(buf, math.Float32bits(v.Vec3.Z))
	case TypeVec4:
		buf = appendU32(buf, math.Float32bits(v.Vec4.X))
		buf = appendU32(buf, math.Float32bits(v.Vec4.Y))
		buf = appendU32(buf, math.Float32bits(v.Vec4.Z))
		return appendU32(buf, math.Float32bits(v.Vec4.W))
	case TypeIVec2:
		buf = appendU32(buf, uint32(v.IVec2[0]))
		return appendU32(buf, uint32(v.IVec2[1]))
	case TypeIVec3:
		buf = appendU32(buf, uint32(v.IVec3[0]))
		buf = appendU32(buf, uint32(v.IVec3[1]))
		return appendU32(buf, uint32(v.IVec3[2]))
	case TypeIVec4:
		for _, c := range v.IVec4 {
			buf = appendU32(buf, uint32(c))
		}
		return buf
	case TypeMat2:
		for _, f := range mat2Array(v.Mat2) {
			buf = appendU32(buf, math.Float32bits(f))
		}
		return buf
	case TypeMat3:
		for _, f := range mat3Array(v.Mat3) {
			buf = appendU32(buf, math.Float32bits(f))
		}
		return buf
	case TypeMat4:
		for _, f := range mat4Array(v.Mat4) {
			buf = appendU32(buf, math.Float32bits(f))
		}
		return buf
	case TypeStr:
		// 16-byte "pointer+length" view: a Go string is itself safe to keep
		// alive via a side table, so we encode an index into that table
		// (8 bytes) plus its length (8 bytes) rather than reinterpret a raw
		// pointer, which Go has no safe equivalent for.
		idx := internStrings.intern(v.Str)
		buf = appendU64(buf, uint64(idx))
		return appendU64(buf, uint64(len(v.Str)))
	case TypeTexture:
		buf = append(buf, uint8(v.Tex.Kind), boolByte(v.Tex.Err), 0, 0)
		buf = appendU32(buf, uint32(v.Tex.Index))
		buf = appendU32(buf, uint32(v.Tex.Filter))
		return appendU32(buf, uint32(v.Tex.Wrap))
	}
	return buf
}

// decodeValue reads exactly typ.Size() bytes from b (which must be at least
// that long) and returns the typed Value.
func decodeValue(typ Type, b []byte) Value {
	switch typ {
	case TypeBool:
		return BoolValue(byteOrder.Uint32(b) != 0)
	case TypeInt:
		return IntValue(int32(byteOrder.Uint32(b)))
	case TypeUint:
		return UintValue(byteOrder.Uint32(b))
	case TypeFloat:
		return FloatValue(math.Float32frombits(byteOrder.Uint32(b)))
	case TypeVec2:
		return Vec2Value(ms2.Vec{X: f32at(b, 0), Y: f32at(b, 4)})
	case TypeVec3:
		return Vec3Value(ms3.Vec{X: f32at(b, 0), Y: f32at(b, 4), Z: f32at(b, 8)})
	case TypeVec4:
		return Vec4Value(ms4.Vec{X: f32at(b, 0), Y: f32at(b, 4), Z: f32at(b, 8), W: f32at(b, 12)})
	case TypeIVec2:
		return Value{Typ: typ, IVec2: [2]int32{i32at(b, 0), i32at(b, 4)}}
	case TypeIVec3:
		return Value{Typ: typ, IVec3: [3]int32{i32at(b, 0), i32at(b, 4), i32at(b, 8)}}
	case TypeIVec4:
		return Value{Typ: typ, IVec4: [4]int32{i32at(b, 0), i32at(b, 4), i32at(b, 8), i32at(b, 12)}}
	case TypeMat2:
		return Value{Typ: typ, Mat2: ms2.NewMat2(f32slice(b, 4))}
	case TypeMat3:
		return Value{Typ: typ, Mat3: ms3.NewMat3(f32slice(b, 9))}
	case TypeMat4:
		return Value{Typ: typ, Mat4: ms3.NewMat4(f32slice(b, 16))}
	case TypeStr:
		idx := int(byteOrder.Uint64(b[0:8]))
		return StrValue(internStrings.lookup(idx))
	case TypeTexture:
		td := TextureDescriptor{
			Kind:   TextureKind(b[0]),
			Err:    b[1] != 0,
			Index:  int32(byteOrder.Uint32(b[4:8])),
			Filter: int32(byteOrder.Uint32(b[8:12])),
			Wrap:   int32(byteOrder.Uint32(b[12:16])),
		}
		return TextureValue(td)
	}
	return Value{Typ: typ}
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	byteOrder.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	byteOrder.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func f32at(b []byte, off int) float32 {
	return math.Float32frombits(byteOrder.Uint32(b[off : off+4]))
}
func i32at(b []byte, off int) int32 {
	return int32(byteOrder.Uint32(b[off : off+4]))
}
func f32slice(b []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = f32at(b, i*4)
	}
	return out
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func mat2Array(m ms2.Mat2) []float32 {
	v := m.Array()
	return v[:]
}
func mat3Array(m ms3.Mat3) []float32 {
	v := m.Array()
	return v[:]
}
func mat4Array(m ms3.Mat4) []float32 {
	v := m.Array()
	return v[:]
}

// strInterner gives TypeStr values a stable integer handle, standing in for
// the "pointer" half of the original's pointer+length SelValue, since Go
// offers no safe raw-pointer equivalent to stash inside a byte stack slot.
type strInterner struct {
	strs []string
}

func (s *strInterner) intern(v string) int {
	s.strs = append(s.strs, v)
	return len(s.strs) - 1
}

func (s *strInterner) lookup(idx int) string {
	if idx < 0 || idx >= len(s.strs) {
		return ""
	}
	return s.strs[idx]
}

// internStrings backs every TypeStr literal compiled in the process; it only
// grows, since nothing currently calls ResetStringInterner on project
// reload (TODO: wire this into cmd/shaq/main.go's reload path once reload
// failure handling can distinguish "discard the old table" from "the old
// shaders we kept on a failed reload still reference it").
var internStrings = &strInterner{}

// ResetStringInterner clears the process-wide string table.
func ResetStringInterner() {
	internStrings.strs = internStrings.strs[:0]
}
