package sel

import (
	"fmt"

	"github.com/henrikglass/shaq/math/ms2"
	"github.com/henrikglass/shaq/math/ms3"

	"github.com/henrikglass/shaq/math/ms4"
)

// stackSize is the VM's fixed stack size: 16 KiB, per spec.md §4.5.
const stackSize = 16 * 1024

// RuntimeError reports a VM invariant violation: stack imbalance, or an
// integer division/remainder by zero. Per spec.md §4.9, these are
// programming errors; this port recovers them at the per-program boundary
// (see DESIGN.md's Open Question 1 resolution) rather than aborting the
// whole process, so one broken uniform does not take the session down.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string { return "sel: runtime error: " + e.Msg }

// VM is a single-threaded stack interpreter over a fixed byte stack. It is a
// plain struct with explicit exclusive ownership (spec.md §9 Design Notes),
// not a package-global singleton as in original_source/src/selvm.c; callers
// that want "the one VM" simply keep a single long-lived instance.
type VM struct {
	stack [stackSize]byte
	sp    int
}

// NewVM returns a ready-to-use VM.
func NewVM() *VM { return &VM{} }

// Eval implements spec.md §4.5's sel_eval: it returns exe's cached value if
// exe is Const and already computed (unless force requests a recompute),
// otherwise it runs the program and memoises the result.
func (vm *VM) Eval(exe *ExeExpr, host HostContext, reg Registry, force bool) (val Value, err error) {
	if exe.Qual == QualifierConst && exe.computedOnce && !force {
		return exe.cached, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &RuntimeError{Msg: fmt.Sprint(r)}
		}
	}()

	vm.sp = 0
	pc := 0
	code := exe.Code
	for pc < len(code) {
		op, typ, argsize := readHeader(code, pc)
		pc += opHeaderSize
		switch op {
		case OpPush:
			imm := code[pc : pc+int(argsize)]
			copy(vm.stack[vm.sp:], imm)
			vm.sp += int(argsize)
			pc += int(argsize)

		case OpAdd, OpSub, OpMul, OpDiv, OpRem:
			sz := typ.Size()
			rhsOff := vm.sp - sz
			lhsOff := rhsOff - sz
			lhs := decodeValue(typ, vm.stack[lhsOff:rhsOff])
			rhs := decodeValue(typ, vm.stack[rhsOff:vm.sp])
			res := binArith(op, lhs, rhs)
			vm.sp = lhsOff
			buf := vm.stack[vm.sp:vm.sp]
			buf = encodeValue(buf, res)
			vm.sp += len(buf)

		case OpNeg:
			sz := typ.Size()
			off := vm.sp - sz
			operand := decodeValue(typ, vm.stack[off:vm.sp])
			res := negate(operand)
			vm.sp = off
			buf := vm.stack[vm.sp:vm.sp]
			buf = encodeValue(buf, res)
			vm.sp += len(buf)

		case OpFunc:
			idx := int(readU32(code[pc : pc+4]))
			pc += 4
			fn := reg.FuncByIndex(idx)
			args := make([]Value, len(fn.ArgTypes))
			// Arguments were pushed left-to-right; pop them off in the
			// declared order by walking the stack backwards, matching
			// spec.md §4.5: args are "popped" (sp lowered) but their bytes
			// remain readable until the native call overwrites them.
			offs := make([]int, len(fn.ArgTypes))
			cursor := vm.sp
			for i := len(fn.ArgTypes) - 1; i >= 0; i-- {
				sz := fn.ArgTypes[i].Size()
				cursor -= sz
				offs[i] = cursor
			}
			for i, t := range fn.ArgTypes {
				args[i] = decodeValue(t, vm.stack[offs[i]:offs[i]+t.Size()])
			}
			vm.sp = cursor
			result := fn.Native(host, args)
			buf := vm.stack[vm.sp:vm.sp]
			buf = encodeValue(buf, result)
			vm.sp += len(buf)
		}
	}

	if vm.sp != exe.Type.Size() {
		return Value{}, &RuntimeError{Msg: fmt.Sprintf("stack imbalance: sp=%d want=%d", vm.sp, exe.Type.Size())}
	}
	result := decodeValue(exe.Type, vm.stack[0:vm.sp])
	if exe.Qual == QualifierConst {
		exe.cached = result
		exe.computedOnce = true
	}
	return result, nil
}

func readU32(b []byte) uint32 { return byteOrder.Uint32(b) }

// binArith implements the component-wise/Hadamard arithmetic semantics of
// spec.md §4.5, grounded on original_source/src/selvm.c's addi/subi/muli/
// divi/remi and vec2_add/vec3_hadamard/vec4_recip family (confirming '*' is
// Hadamard product and '/' is Hadamard-by-reciprocal on vectors).
func binArith(op Op, a, b Value) Value {
	switch a.Typ {
	case TypeInt:
		x, y := a.Int, b.Int
		switch op {
		case OpAdd:
			return IntValue(x + y)
		case OpSub:
			return IntValue(x - y)
		case OpMul:
			return IntValue(x * y)
		case OpDiv:
			return IntValue(x / y) // panics on y==0, recovered by Eval
		case OpRem:
			return IntValue(x % y) // C-style truncated remainder
		}
	case TypeUint:
		x, y := a.Uint, b.Uint
		switch op {
		case OpAdd:
			return UintValue(x + y)
		case OpSub:
			return UintValue(x - y)
		case OpMul:
			return UintValue(x * y)
		case OpDiv:
			return UintValue(x / y)
		case OpRem:
			return UintValue(x % y)
		}
	case TypeFloat:
		x, y := a.Float, b.Float
		switch op {
		case OpAdd:
			return FloatValue(x + y)
		case OpSub:
			return FloatValue(x - y)
		case OpMul:
			return FloatValue(x * y)
		case OpDiv:
			return FloatValue(x / y) // IEEE-754: trap-free, yields Inf/NaN
		}
	case TypeVec2:
		x, y := a.Vec2, b.Vec2
		switch op {
		case OpAdd:
			return Vec2Value(ms2.Add(x, y))
		case OpSub:
			return Vec2Value(ms2.Sub(x, y))
		case OpMul:
			return Vec2Value(ms2.MulElem(x, y))
		case OpDiv:
			return Vec2Value(ms2.DivElem(x, y))
		}
	case TypeVec3:
		x, y := a.Vec3, b.Vec3
		switch op {
		case OpAdd:
			return Vec3Value(ms3.Add(x, y))
		case OpSub:
			return Vec3Value(ms3.Sub(x, y))
		case OpMul:
			return Vec3Value(ms3.MulElem(x, y))
		case OpDiv:
			return Vec3Value(ms3.DivElem(x, y))
		}
	case TypeVec4:
		x, y := a.Vec4, b.Vec4
		switch op {
		case OpAdd:
			return Vec4Value(ms4.Add(x, y))
		case OpSub:
			return Vec4Value(ms4.Sub(x, y))
		case OpMul:
			return Vec4Value(ms4.MulElem(x, y))
		case OpDiv:
			return Vec4Value(ms4.DivElem(x, y))
		}
	}
	panic(fmt.Sprintf("sel: unsupported arithmetic op %d on %s", op, a.Typ))
}

func negate(a Value) Value {
	switch a.Typ {
	case TypeInt:
		return IntValue(-a.Int)
	case TypeFloat:
		return FloatValue(-a.Float)
	}
	panic("sel: Neg on non-numeric type " + a.Typ.String())
}
