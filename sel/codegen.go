package sel

import "encoding/binary"

// ExeExpr is a compiled, owned bytecode program: its byte buffer, result
// type and qualifier, and the VM's memoisation slot. Grounded on spec.md §3
// and original_source/src/selc.c's exe_append doubling-buffer growth,
// expressed here as ordinary Go `append` (which already doubles capacity).
type ExeExpr struct {
	Code []byte
	Type Type
	Qual Qualifier

	Source string // debug-only: the originating expression text

	computedOnce bool
	cached       Value
}

// Size returns the length of the compiled bytecode in bytes.
func (e *ExeExpr) Size() int { return len(e.Code) }

// Compile runs the full lexer -> parser -> checker -> codegen pipeline over
// src and returns a ready-to-evaluate ExeExpr.
func Compile(src string, reg Registry) (*ExeExpr, error) {
	tree, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if err := Check(tree, reg); err != nil {
		return nil, err
	}
	code := Codegen(tree, reg)
	return &ExeExpr{Code: code, Type: tree.Type, Qual: tree.Qual, Source: src}, nil
}

// Codegen lowers a checked tree to a flat bytecode buffer, per spec.md §4.4:
// one post-order walk, children emitted before the operator/function opcode.
func Codegen(e *ExprNode, reg Registry) []byte {
	var buf []byte
	emit(&buf, e, reg)
	return buf
}

func emit(buf *[]byte, e *ExprNode, reg Registry) {
	switch e.Kind {
	case ExprLiteral, ExprConst:
		sz := e.Type.Size()
		*buf = putHeader(*buf, OpPush, e.Type, uint8(sz))
		*buf = encodeValue(*buf, e.Value)

	case ExprParen:
		emit(buf, e.LHS, reg)

	case ExprNeg:
		emit(buf, e.LHS, reg)
		*buf = putHeader(*buf, OpNeg, e.Type, 0)

	case ExprAdd, ExprSub, ExprMul, ExprDiv, ExprRem:
		emit(buf, e.LHS, reg)
		emit(buf, e.RHS, reg)
		*buf = putHeader(*buf, binOp(e.Kind), e.Type, 0)

	case ExprFunc:
		args := flattenArgList(e.LHS)
		for _, a := range args {
			emit(buf, a, reg)
		}
		_, idx, ok := reg.LookupFunc(e.Name)
		if !ok {
			// Unreachable after a successful Check, but stay defensive.
			idx = -1
		}
		*buf = putHeader(*buf, OpFunc, e.Type, 4)
		var idxBytes [4]byte
		binary.LittleEndian.PutUint32(idxBytes[:], uint32(idx))
		*buf = append(*buf, idxBytes[:]...)

	case ExprArgList:
		emit(buf, e.LHS, reg)
		if e.RHS != nil {
			emit(buf, e.RHS, reg)
		}
	}
}

func binOp(k ExprKind) Op {
	switch k {
	case ExprAdd:
		return OpAdd
	case ExprSub:
		return OpSub
	case ExprMul:
		return OpMul
	case ExprDiv:
		return OpDiv
	case ExprRem:
		return OpRem
	}
	panic("binOp: not a binary operator kind")
}
