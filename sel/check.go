package sel

import "fmt"

// NameError reports an unresolved identifier or function name.
type NameError struct {
	Name string
	Pos  int
}

func (e *NameError) Error() string { return fmt.Sprintf("unknown name %q at %d", e.Name, e.Pos) }

// TypeError reports an operand/argument type mismatch, arity mismatch, or a
// disallowed operator for the operand type.
type TypeError struct {
	Msg string
	Pos int
}

func (e *TypeError) Error() string { return fmt.Sprintf("type error at %d: %s", e.Pos, e.Msg) }

// ConstnessError reports a non-const expression used in a const-only
// position (attribute right-hand sides, per spec.md §6).
type ConstnessError struct {
	Pos int
}

func (e *ConstnessError) Error() string { return fmt.Sprintf("expression at %d is not const", e.Pos) }

// Check performs the one post-order walk described in spec.md §4.3, assigning
// (Type, Qualifier) to every node of e and its descendants. It mutates e in
// place and also returns it for convenience chaining.
//
// Grounded on original_source/src/selc.c's type_and_namecheck, corrected for
// its ivec-forbidden copy-paste bug (see DESIGN.md): Add/Sub/Mul/Div reject
// all three ivec2/ivec3/ivec4 types, not just ivec2.
func Check(e *ExprNode, reg Registry) error {
	switch e.Kind {
	case ExprLiteral:
		// Already typed by the parser (literalValue sets Type/Qual).
		return nil

	case ExprConst:
		c, ok := reg.LookupConst(e.Name)
		if !ok {
			return &NameError{Name: e.Name, Pos: e.Tok.Pos}
		}
		e.Type = c.Value.Typ
		e.Qual = QualifierConst
		e.Value = c.Value
		return nil

	case ExprFunc:
		return checkFunc(e, reg)

	case ExprNeg:
		if err := Check(e.LHS, reg); err != nil {
			return err
		}
		if e.LHS.Type != TypeInt && e.LHS.Type != TypeFloat {
			return &TypeError{Msg: fmt.Sprintf("unary '-' requires int or float, got %s", e.LHS.Type), Pos: e.Tok.Pos}
		}
		e.Type = e.LHS.Type
		e.Qual = e.LHS.Qual
		return nil

	case ExprAdd, ExprSub, ExprMul, ExprDiv:
		if err := Check(e.LHS, reg); err != nil {
			return err
		}
		if err := Check(e.RHS, reg); err != nil {
			return err
		}
		if e.LHS.Type != e.RHS.Type {
			return &TypeError{Msg: fmt.Sprintf("operand type mismatch: %s vs %s", e.LHS.Type, e.RHS.Type), Pos: e.Tok.Pos}
		}
		t := e.LHS.Type
		if t == TypeBool || t == TypeStr || t == TypeTexture || t.IsMatrix() || t.IsIntVector() {
			return &TypeError{Msg: fmt.Sprintf("operator %s is forbidden on %s; use the named builtin helper", e.Tok.Text, t), Pos: e.Tok.Pos}
		}
		e.Type = t
		e.Qual = minQual(e.LHS.Qual, e.RHS.Qual)
		return nil

	case ExprRem:
		if err := Check(e.LHS, reg); err != nil {
			return err
		}
		if err := Check(e.RHS, reg); err != nil {
			return err
		}
		if e.LHS.Type != e.RHS.Type || (e.LHS.Type != TypeInt && e.LHS.Type != TypeUint) {
			return &TypeError{Msg: fmt.Sprintf("'%%' requires both operands int or both uint, got %s and %s", e.LHS.Type, e.RHS.Type), Pos: e.Tok.Pos}
		}
		e.Type = e.LHS.Type
		e.Qual = minQual(e.LHS.Qual, e.RHS.Qual)
		return nil

	case ExprParen:
		if err := Check(e.LHS, reg); err != nil {
			return err
		}
		e.Type = e.LHS.Type
		e.Qual = e.LHS.Qual
		return nil

	default:
		return &TypeError{Msg: fmt.Sprintf("internal: cannot type-check node kind %d", e.Kind), Pos: e.Tok.Pos}
	}
}

func checkFunc(e *ExprNode, reg Registry) error {
	fn, idx, ok := reg.LookupFunc(e.Name)
	if !ok {
		return &NameError{Name: e.Name, Pos: e.Tok.Pos}
	}
	_ = idx

	// Walk the ArgList in lock-step with fn.ArgTypes.
	args := flattenArgList(e.LHS)
	if len(args) != len(fn.ArgTypes) {
		return &TypeError{Msg: fmt.Sprintf("%s expects %d argument(s), got %d", e.Name, len(fn.ArgTypes), len(args)), Pos: e.Tok.Pos}
	}

	allConst := true
	for i, arg := range args {
		if err := Check(arg, reg); err != nil {
			return err
		}
		if arg.Type != fn.ArgTypes[i] {
			return &TypeError{Msg: fmt.Sprintf("%s argument %d: expected %s, got %s", e.Name, i+1, fn.ArgTypes[i], arg.Type), Pos: arg.Tok.Pos}
		}
		if arg.Qual != QualifierConst {
			allConst = false
		}
	}

	e.Type = fn.Result
	if fn.Pure && allConst {
		e.Qual = QualifierConst
	} else {
		e.Qual = QualifierNone
	}
	return nil
}

// flattenArgList walks a right-leaning ExprArgList chain (or nil) into a
// left-to-right slice of argument expressions.
func flattenArgList(n *ExprNode) []*ExprNode {
	var out []*ExprNode
	for n != nil {
		out = append(out, n.LHS)
		n = n.RHS
	}
	return out
}

func minQual(a, b Qualifier) Qualifier {
	if a == QualifierConst && b == QualifierConst {
		return QualifierConst
	}
	return QualifierNone
}
