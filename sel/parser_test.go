package sel

import "testing"

func mustParse(t *testing.T, src string) *ExprNode {
	t.Helper()
	e, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return e
}

func TestParserMulBindsTighterThanAdd(t *testing.T) {
	e := mustParse(t, "1 + 2 * 3")
	if e.Kind != ExprAdd {
		t.Fatalf("expected the root to be '+', got %v", e.Kind)
	}
	if e.RHS.Kind != ExprMul {
		t.Fatalf("expected the right operand to be the '*' subtree, got %v", e.RHS.Kind)
	}
}

func TestParserAddIsLeftAssociative(t *testing.T) {
	e := mustParse(t, "1 - 2 - 3")
	if e.Kind != ExprSub {
		t.Fatalf("expected root '-', got %v", e.Kind)
	}
	if e.LHS.Kind != ExprSub {
		t.Fatalf("expected '(1 - 2) - 3' (left-leaning), got right operand %v on the left", e.LHS.Kind)
	}
	if e.RHS.Kind != ExprLiteral {
		t.Fatalf("expected the outer right operand to be the literal 3, got %v", e.RHS.Kind)
	}
}

func TestParserParenOverridesPrecedence(t *testing.T) {
	e := mustParse(t, "(1 + 2) * 3")
	if e.Kind != ExprMul {
		t.Fatalf("expected root '*', got %v", e.Kind)
	}
	if e.LHS.Kind != ExprParen {
		t.Fatalf("expected left operand to be a parenthesised group, got %v", e.LHS.Kind)
	}
}

func TestParserUnaryMinusIsRightAssociative(t *testing.T) {
	e := mustParse(t, "--1")
	if e.Kind != ExprNeg || e.LHS.Kind != ExprNeg {
		t.Fatalf("expected nested negation, got %v / %v", e.Kind, e.LHS.Kind)
	}
}

func TestParserFuncCallWithArgs(t *testing.T) {
	e := mustParse(t, "vec2(1.0, 2.0)")
	if e.Kind != ExprFunc || e.Name != "vec2" {
		t.Fatalf("expected a call to vec2, got kind=%v name=%q", e.Kind, e.Name)
	}
	args := flattenArgList(e.LHS)
	if len(args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(args))
	}
}

func TestParserFuncCallWithNoArgs(t *testing.T) {
	e := mustParse(t, "iota()")
	if e.Kind != ExprFunc || e.Name != "iota" {
		t.Fatalf("got kind=%v name=%q", e.Kind, e.Name)
	}
	if e.LHS != nil {
		t.Fatalf("expected a nil argument list for a zero-arg call, got %v", e.LHS)
	}
}

func TestParserBareIdentIsConstRef(t *testing.T) {
	e := mustParse(t, "PI")
	if e.Kind != ExprConst || e.Name != "PI" {
		t.Fatalf("got kind=%v name=%q", e.Kind, e.Name)
	}
}

func TestParserUnmatchedParenIsError(t *testing.T) {
	if _, err := Parse("(1 + 2"); err == nil {
		t.Fatal("expected a parse error for an unterminated group")
	}
}

func TestParserTrailingTokenIsError(t *testing.T) {
	if _, err := Parse("1 + 2)"); err == nil {
		t.Fatal("expected a parse error for an unexpected trailing ')'")
	}
}

func TestParserEmptyInputIsError(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected a parse error for empty input")
	}
}
