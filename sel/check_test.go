package sel_test

import (
	"testing"

	"github.com/henrikglass/shaq/sel"
	"github.com/henrikglass/shaq/sel/builtins"
)

func mustCheck(t *testing.T, src string) *sel.ExprNode {
	t.Helper()
	e, err := sel.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if err := sel.Check(e, builtins.Global()); err != nil {
		t.Fatalf("Check(%q): %v", src, err)
	}
	return e
}

func TestCheckArithmeticType(t *testing.T) {
	e := mustCheck(t, "1 + 2")
	if e.Type != sel.TypeInt {
		t.Fatalf("got %s, want int", e.Type)
	}
	if e.Qual != sel.QualifierConst {
		t.Fatalf("expected a literal-only expression to be Const, got %v", e.Qual)
	}
}

func TestCheckOperandTypeMismatch(t *testing.T) {
	e, err := sel.Parse("1 + 1.0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = sel.Check(e, builtins.Global())
	if err == nil {
		t.Fatal("expected a type error mixing int and float operands")
	}
	if _, ok := err.(*sel.TypeError); !ok {
		t.Fatalf("expected *sel.TypeError, got %T", err)
	}
}

func TestCheckUnknownFuncIsNameError(t *testing.T) {
	e, err := sel.Parse("not_a_builtin(1)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = sel.Check(e, builtins.Global())
	if _, ok := err.(*sel.NameError); !ok {
		t.Fatalf("expected *sel.NameError, got %T (%v)", err, err)
	}
}

func TestCheckFuncArityMismatch(t *testing.T) {
	e, err := sel.Parse("vec2(1.0)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = sel.Check(e, builtins.Global())
	if _, ok := err.(*sel.TypeError); !ok {
		t.Fatalf("expected an arity *sel.TypeError, got %T (%v)", err, err)
	}
}

func TestCheckFuncArgTypeMismatch(t *testing.T) {
	e, err := sel.Parse(`vec2(1.0, "oops")`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = sel.Check(e, builtins.Global())
	if _, ok := err.(*sel.TypeError); !ok {
		t.Fatalf("expected *sel.TypeError, got %T (%v)", err, err)
	}
}

func TestCheckIvecForbidsArithmeticOperators(t *testing.T) {
	// Regression test for the original's copy-paste bug (DESIGN.md): Add/Sub/
	// Mul/Div must reject *every* ivec width, not just ivec2.
	for _, src := range []string{
		"ivec2(1, 2) + ivec2(1, 2)",
		"ivec3(1, 2, 3) + ivec3(1, 2, 3)",
		"ivec4(1, 2, 3, 4) + ivec4(1, 2, 3, 4)",
	} {
		e, err := sel.Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		err = sel.Check(e, builtins.Global())
		if _, ok := err.(*sel.TypeError); !ok {
			t.Errorf("%q: expected *sel.TypeError, got %T (%v)", src, err, err)
		}
	}
}

func TestCheckRemRequiresIntOrUintOperands(t *testing.T) {
	e, err := sel.Parse("1.0 % 2.0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = sel.Check(e, builtins.Global())
	if _, ok := err.(*sel.TypeError); !ok {
		t.Fatalf("expected float '%%' to be a *sel.TypeError, got %T (%v)", err, err)
	}
}

func TestCheckImpureCallIsNotConst(t *testing.T) {
	e := mustCheck(t, "iota()")
	if e.Qual == sel.QualifierConst {
		t.Fatal("expected iota() to be non-Const")
	}
}

func TestCheckPureCallOfConstArgsIsConst(t *testing.T) {
	e := mustCheck(t, "vec2(1.0, 2.0)")
	if e.Qual != sel.QualifierConst {
		t.Fatalf("expected vec2 of two literals to be Const, got %v", e.Qual)
	}
}

func TestCheckPureCallOfNonConstArgIsNotConst(t *testing.T) {
	e := mustCheck(t, "vec2(float(iota()), 2.0)")
	if e.Qual == sel.QualifierConst {
		t.Fatal("expected vec2(float(iota()), 2.0) to be non-Const since one argument reads host state")
	}
}
