package render_test

import (
	"testing"

	"github.com/henrikglass/shaq/render"
	"github.com/henrikglass/shaq/sel"
	"github.com/henrikglass/shaq/sel/builtins"
)

func TestParseUniformType(t *testing.T) {
	cases := []struct {
		keyword string
		want    sel.Type
		ok      bool
	}{
		{"float", sel.TypeFloat, true},
		{"vec3", sel.TypeVec3, true},
		{"sampler2D", sel.TypeTexture, true},
		{"not_a_type", sel.TypeNil, false},
	}
	for _, c := range cases {
		got, ok := render.ParseUniformType(c.keyword)
		if ok != c.ok {
			t.Errorf("%q: ok = %v, want %v", c.keyword, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("%q: got %s, want %s", c.keyword, got, c.want)
		}
	}
}

func TestNewUniformCompilesAndBindsLocation(t *testing.T) {
	u, err := render.NewUniform("u_speed", sel.TypeFloat, "1.0 + 0.5", builtins.Global())
	if err != nil {
		t.Fatalf("NewUniform: %v", err)
	}
	if u.Name != "u_speed" {
		t.Errorf("Name = %q", u.Name)
	}
	if u.Type != sel.TypeFloat {
		t.Errorf("Type = %s, want float", u.Type)
	}
	if u.Location != -1 {
		t.Errorf("Location = %d, want -1 before the shader links", u.Location)
	}
}

func TestNewUniformRejectsDeclaredTypeMismatch(t *testing.T) {
	_, err := render.NewUniform("u_speed", sel.TypeInt, "1.0 + 0.5", builtins.Global())
	if err == nil {
		t.Fatal("expected an error: the expression is float but the uniform is declared int")
	}
}

func TestNewUniformRejectsCompileError(t *testing.T) {
	_, err := render.NewUniform("u_bad", sel.TypeFloat, "not_a_builtin(1.0)", builtins.Global())
	if err == nil {
		t.Fatal("expected a compile error to propagate")
	}
}
