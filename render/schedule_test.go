package render

import (
	"io"
	"log/slog"
	"testing"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// before reports whether index a appears before index b in order.
func before(order []int, a, b int) bool {
	ia, ib := -1, -1
	for i, v := range order {
		if v == a {
			ia = i
		}
		if v == b {
			ib = i
		}
	}
	return ia != -1 && ib != -1 && ia < ib
}

func TestScheduleOrdersDependenciesFirst(t *testing.T) {
	// c depends on b, b depends on a: a must render before b, b before c.
	shaders := []*Shader{
		{Name: "a"},
		{Name: "b", ShaderDepends: []int{0}},
		{Name: "c", ShaderDepends: []int{1}},
	}
	order := Schedule(shaders, discardLog())

	if len(order) != 3 {
		t.Fatalf("expected all 3 shaders scheduled, got %v", order)
	}
	if !before(order, 0, 1) {
		t.Errorf("expected a (0) before b (1), got %v", order)
	}
	if !before(order, 1, 2) {
		t.Errorf("expected b (1) before c (2), got %v", order)
	}
}

func TestScheduleDeduplicatesDiamondDependency(t *testing.T) {
	// d depends on both b and c, which both depend on a. a must appear once.
	shaders := []*Shader{
		{Name: "a"},
		{Name: "b", ShaderDepends: []int{0}},
		{Name: "c", ShaderDepends: []int{0}},
		{Name: "d", ShaderDepends: []int{1, 2}},
	}
	order := Schedule(shaders, discardLog())

	count := 0
	for _, idx := range order {
		if idx == 0 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected shader 0 scheduled exactly once, got %d times in %v", count, order)
	}
	if !before(order, 0, 3) {
		t.Errorf("expected a (0) before d (3), got %v", order)
	}
}

func TestScheduleOmitsCyclicShaders(t *testing.T) {
	// a <-> b form a cycle; per Schedule's doc, the cyclic shader is logged
	// and omitted rather than aborting the whole reload.
	shaders := []*Shader{
		{Name: "a", ShaderDepends: []int{1}},
		{Name: "b", ShaderDepends: []int{0}},
		{Name: "c"},
	}
	order := Schedule(shaders, discardLog())

	for _, idx := range order {
		if idx == 0 || idx == 1 {
			t.Errorf("expected cyclic shaders 0/1 omitted from order, got %v", order)
		}
	}
	found := false
	for _, idx := range order {
		if idx == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected non-cyclic shader c (2) still scheduled, got %v", order)
	}
}

func TestScheduleHandlesExplicitRenderAfter(t *testing.T) {
	// render_after is folded into ShaderDepends by DetermineDependencies
	// before Schedule ever sees it; verify Schedule itself treats it no
	// differently from a texture-uniform dependency.
	shaders := []*Shader{
		{Name: "display", ShaderDepends: []int{1}}, // render_after = "fx"
		{Name: "fx"},
	}
	order := Schedule(shaders, discardLog())
	if !before(order, 1, 0) {
		t.Errorf("expected fx (1) before display (0), got %v", order)
	}
}
