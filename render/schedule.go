package render

import (
	"log/slog"

	"golang.org/x/exp/slices"
)

// Schedule computes a render order for shaders such that every shader whose
// uniforms depend on another shader's output (via output_of/last_output_of
// texture uniforms, discovered by DetermineDependencies) is rendered after
// that dependency, plus any explicit render_after declarations. Ported
// directly from original_source/src/shaq_core.c's
// satisfy_dependencies_for_shader/determine_render_order: a DFS per shader
// index that appends to the order in post-order, skipping a shader already
// present, with a recursion-depth cycle guard equal to the shader count.
//
// A cyclic dependency is logged and the offending shader is omitted from
// the render order entirely (it never becomes renderable), rather than
// aborting the whole reload -- same recovery behaviour as the original,
// which continues on to the next shader's satisfy_dependencies_for_shader
// call after printing "cyclic dependency.".
func Schedule(shaders []*Shader, log *slog.Logger) []int {
	order := make([]int, 0, len(shaders))
	for i := range shaders {
		satisfyDependencies(shaders, i, 0, &order, log)
	}
	return order
}

func satisfyDependencies(shaders []*Shader, index, depth int, order *[]int, log *slog.Logger) bool {
	if depth > len(shaders) {
		log.Error("cyclic dependency detected while scheduling shaders", "shader", shaders[index].Name)
		return false
	}

	s := shaders[index]
	for _, dep := range s.ShaderDepends {
		if !satisfyDependencies(shaders, dep, depth+1, order, log) {
			return false
		}
	}

	if slices.Contains(*order, index) {
		return true
	}
	*order = append(*order, index)
	return true
}
