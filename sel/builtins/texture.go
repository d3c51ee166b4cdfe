package builtins

import "github.com/henrikglass/shaq/sel"

// textureFuncs resolve to a TextureDescriptor handle rather than doing any
// I/O themselves; the actual image load / render-graph dependency lookup
// happens in the render package's HostContext implementation, matching
// spec.md §3's rule that shader<->shader dependencies are discovered by
// scanning these calls during scheduling, not by executing them.
func textureFuncs() []sel.Func {
	return []sel.Func{
		{
			Name: "load_image", Result: sel.TypeTexture, ArgTypes: []sel.Type{sel.TypeStr}, Pure: false,
			Synopsis: "load_image(path) -> texture",
			Doc:      "loads (or fetches from cache) an image file as a texture; Err is set on failure",
			Native:   func(h sel.HostContext, a []sel.Value) sel.Value { return sel.TextureValue(h.LoadImage(a[0].Str)) },
		},
		{
			Name: "output_of", Result: sel.TypeTexture, ArgTypes: []sel.Type{sel.TypeStr}, Pure: false,
			Synopsis: "output_of(shaderName) -> texture",
			Doc:      "current-frame output of another shader; creates a render_after dependency edge",
			Native:   func(h sel.HostContext, a []sel.Value) sel.Value { return sel.TextureValue(h.OutputOf(a[0].Str)) },
		},
		{
			Name: "last_output_of", Result: sel.TypeTexture, ArgTypes: []sel.Type{sel.TypeStr}, Pure: false,
			Synopsis: "last_output_of(shaderName) -> texture",
			Doc:      "previous-frame output of another shader; never creates a dependency edge (breaks cycles deliberately)",
			Native:   func(h sel.HostContext, a []sel.Value) sel.Value { return sel.TextureValue(h.LastOutputOf(a[0].Str)) },
		},
	}
}
