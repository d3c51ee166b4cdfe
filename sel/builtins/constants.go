package builtins

import (
	math "github.com/chewxy/math32"

	"github.com/henrikglass/shaq/sel"
)

// GL texture filter/wrap enum values, matching original_source/src/selc.c's
// BUILTIN_CONSTANTS table — bound to the real GL enum integers. No builtin
// currently accepts a filter/wrap argument (`load_image` takes a single str
// path, see texture.go) and render/texture.go's Bind never reads
// TextureDescriptor.Filter/.Wrap, so these constants have nothing to plug
// into yet; original_source/src/selvm.c never wires this either (a
// commented-out load_image_detailed TODO). Kept registered, as the original
// does, for a call this repo doesn't yet implement.
const (
	glNearest            = 0x2600
	glLinear             = 0x2601
	glRepeat             = 0x2901
	glMirroredRepeat     = 0x8370
	glClampToEdge        = 0x812F
	glClampToBorder      = 0x812D
)

func constants() []sel.Const {
	return []sel.Const{
		{Name: "PI", Value: sel.FloatValue(math.Pi)},
		{Name: "TAU", Value: sel.FloatValue(2 * math.Pi)},
		{Name: "PHI", Value: sel.FloatValue(1.61803398875)},
		{Name: "e", Value: sel.FloatValue(math.E)},
		{Name: "GL_NEAREST", Value: sel.UintValue(glNearest)},
		{Name: "GL_LINEAR", Value: sel.UintValue(glLinear)},
		{Name: "GL_REPEAT", Value: sel.UintValue(glRepeat)},
		{Name: "GL_MIRRORED_REPEAT", Value: sel.UintValue(glMirroredRepeat)},
		{Name: "GL_CLAMP_TO_EDGE", Value: sel.UintValue(glClampToEdge)},
		{Name: "GL_CLAMP_TO_BORDER", Value: sel.UintValue(glClampToBorder)},
	}
}
