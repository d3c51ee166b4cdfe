package builtins

import "github.com/henrikglass/shaq/math/ms2"

func vec2xy(x, y float32) ms2.Vec { return ms2.Vec{X: x, Y: y} }
