// Package ms4 provides a 4-dimensional vector type in the style of the
// sibling ms2/ms3 packages. The teacher module stops at ms3; ms4 is added
// here to give SEL's vec4 type a home that matches the rest of the family
// (free functions over a plain value struct, math32 precision throughout).
package ms4

import (
	math "github.com/chewxy/math32"
	"github.com/henrikglass/shaq/math/ms1"
)

// Vec is a 4D vector of float32 components.
type Vec struct {
	X, Y, Z, W float32
}

// Array returns the ordered components of v in a 4 element array.
func (v Vec) Array() [4]float32 { return [4]float32{v.X, v.Y, v.Z, v.W} }

// Add returns the vector sum of p and q.
func Add(p, q Vec) Vec {
	return Vec{p.X + q.X, p.Y + q.Y, p.Z + q.Z, p.W + q.W}
}

// Sub returns the vector sum of p and -q.
func Sub(p, q Vec) Vec {
	return Vec{p.X - q.X, p.Y - q.Y, p.Z - q.Z, p.W - q.W}
}

// Scale returns the vector p scaled by f.
func Scale(f float32, p Vec) Vec {
	return Vec{f * p.X, f * p.Y, f * p.Z, f * p.W}
}

// MulElem returns the Hadamard product between vectors a and b.
func MulElem(a, b Vec) Vec {
	return Vec{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W}
}

// DivElem returns the Hadamard product between vector a and the inverse
// components of vector b.
func DivElem(a, b Vec) Vec {
	return Vec{a.X / b.X, a.Y / b.Y, a.Z / b.Z, a.W / b.W}
}

// Dot returns the dot product p·q.
func Dot(p, q Vec) float32 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z + p.W*q.W
}

// Norm returns the Euclidean norm of p.
func Norm(p Vec) float32 {
	return math.Sqrt(Dot(p, p))
}

// Unit returns the unit vector colinear to p. Unit returns the zero vector
// for the zero vector's input, matching the host's rgba/colour use of Vec4
// where a NaN would otherwise poison an entire pixel.
func Unit(p Vec) Vec {
	n := Norm(p)
	if n == 0 {
		return Vec{}
	}
	return Scale(1/n, p)
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Vec) float32 {
	return Norm(Sub(p, q))
}

// InterpElem performs a linear interpolation between x and y's elements,
// mapping with a's values in interval [0,1] (GLSL "mix").
func InterpElem(x, y, a Vec) Vec {
	return Vec{
		ms1.Interp(x.X, y.X, a.X),
		ms1.Interp(x.Y, y.Y, a.Y),
		ms1.Interp(x.Z, y.Z, a.Z),
		ms1.Interp(x.W, y.W, a.W),
	}
}

// Lerp performs scalar linear interpolation between vectors p and q at t in [0,1].
func Lerp(p, q Vec, t float32) Vec {
	return Add(p, Scale(t, Sub(q, p)))
}

// XYZ returns the first three components of v as a 3-vector, via the caller's
// choice of constructor (kept generic-free to avoid an import cycle with ms3).
func XYZ(v Vec) (x, y, z float32) { return v.X, v.Y, v.Z }
