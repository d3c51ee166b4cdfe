package builtins

import (
	math "github.com/chewxy/math32"

	"github.com/henrikglass/shaq/sel"
)

// mathFuncs are all QUALIFIER_PURE: each is a function only of its
// arguments, so a call with all-Const arguments checks as Const and gets
// memoised (spec.md's "pure-function folding" scenario). Implemented with
// github.com/chewxy/math32 throughout, never stdlib math, to stay in
// float32 precision end to end (spec.md's "1 ULP of single-precision").
func mathFuncs() []sel.Func {
	unary := func(name string, fn func(float32) float32) sel.Func {
		return sel.Func{
			Name: name, Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeFloat}, Pure: true,
			Synopsis: name + "(float) -> float",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.FloatValue(fn(a[0].Float)) },
		}
	}
	binaryF := func(name string, fn func(a, b float32) float32) sel.Func {
		return sel.Func{
			Name: name, Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: name + "(float, float) -> float",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.FloatValue(fn(a[0].Float, a[1].Float)) },
		}
	}

	funcs := []sel.Func{
		unary("sqrt", math.Sqrt),
		unary("exp", math.Exp),
		unary("log", math.Log),
		unary("exp2", math.Exp2),
		unary("log2", math.Log2),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		unary("tan", math.Tan),
		unary("asin", math.Asin),
		unary("acos", math.Acos),
		unary("atan", math.Atan),
		unary("round", math.Round),
		unary("floor", math.Floor),
		unary("ceil", math.Ceil),
		unary("fract", func(x float32) float32 { return x - math.Floor(x) }),
		unary("radians", func(deg float32) float32 { return deg * math.Pi / 180 }),
		binaryF("pow", math.Pow),
		binaryF("atan2", math.Atan2),
		binaryF("min", math.Min),
		binaryF("max", math.Max),
		{
			Name: "clamp", Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "clamp(x, min, max) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				return sel.FloatValue(math.Min(a[2].Float, math.Max(a[0].Float, a[1].Float)))
			},
		},
		{
			Name: "lerp", Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "lerp(x, y, t) -> float", Doc: "linear interpolation; t=0 -> x, t=1 -> y",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				x, y, t := a[0].Float, a[1].Float, a[2].Float
				return sel.FloatValue(x + t*(y-x))
			},
		},
		{
			Name: "ilerp", Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "ilerp(x, y, value) -> float", Doc: "inverse lerp: returns t such that lerp(x,y,t) == value",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				x, y, v := a[0].Float, a[1].Float, a[2].Float
				return sel.FloatValue((v - x) / (y - x))
			},
		},
		{
			Name: "remap", Result: sel.TypeFloat,
			ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "remap(value, inMin, inMax, outMin, outMax) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				v, inMin, inMax, outMin, outMax := a[0].Float, a[1].Float, a[2].Float, a[3].Float, a[4].Float
				t := (v - inMin) / (inMax - inMin)
				return sel.FloatValue(outMin + t*(outMax-outMin))
			},
		},
		{
			Name: "lerpsmooth", Result: sel.TypeFloat,
			ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "lerpsmooth(current, target, rate, dt) -> float",
			Doc:      "frame-rate-independent exponential smoothing towards target",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				current, target, rate, dt := a[0].Float, a[1].Float, a[2].Float, a[3].Float
				t := 1 - math.Exp(-rate*dt)
				return sel.FloatValue(current + t*(target-current))
			},
		},
		{
			Name: "smoothstep", Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeFloat, sel.TypeFloat, sel.TypeFloat}, Pure: true,
			Synopsis: "smoothstep(edge0, edge1, x) -> float",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value {
				edge0, edge1, x := a[0].Float, a[1].Float, a[2].Float
				t := math.Min(1, math.Max(0, (x-edge0)/(edge1-edge0)))
				return sel.FloatValue(t * t * (3 - 2*t))
			},
		},
		{
			Name: "perlin3D", Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeVec3}, Pure: true,
			Synopsis: "perlin3D(vec3) -> float", Doc: "deterministic hash of the position in [-1,1); not interpolated, so not smooth like Perlin noise",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.FloatValue(perlin3D(a[0].Vec3)) },
		},
	}

	intBin := func(name string, fn func(a, b int32) int32) sel.Func {
		return sel.Func{
			Name: name, Result: sel.TypeInt, ArgTypes: []sel.Type{sel.TypeInt, sel.TypeInt}, Pure: true,
			Synopsis: name + "(int, int) -> int",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.IntValue(fn(a[0].Int, a[1].Int)) },
		}
	}
	funcs = append(funcs,
		intBin("mini", func(a, b int32) int32 {
			if a < b {
				return a
			}
			return b
		}),
		intBin("maxi", func(a, b int32) int32 {
			if a > b {
				return a
			}
			return b
		}),
	)

	uBin := func(name string, fn func(a, b uint32) uint32) sel.Func {
		return sel.Func{
			Name: name, Result: sel.TypeUint, ArgTypes: []sel.Type{sel.TypeUint, sel.TypeUint}, Pure: true,
			Synopsis: name + "(uint, uint) -> uint",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.UintValue(fn(a[0].Uint, a[1].Uint)) },
		}
	}
	funcs = append(funcs,
		uBin("xor", func(a, b uint32) uint32 { return a ^ b }),
		uBin("and", func(a, b uint32) uint32 { return a & b }),
		uBin("or", func(a, b uint32) uint32 { return a | b }),
		uBin("lshift", func(a, b uint32) uint32 { return a << (b & 31) }),
		uBin("rshift", func(a, b uint32) uint32 { return a >> (b & 31) }),
		uBin("rol", func(a, b uint32) uint32 { b &= 31; return a<<b | a>>(32-b) }),
		uBin("ror", func(a, b uint32) uint32 { b &= 31; return a>>b | a<<(32-b) }),
		sel.Func{
			Name: "not", Result: sel.TypeUint, ArgTypes: []sel.Type{sel.TypeUint}, Pure: true,
			Synopsis: "not(uint) -> uint",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.UintValue(^a[0].Uint) },
		},
	)
	return funcs
}

// perlin3D is a sine hash of the position, not gradient or value noise: it
// is deterministic and bounded to [-1, 1), but it does not interpolate
// between lattice points, so it is not continuous and nearby positions give
// unrelated values.
func perlin3D(p interface{ Array() [3]float32 }) float32 {
	a := p.Array()
	x, y, z := a[0], a[1], a[2]
	h := math.Sin(x*12.9898+y*78.233+z*37.719) * 43758.5453
	return 2*(h-math.Floor(h)) - 1
}
