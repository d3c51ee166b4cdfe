package builtins

import "github.com/henrikglass/shaq/sel"

func conversionFuncs() []sel.Func {
	return []sel.Func{
		{
			Name: "int", Result: sel.TypeInt, ArgTypes: []sel.Type{sel.TypeFloat}, Pure: true,
			Synopsis: "int(float) -> int", Doc: "truncates towards zero",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.IntValue(int32(a[0].Float)) },
		},
		{
			Name: "float", Result: sel.TypeFloat, ArgTypes: []sel.Type{sel.TypeInt}, Pure: true,
			Synopsis: "float(int) -> float",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.FloatValue(float32(a[0].Int)) },
		},
		{
			Name: "unsigned", Result: sel.TypeUint, ArgTypes: []sel.Type{sel.TypeInt}, Pure: true,
			Synopsis: "unsigned(int) -> uint", Doc: "bit-reinterprets a negative int as its two's-complement uint",
			Native: func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.UintValue(uint32(a[0].Int)) },
		},
		{
			Name: "signed", Result: sel.TypeInt, ArgTypes: []sel.Type{sel.TypeUint}, Pure: true,
			Synopsis: "signed(uint) -> int",
			Native:   func(_ sel.HostContext, a []sel.Value) sel.Value { return sel.IntValue(int32(a[0].Uint)) },
		},
	}
}
