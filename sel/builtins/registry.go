// Package builtins implements SEL's builtin constant and function registry:
// the single static table of named constants and native functions described
// in spec.md §4.6. Grounded on original_source/src/selvm.c's
// BUILTIN_FUNCTIONS table and selc.c's BUILTIN_CONSTANTS table for exact
// names, argument order and synopses; categorised per spec.md where the two
// disagree (see DESIGN.md).
package builtins

import "github.com/henrikglass/shaq/sel"

// Registry is the concrete, immutable builtin table. Lookups are exact-match
// linear scans over a small (~100-entry) table, matching spec.md §4.6's
// explicit sizing note — a map would be the "obvious" Go choice, but the
// spec calls out linear search as the intended implementation and the table
// is built once at package init and never mutated, so there is no
// performance incentive to deviate.
type Registry struct {
	consts []sel.Const
	funcs  []sel.Func
}

var global = build()

// Global returns the process-wide builtin registry.
func Global() *Registry { return global }

func (r *Registry) LookupConst(name string) (sel.Const, bool) {
	for _, c := range r.consts {
		if c.Name == name {
			return c, true
		}
	}
	return sel.Const{}, false
}

func (r *Registry) LookupFunc(name string) (sel.Func, int, bool) {
	for i, f := range r.funcs {
		if f.Name == name {
			return f, i, true
		}
	}
	return sel.Func{}, -1, false
}

func (r *Registry) FuncByIndex(i int) sel.Func {
	return r.funcs[i]
}

// All returns every registered function, in table order — used by the
// `-l`/`--list-builtins` CLI mode (cmd/shaq/main.go).
func (r *Registry) All() []sel.Func { return r.funcs }

// AllConsts returns every registered constant, in table order, for the same
// `-l`/`--list-builtins` listing (selc.c's sel_list_builtins prints
// constants before functions).
func (r *Registry) AllConsts() []sel.Const { return r.consts }

func build() *Registry {
	r := &Registry{}
	r.consts = append(r.consts, constants()...)
	r.funcs = append(r.funcs, conversionFuncs()...)
	r.funcs = append(r.funcs, hostStateFuncs()...)
	r.funcs = append(r.funcs, mathFuncs()...)
	r.funcs = append(r.funcs, vectorFuncs()...)
	r.funcs = append(r.funcs, matrixFuncs()...)
	r.funcs = append(r.funcs, textureFuncs()...)
	r.funcs = append(r.funcs, widgetFuncs()...)
	return r
}
