package design

import (
	"github.com/wippyai/hierquery/vpi"
)

// scopeKinds is the order child scopes are reported in.
var scopeKinds = []vpi.Kind{
	vpi.KindModule,
	vpi.KindGenScope,
	vpi.KindGenScopeArray,
	vpi.KindInterface,
	vpi.KindProgram,
	vpi.KindTaskFunc,
	vpi.KindTask,
	vpi.KindFunction,
	vpi.KindClockingBlock,
	vpi.KindModport,
	vpi.KindInterfaceArray,
	vpi.KindProgramArray,
}

// variableKinds is the order declarations are reported in, with the
// category each kind reports as.
var variableKinds = []struct {
	kind     vpi.Kind
	category string
}{
	{vpi.KindNet, "net"},
	{vpi.KindArrayNet, "net"},
	{vpi.KindReg, "reg"},
	{vpi.KindVariables, "variable"},
	{vpi.KindIntegerVar, "integer"},
	{vpi.KindRealVar, "real"},
	{vpi.KindShortRealVar, "real"},
	{vpi.KindParameter, "parameter"},
	{vpi.KindIODecl, "net"},
	{vpi.KindClockingEvent, "event"},
	{vpi.KindClockingIODecl, "net"},
}

type walker struct {
	s *Session
	a vpi.Adapter
}

func newWalker(s *Session) *walker {
	return &walker{s: s, a: s.store}
}

// each scans the kind children of scope, passing ownership of every child
// reference to fn. The iterator is released once exhausted.
func (w *walker) each(kind vpi.Kind, scope vpi.Ref, fn func(child vpi.Ref)) {
	it := w.a.Iterate(kind, scope)
	if it == vpi.Null {
		return
	}
	for child := w.a.Scan(it); child != vpi.Null; child = w.a.Scan(it) {
		fn(child)
	}
	w.a.Release(it)
}

// subScopes collects the child scopes of scope. The members of a generate
// scope array are reported in place of the array; an array directly
// inside another array is skipped.
func (w *walker) subScopes(scope vpi.Ref, insideArray bool) []ScopeEntry {
	var out []ScopeEntry
	for _, kind := range scopeKinds {
		w.each(kind, scope, func(child vpi.Ref) {
			if kind != vpi.KindGenScopeArray {
				out = append(out, w.entry(child))
				return
			}
			if !insideArray {
				out = append(out, w.subScopes(child, true)...)
			}
			w.a.Release(child)
		})
	}
	return out
}

// entry projects child into a ScopeEntry whose handle takes ownership of
// the reference.
func (w *walker) entry(child vpi.Ref) ScopeEntry {
	e := ScopeEntry{
		Name:     displayName(w.a, child),
		Line:     intProp(w.a, vpi.PropLineNo, child),
		Column:   intProp(w.a, vpi.PropColumnNo, child),
		Category: Classify(vpi.Kind(w.a.Int(vpi.PropType, child))),
	}
	e.DefName, _ = w.a.Str(vpi.PropDefName, child)
	e.File, _ = w.a.Str(vpi.PropFile, child)
	e.Handle = newHandle(w.s, child)
	return e
}

func (w *walker) variables(scope vpi.Ref) []VariableEntry {
	var out []VariableEntry
	for _, vk := range variableKinds {
		w.each(vk.kind, scope, func(child vpi.Ref) {
			v := VariableEntry{
				Category: vk.category,
				Name:     displayName(w.a, child),
				Line:     intProp(w.a, vpi.PropLineNo, child),
				Column:   intProp(w.a, vpi.PropColumnNo, child),
				Width:    w.a.Int(vpi.PropSize, child),
			}
			v.File, _ = w.a.Str(vpi.PropFile, child)
			w.a.Release(child)
			out = append(out, v)
		})
	}
	return out
}

// SubScopes returns the immediate child scopes of h in kind order. A
// handle wrapping no object yields an empty result.
func (r *Registry) SubScopes(h *Handle) ([]ScopeEntry, error) {
	s, err := r.session(h)
	if err != nil {
		return nil, err
	}
	if h.ref == vpi.Null {
		return []ScopeEntry{}, nil
	}
	out := newWalker(s).subScopes(h.ref, false)
	if out == nil {
		out = []ScopeEntry{}
	}
	return out, nil
}

// Variables returns the declarations of h in kind order. The underlying
// references are released before Variables returns.
func (r *Registry) Variables(h *Handle) ([]VariableEntry, error) {
	s, err := r.session(h)
	if err != nil {
		return nil, err
	}
	if h.ref == vpi.Null {
		return []VariableEntry{}, nil
	}
	out := newWalker(s).variables(h.ref)
	if out == nil {
		out = []VariableEntry{}
	}
	return out, nil
}

// Definition returns where the definition of the scope behind h lives.
// A handle wrapping no object yields an empty Definition.
func (r *Registry) Definition(h *Handle) (Definition, error) {
	s, err := r.session(h)
	if err != nil {
		return Definition{}, err
	}
	if h.ref == vpi.Null {
		return Definition{}, nil
	}
	a := s.store
	var d Definition
	d.DefName, _ = a.Str(vpi.PropDefName, h.ref)
	d.File, _ = a.Str(vpi.PropDefFile, h.ref)
	d.Line = intProp(a, vpi.PropDefLineNo, h.ref)
	return d, nil
}
