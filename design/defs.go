package design

import (
	"strings"

	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/vpi"
)

// ModuleDefs returns the module, interface and program definitions of a
// session in declaration order.
func (r *Registry) ModuleDefs(id SessionID) ([]ScopeEntry, error) {
	s, err := r.loaded(id)
	if err != nil {
		return nil, err
	}
	w := newWalker(s)
	out := []ScopeEntry{}
	w.each(vpi.KindAllModules, s.root, func(def vpi.Ref) {
		out = append(out, w.entry(def))
	})
	return out, nil
}

// Instances returns every instance of the definition defName in the
// elaborated hierarchy, depth first.
func (r *Registry) Instances(id SessionID, defName string) ([]ScopeEntry, error) {
	s, err := r.loaded(id)
	if err != nil {
		return nil, err
	}
	if defName == "" {
		return nil, errors.InvalidInput(errors.PhaseTraverse, "empty definition name")
	}
	w := newWalker(s)
	out := []ScopeEntry{}
	w.each(vpi.KindTopModules, s.root, func(top vpi.Ref) {
		out = w.instances(top, defName, out)
	})
	return out, nil
}

// instances appends the matches at and below ref to out and takes
// ownership of ref.
func (w *walker) instances(ref vpi.Ref, defName string, out []ScopeEntry) []ScopeEntry {
	kind := vpi.Kind(w.a.Int(vpi.PropType, ref))
	name, _ := w.a.Str(vpi.PropDefName, ref)
	matched := kind.IsInstance() && name == defName
	if matched {
		out = append(out, w.entry(ref))
	}

	for _, k := range scopeKinds {
		w.each(k, ref, func(child vpi.Ref) {
			out = w.instances(child, defName, out)
		})
	}

	if !matched {
		w.a.Release(ref)
	}
	return out
}

// Lookup resolves a dotted hierarchical name such as "top.u_core.gen[0]"
// to a scope. Generate scope arrays are transparent, as in SubScopes.
func (r *Registry) Lookup(id SessionID, fullName string) (ScopeEntry, error) {
	s, err := r.loaded(id)
	if err != nil {
		return ScopeEntry{}, err
	}
	w := newWalker(s)

	var level []ScopeEntry
	w.each(vpi.KindTopModules, s.root, func(top vpi.Ref) {
		level = append(level, w.entry(top))
	})

	for len(level) > 0 {
		match, prefix := -1, -1
		for i, e := range level {
			if e.Name == fullName {
				match = i
				break
			}
			if prefix < 0 && strings.HasPrefix(fullName, e.Name+".") {
				prefix = i
			}
		}
		keep := match
		if keep < 0 {
			keep = prefix
		}
		for i := range level {
			if i != keep {
				level[i].Handle.Close()
			}
		}
		if match >= 0 {
			return level[match], nil
		}
		if prefix < 0 {
			break
		}
		parent := level[prefix].Handle
		level = w.subScopes(parent.ref, false)
		parent.Close()
	}
	return ScopeEntry{}, errors.NotFound(errors.PhaseTraverse, "scope", fullName)
}
