package model

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/vpi"
)

// Elaborate binds every unelaborated design in designs into an instance
// tree under its topModules relation. A design is either fully elaborated
// or left untouched.
func (s *Store) Elaborate(designs []vpi.Ref) error {
	for _, ref := range designs {
		d := s.design(ref)
		if d == nil {
			return errors.Elaboration(fmt.Sprintf("reference %d is not a design", ref), nil)
		}
		if d.elaborated {
			continue
		}

		e := newElaborator(d)
		tops, err := e.run()
		if err != nil {
			return err
		}
		d.topModules = tops
		d.elaborated = true
		Logger().Debug("elaborated design",
			zap.String("design", d.name),
			zap.Int("definitions", len(d.allModules)),
			zap.Int("tops", len(tops)))
	}
	return nil
}

type elaborator struct {
	design *object
	defs   map[string]*object
}

func newElaborator(d *object) *elaborator {
	defs := make(map[string]*object, len(d.allModules))
	for _, def := range d.allModules {
		if def.defName == "" {
			continue
		}
		if _, dup := defs[def.defName]; dup {
			Logger().Warn("duplicate definition ignored",
				zap.String("design", d.name),
				zap.String("definition", def.defName))
			continue
		}
		defs[def.defName] = def
	}
	return &elaborator{design: d, defs: defs}
}

// run instantiates every module definition that no other definition
// instantiates.
func (e *elaborator) run() ([]*object, error) {
	used := make(map[string]bool)
	for _, def := range e.design.allModules {
		for _, c := range def.children {
			c.walk(func(o *object) {
				if o.kind.IsInstance() && o.defName != "" {
					used[o.defName] = true
				}
			})
		}
	}

	var tops []*object
	for _, def := range e.design.allModules {
		if def.kind != vpi.KindModule || def.defName == "" || used[def.defName] {
			continue
		}
		if e.defs[def.defName] != def {
			continue
		}
		name := trimLibrary(def.defName)
		top, err := e.instantiate(def, def, name, name, []string{def.defName})
		if err != nil {
			return nil, err
		}
		tops = append(tops, top)
	}

	if len(tops) == 0 && len(e.defs) > 0 {
		return nil, errors.Elaboration(fmt.Sprintf("design %q has no top-level module", e.design.name), nil)
	}
	return tops, nil
}

// instantiate creates an instance of def at site. stack holds the
// definitions being instantiated above it.
func (e *elaborator) instantiate(def, site *object, name, fullName string, stack []string) (*object, error) {
	inst := newObject(def.kind)
	inst.name = name
	inst.fullName = fullName
	inst.defName = def.defName
	inst.file = site.file
	inst.line = site.line
	inst.column = site.column
	inst.size = site.size
	inst.defFile = def.file
	inst.defLine = def.line

	children, err := e.cloneAll(def.children, fullName, stack)
	if err != nil {
		return nil, err
	}
	inst.children = children
	return inst, nil
}

func (e *elaborator) cloneAll(nodes []*object, parent string, stack []string) ([]*object, error) {
	out := make([]*object, 0, len(nodes))
	for _, n := range nodes {
		c, err := e.clone(n, parent, stack)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (e *elaborator) clone(n *object, parent string, stack []string) (*object, error) {
	fullName := joinName(parent, n.name)

	if n.kind.IsInstance() && n.defName != "" {
		def, ok := e.defs[n.defName]
		if !ok {
			return nil, errors.New(errors.PhaseElaborate, errors.KindElaboration).
				Path(strings.Split(fullName, ".")...).
				Value(n.defName).
				Detail("definition %q not found", n.defName).
				Build()
		}
		if slices.Contains(stack, n.defName) {
			return nil, errors.New(errors.PhaseElaborate, errors.KindElaboration).
				Path(strings.Split(fullName, ".")...).
				Value(n.defName).
				Detail("recursive instantiation of %q", n.defName).
				Build()
		}
		return e.instantiate(def, n, n.name, fullName, append(stack[:len(stack):len(stack)], n.defName))
	}

	c := newObject(n.kind)
	c.name = n.name
	c.fullName = fullName
	c.defName = n.defName
	c.file = n.file
	c.line = n.line
	c.column = n.column
	c.size = n.size
	c.defFile = n.defFile
	c.defLine = n.defLine

	children, err := e.cloneAll(n.children, childBase(c, parent), stack)
	if err != nil {
		return nil, err
	}
	c.children = children
	return c, nil
}
