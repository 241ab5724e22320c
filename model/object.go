package model

import (
	"strings"

	"github.com/wippyai/hierquery/vpi"
)

// object is one node of a restored design tree.
type object struct {
	kind     vpi.Kind
	name     string
	fullName string
	defName  string
	file     string
	defFile  string
	line     int
	column   int
	defLine  int
	size     int64
	children []*object

	// design nodes only
	elaborated bool
	allModules []*object
	topModules []*object
}

func newObject(kind vpi.Kind) *object {
	return &object{kind: kind, size: vpi.Undefined}
}

// childrenOf returns the children reached from o through kind, in
// declaration order.
func (o *object) childrenOf(kind vpi.Kind) []*object {
	if o.kind == vpi.KindDesign {
		switch kind {
		case vpi.KindAllModules:
			return o.allModules
		case vpi.KindTopModules:
			return o.topModules
		}
	}
	var out []*object
	for _, c := range o.children {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (o *object) str(prop vpi.Property) (string, bool) {
	var s string
	switch prop {
	case vpi.PropName:
		s = o.name
	case vpi.PropFullName:
		s = o.fullName
	case vpi.PropDefName:
		s = o.defName
	case vpi.PropFile:
		s = o.file
	case vpi.PropDefFile:
		s = o.defFile
	}
	return s, s != ""
}

func (o *object) int(prop vpi.Property) int64 {
	switch prop {
	case vpi.PropType:
		return int64(o.kind)
	case vpi.PropLineNo:
		return int64(o.line)
	case vpi.PropColumnNo:
		return int64(o.column)
	case vpi.PropSize:
		return o.size
	case vpi.PropDefLineNo:
		return int64(o.defLine)
	case vpi.PropElaborated:
		if o.kind != vpi.KindDesign {
			return vpi.Undefined
		}
		if o.elaborated {
			return 1
		}
		return 0
	}
	return vpi.Undefined
}

// walk visits o and its descendants depth first, pre-order.
func (o *object) walk(fn func(*object)) {
	fn(o)
	for _, c := range o.children {
		c.walk(fn)
	}
}

func joinName(parent, name string) string {
	switch {
	case name == "":
		return ""
	case parent == "":
		return name
	}
	return parent + "." + name
}

// childBase returns the name children of o are qualified with. Members of
// a generate scope array are named after the array's enclosing scope, as
// in top.gen[0] rather than top.gen.gen[0]; unnamed objects pass their
// parent's name through.
func childBase(o *object, parent string) string {
	if o.kind == vpi.KindGenScopeArray || o.fullName == "" {
		return parent
	}
	return o.fullName
}

// fillFullNames assigns hierarchical names to nodes that do not carry one.
func fillFullNames(parent string, nodes []*object) {
	for _, n := range nodes {
		if n.fullName == "" {
			n.fullName = joinName(parent, n.name)
		}
		fillFullNames(childBase(n, parent), n.children)
	}
}

// trimLibrary strips a "lib@" prefix from a definition name.
func trimLibrary(defName string) string {
	if _, name, ok := strings.Cut(defName, "@"); ok {
		return name
	}
	return defName
}
