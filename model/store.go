package model

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/resource"
	"github.com/wippyai/hierquery/vpi"
)

const (
	classObject resource.Class = iota + 1
	classIterator
)

type iterator struct {
	items []*object
	pos   int
}

// Store is an in-memory object model. Every reference it hands out is a
// slot in a resource table, so outstanding references can be counted.
// A Store is not safe for concurrent use.
type Store struct {
	refs         *resource.Table
	designs      []*object
	badReleases  int
	totalHandout int
}

var _ vpi.Adapter = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{refs: resource.NewTable()}
}

// Restore deserializes the designs in path and returns one reference per
// design. The format is chosen by file extension.
func (s *Store) Restore(path string) ([]vpi.Ref, error) {
	var (
		designs []*object
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		designs, err = readYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		designs, err = readSQLite(path)
	default:
		return nil, errors.Unsupported(errors.PhaseRestore, "design format "+ext)
	}
	if err != nil {
		return nil, err
	}

	for _, d := range designs {
		fillFullNames("", d.topModules)
		for _, def := range d.allModules {
			if def.fullName == "" {
				def.fullName = def.defName
			}
			fillFullNames(def.fullName, def.children)
		}
	}
	s.designs = append(s.designs, designs...)

	refs := make([]vpi.Ref, 0, len(designs))
	for _, d := range designs {
		refs = append(refs, s.newRef(classObject, d))
	}
	Logger().Debug("restored designs",
		zap.String("path", path),
		zap.Int("count", len(designs)))
	return refs, nil
}

func (s *Store) newRef(class resource.Class, v any) vpi.Ref {
	s.totalHandout++
	return vpi.Ref(s.refs.Insert(class, v))
}

func (s *Store) object(ref vpi.Ref) *object {
	v, ok := s.refs.GetTyped(resource.Handle(ref), classObject)
	if !ok {
		return nil
	}
	return v.(*object)
}

func (s *Store) design(ref vpi.Ref) *object {
	o := s.object(ref)
	if o == nil || o.kind != vpi.KindDesign {
		return nil
	}
	return o
}

// Iterate returns an iterator over the kind children of scope, or Null.
func (s *Store) Iterate(kind vpi.Kind, scope vpi.Ref) vpi.Ref {
	o := s.object(scope)
	if o == nil {
		return vpi.Null
	}
	items := o.childrenOf(kind)
	if len(items) == 0 {
		return vpi.Null
	}
	return s.newRef(classIterator, &iterator{items: items})
}

// Scan returns a fresh reference to the next child of iter, or Null.
func (s *Store) Scan(iter vpi.Ref) vpi.Ref {
	v, ok := s.refs.GetTyped(resource.Handle(iter), classIterator)
	if !ok {
		return vpi.Null
	}
	it := v.(*iterator)
	if it.pos >= len(it.items) {
		return vpi.Null
	}
	o := it.items[it.pos]
	it.pos++
	return s.newRef(classObject, o)
}

// Str reads a string property; ok is false when the object lacks it.
func (s *Store) Str(prop vpi.Property, obj vpi.Ref) (string, bool) {
	o := s.object(obj)
	if o == nil {
		return "", false
	}
	return o.str(prop)
}

// Int reads an integer property, vpi.Undefined when the object lacks it.
func (s *Store) Int(prop vpi.Property, obj vpi.Ref) int64 {
	o := s.object(obj)
	if o == nil {
		return vpi.Undefined
	}
	return o.int(prop)
}

// Release frees a reference. Releasing Null is a no-op; releasing a
// reference that is not live is counted and otherwise ignored.
func (s *Store) Release(ref vpi.Ref) {
	if ref == vpi.Null {
		return
	}
	if _, ok := s.refs.Remove(resource.Handle(ref)); !ok {
		s.badReleases++
		Logger().Debug("release of dead reference", zap.Uint32("ref", uint32(ref)))
	}
}

// Live returns the number of outstanding references.
func (s *Store) Live() int {
	return s.refs.Len()
}

// InvalidReleases returns how many Release calls named a reference that
// was not live.
func (s *Store) InvalidReleases() int {
	return s.badReleases
}

// Allocated returns how many references were ever handed out.
func (s *Store) Allocated() int {
	return s.totalHandout
}

// Subscribe forwards reference lifecycle events to o.
func (s *Store) Subscribe(o resource.Observer) {
	s.refs.Subscribe(o)
}

// Close drops every outstanding reference and all restored designs.
func (s *Store) Close() error {
	s.designs = nil
	return s.refs.Close()
}
