package design

import (
	"context"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/model"
	"github.com/wippyai/hierquery/resource"
	"github.com/wippyai/hierquery/vpi"
)

// maxIDAttempts bounds session id allocation against a degenerate source.
const maxIDAttempts = 64

// SessionID identifies a loaded design. Issued ids are never zero.
type SessionID uint32

// Store is an object store a session loads a design into.
type Store interface {
	vpi.Adapter
	Restore(path string) ([]vpi.Ref, error)
	Elaborate(designs []vpi.Ref) error
	Close() error
}

// Opener creates the store for one session.
type Opener func() Store

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for session and handle events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithOpener sets how session stores are created. The default opens a
// model.Store.
func WithOpener(open Opener) Option {
	return func(r *Registry) { r.open = open }
}

// WithIDSource sets the random source for session ids.
func WithIDSource(next func() uint32) Option {
	return func(r *Registry) { r.nextID = next }
}

// Session is one loaded design.
type Session struct {
	reg     *Registry
	id      SessionID
	path    string
	store   Store
	root    vpi.Ref
	handles *resource.Table
}

// ID returns the session id.
func (s *Session) ID() SessionID { return s.id }

// Path returns the file the design was loaded from.
func (s *Session) Path() string { return s.path }

// OpenHandles returns how many handles of the session are not closed.
func (s *Session) OpenHandles() int { return s.handles.Len() }

// Registry maps session ids to loaded designs.
//
// A Registry is not safe for concurrent use. Close unloads every session.
type Registry struct {
	sessions map[SessionID]*Session
	open     Opener
	nextID   func() uint32
	log      *zap.Logger
	closed   bool
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[SessionID]*Session),
		open:     func() Store { return model.NewStore() },
		nextID:   rand.Uint32,
		log:      Logger(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Load restores the design file at path into a new session.
//
// Only the first design in the file is kept; any others are released.
// An unelaborated design is elaborated before the session is registered.
// On error nothing is registered.
func (r *Registry) Load(ctx context.Context, path string) (SessionID, error) {
	if r.closed {
		return 0, errors.New(errors.PhaseLoad, errors.KindUnsupported).Detail("registry is closed").Build()
	}
	if err := ctx.Err(); err != nil {
		return 0, errors.Load(path, err)
	}

	id, err := r.allocID()
	if err != nil {
		return 0, err
	}

	store := r.open()
	designs, err := store.Restore(path)
	if err != nil {
		store.Close()
		return 0, errors.Load(path, err)
	}
	if len(designs) == 0 {
		store.Close()
		return 0, errors.Load(path, nil)
	}

	root := designs[0]
	for _, extra := range designs[1:] {
		name, _ := store.Str(vpi.PropName, extra)
		r.log.Warn("discarding additional design",
			zap.String("path", path),
			zap.String("design", name))
		store.Release(extra)
	}

	if err := ctx.Err(); err != nil {
		store.Release(root)
		store.Close()
		return 0, errors.Load(path, err)
	}

	if store.Int(vpi.PropElaborated, root) != 1 {
		if err := store.Elaborate(designs[:1]); err != nil {
			store.Release(root)
			store.Close()
			return 0, errors.Elaboration(fmt.Sprintf("elaborate %s", path), err)
		}
	}

	s := &Session{
		reg:     r,
		id:      id,
		path:    path,
		store:   store,
		root:    root,
		handles: resource.NewTable(),
	}
	if r.log.Core().Enabled(zap.DebugLevel) {
		s.handles.Subscribe(&handleLogger{log: r.log, session: id})
	}
	r.sessions[id] = s

	name, _ := store.Str(vpi.PropName, root)
	r.log.Info("loaded design",
		zap.Uint32("session", uint32(id)),
		zap.String("path", path),
		zap.String("design", name))
	return id, nil
}

func (r *Registry) allocID() (SessionID, error) {
	for range maxIDAttempts {
		id := SessionID(r.nextID())
		if id == 0 {
			continue
		}
		if _, taken := r.sessions[id]; taken {
			r.log.Debug("session id collision", zap.Uint32("session", uint32(id)))
			continue
		}
		return id, nil
	}
	return 0, errors.New(errors.PhaseLoad, errors.KindUnsupported).
		Detail("no free session id after %d attempts", maxIDAttempts).
		Build()
}

// Unload closes every open handle of the session, releases its root
// design and removes it.
func (r *Registry) Unload(id SessionID) error {
	s, ok := r.sessions[id]
	if !ok {
		return errors.SessionNotFound(uint32(id))
	}
	s.close(r.log)
	delete(r.sessions, id)

	r.log.Info("unloaded design",
		zap.Uint32("session", uint32(id)),
		zap.String("path", s.path))
	return nil
}

func (s *Session) close(log *zap.Logger) {
	if n := s.handles.Len(); n > 0 {
		log.Debug("dropping open handles",
			zap.Uint32("session", uint32(s.id)),
			zap.Int("count", n))
	}
	s.handles.Close()
	if s.root != vpi.Null {
		s.store.Release(s.root)
		s.root = vpi.Null
	}
	if err := s.store.Close(); err != nil {
		log.Warn("close store", zap.Uint32("session", uint32(s.id)), zap.Error(err))
	}
}

// Session returns the loaded session with the given id.
func (r *Registry) Session(id SessionID) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.SessionNotFound(uint32(id))
	}
	return s, nil
}

// Sessions returns the ids of all loaded sessions in ascending order.
func (r *Registry) Sessions() []SessionID {
	return slices.Sorted(maps.Keys(r.sessions))
}

// Close unloads every session. The registry accepts no further loads.
func (r *Registry) Close() error {
	for _, id := range r.Sessions() {
		if err := r.Unload(id); err != nil {
			return err
		}
	}
	r.closed = true
	return nil
}

// loaded returns the session for id, which must have a root design.
func (r *Registry) loaded(id SessionID) (*Session, error) {
	s, err := r.Session(id)
	if err != nil {
		return nil, err
	}
	if s.root == vpi.Null {
		return nil, errors.NotLoaded(uint32(id))
	}
	return s, nil
}

// TopModules returns the top-level module instances of a session. Every
// entry is categorized "Module"; Name is the instance's short name.
func (r *Registry) TopModules(id SessionID) ([]ScopeEntry, error) {
	s, err := r.loaded(id)
	if err != nil {
		return nil, err
	}

	a := s.store
	out := []ScopeEntry{}
	it := a.Iterate(vpi.KindTopModules, s.root)
	if it == vpi.Null {
		return out, nil
	}
	for top := a.Scan(it); top != vpi.Null; top = a.Scan(it) {
		e := ScopeEntry{Category: "Module"}
		e.Name, _ = a.Str(vpi.PropName, top)
		e.DefName, _ = a.Str(vpi.PropDefName, top)
		e.File, _ = a.Str(vpi.PropFile, top)
		e.Line = intProp(a, vpi.PropLineNo, top)
		e.Column = intProp(a, vpi.PropColumnNo, top)
		e.Handle = newHandle(s, top)
		out = append(out, e)
	}
	a.Release(it)
	return out, nil
}

// NullHandle returns a handle of session id that wraps no object.
func (r *Registry) NullHandle(id SessionID) (*Handle, error) {
	s, err := r.Session(id)
	if err != nil {
		return nil, err
	}
	return newHandle(s, vpi.Null), nil
}

// session validates that h was produced by r.
func (r *Registry) session(h *Handle) (*Session, error) {
	if h == nil || h.sess == nil {
		return nil, errors.InvalidHandle("handle was not produced by a registry")
	}
	if h.sess.reg != r {
		return nil, errors.InvalidHandle("handle belongs to another registry")
	}
	return h.sess, nil
}

type handleLogger struct {
	log     *zap.Logger
	session SessionID
}

func (l *handleLogger) OnResourceEvent(e resource.Event) {
	h, _ := e.Value.(*Handle)
	var ref vpi.Ref
	if h != nil {
		ref = h.ref
	}
	l.log.Debug("handle "+e.Type.String(),
		zap.Uint32("session", uint32(l.session)),
		zap.Uint32("handle", uint32(e.Handle)),
		zap.Uint32("ref", uint32(ref)))
}
