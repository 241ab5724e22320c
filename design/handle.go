package design

import (
	"github.com/wippyai/hierquery/resource"
	"github.com/wippyai/hierquery/vpi"
)

const classHandle resource.Class = 1

// Handle owns one object reference of a session. Close releases the
// reference; a handle wrapping no object is valid and traverses to empty
// results.
//
// Handles must be closed before their session is unloaded. Unload drops
// any handle still open, after which it wraps no object.
type Handle struct {
	sess *Session
	ref  vpi.Ref
	slot resource.Handle
}

var _ resource.Dropper = (*Handle)(nil)

func newHandle(s *Session, ref vpi.Ref) *Handle {
	h := &Handle{sess: s, ref: ref}
	if ref != vpi.Null {
		h.slot = s.handles.Insert(classHandle, h)
	}
	return h
}

// Ref returns the wrapped reference, vpi.Null once closed.
func (h *Handle) Ref() vpi.Ref {
	if h == nil {
		return vpi.Null
	}
	return h.ref
}

// IsNull reports whether h wraps no object.
func (h *Handle) IsNull() bool {
	return h.Ref() == vpi.Null
}

// Session returns the id of the session h was drawn from.
func (h *Handle) Session() SessionID {
	if h == nil || h.sess == nil {
		return 0
	}
	return h.sess.id
}

// Close releases the wrapped reference. Closing twice is a no-op.
func (h *Handle) Close() error {
	if h == nil || h.sess == nil {
		return nil
	}
	if h.slot != 0 {
		// Remove calls Drop
		h.sess.handles.Remove(h.slot)
		return nil
	}
	h.Drop()
	return nil
}

// Drop implements resource.Dropper.
func (h *Handle) Drop() {
	if h.ref != vpi.Null {
		h.sess.store.Release(h.ref)
		h.ref = vpi.Null
	}
	h.slot = 0
}
