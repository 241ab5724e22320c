package resource

// Table maps handles to values with class information and observer support.
// It is not safe for concurrent use.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	live      int
	closed    bool
}

type entry struct {
	value any
	class Class
	valid bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert adds a value and returns its handle.
// Returns 0 once the table is closed.
func (t *Table) Insert(class Class, value any) Handle {
	if t.closed {
		return 0
	}

	e := entry{
		class: class,
		value: value,
		valid: true,
	}

	var handle Handle
	if n := len(t.freeList); n > 0 {
		handle = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[handle-1] = e
	} else {
		t.entries = append(t.entries, e)
		handle = Handle(len(t.entries))
	}
	t.live++

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Class:  class,
		Value:  value,
	})

	return handle
}

func (t *Table) lookup(handle Handle) *entry {
	if handle == 0 || int(handle) > len(t.entries) {
		return nil
	}
	e := &t.entries[handle-1]
	if !e.valid {
		return nil
	}
	return e
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	e := t.lookup(handle)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// GetTyped retrieves a value only if it matches the expected class.
func (t *Table) GetTyped(handle Handle, class Class) (any, bool) {
	e := t.lookup(handle)
	if e == nil || e.class != class {
		return nil, false
	}
	return e.value, true
}

// ClassOf returns the class of a live handle.
func (t *Table) ClassOf(handle Handle) (Class, bool) {
	e := t.lookup(handle)
	if e == nil {
		return 0, false
	}
	return e.class, true
}

// Remove drops a value and returns (value, true) if found.
// Values implementing Dropper are dropped after leaving the table, so a
// Dropper that removes itself again finds nothing.
func (t *Table) Remove(handle Handle) (any, bool) {
	e := t.lookup(handle)
	if e == nil {
		return nil, false
	}

	value, class := e.value, e.class
	*e = entry{}
	t.freeList = append(t.freeList, handle)
	t.live--

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Class:  class,
		Value:  value,
	})

	return value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live values.
func (t *Table) Len() int {
	return t.live
}

// Each iterates over live values in handle order until fn returns false.
func (t *Table) Each(fn func(Handle, Class, any) bool) {
	for i, e := range t.entries {
		if e.valid {
			if !fn(Handle(i+1), e.class, e.value) {
				return
			}
		}
	}
}

// Clear drops all live values.
func (t *Table) Clear() {
	// Collect handles first; Drop may touch the table
	var handles []Handle
	t.Each(func(h Handle, _ Class, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close drops all live values and stops accepting inserts.
// Closing twice is a no-op.
func (t *Table) Close() error {
	if t.closed {
		return nil
	}
	t.Clear()
	t.closed = true
	t.entries = nil
	t.freeList = nil
	return nil
}

// Closed reports whether Close has been called.
func (t *Table) Closed() bool {
	return t.closed
}

func (t *Table) notify(e Event) {
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
