// Package resource provides handle tables for host-owned values.
//
// A Table maps small integer handles to Go values. It backs both the
// reference store (every native object reference handed out by an
// object-model iteration is a slot in a table) and the per-session set of
// open scope handles.
//
// # Handle Table
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	h := table.Insert(classObject, obj)
//
//	// Retrieve value by handle
//	value, ok := table.Get(h)
//
//	// Remove the value; Dropper values are dropped exactly once
//	value, ok = table.Remove(h)
//
// Handle 0 is never issued, so the zero Handle doubles as "null".
//
// # Classes
//
// Every value is inserted with a Class so lookups can be checked:
//
//	value, ok := table.GetTyped(h, classIterator) // !ok for an object handle
//
// # Observers
//
// Observers see every insert and drop, which is how tests count leaked or
// doubly released handles:
//
//	table.Subscribe(obs)
//
// # Memory Management
//
// Values are never garbage collected implicitly. The owner must call
// Remove when a handle is released, or Close to drop everything at once.
//
// Tables are not safe for concurrent use; a table belongs to one session
// and is accessed by one caller at a time.
package resource
