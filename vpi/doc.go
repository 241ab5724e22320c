// Package vpi defines the object model contract the query engine runs on.
//
// The contract mirrors the IEEE 1800 VPI access routines: objects are
// reached through opaque references, children are enumerated per kind
// through iterators, and properties are read as strings or integers.
//
//	it := a.Iterate(vpi.KindNet, scope)
//	for obj := a.Scan(it); obj != vpi.Null; obj = a.Scan(it) {
//	    name, _ := a.Str(vpi.PropFullName, obj)
//	    a.Release(obj)
//	}
//	a.Release(it)
//
// Implementations own every reference they hand out until it is released.
package vpi
