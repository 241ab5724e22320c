// Package design exposes loaded hardware designs through handles.
//
// A Registry maps session ids to designs restored from files. Each
// session owns its own object store; every scope reported by a query
// comes with a Handle that owns one reference into that store and must
// be closed:
//
//	reg := design.NewRegistry(design.WithLogger(log))
//	defer reg.Close()
//
//	id, err := reg.Load(ctx, "top.yaml")
//	if err != nil {
//		return err
//	}
//	tops, err := reg.TopModules(id)
//	if err != nil {
//		return err
//	}
//	defer design.CloseAll(tops)
//
//	scopes, err := reg.SubScopes(tops[0].Handle)
//	...
//	vars, err := reg.Variables(tops[0].Handle)
//
// SubScopes reports child scopes in a fixed kind order (module, generate
// scope, generate scope array, interface, program, task or function,
// task, function, clocking block, modport, interface array, program
// array). A generate scope array never appears itself: its members are
// reported in its place, and an array directly nested in another array
// is skipped.
//
// Variables reports nets, regs, variables, parameters, I/O and clocking
// declarations under the categories net, reg, variable, integer, real,
// parameter and event. Their references are released before the call
// returns.
//
// A Handle wrapping no object is valid: queries on it return empty
// results. Queries on a nil Handle, or one from another registry, fail
// with errors.ErrInvalidHandle.
//
// Registries and handles are not safe for concurrent use.
package design
