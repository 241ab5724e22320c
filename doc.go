// Package hierquery answers structural questions about elaborated
// hardware designs: which modules sit at the top, which scopes live below
// a scope, which variables a scope declares and where its definition is.
//
// The module is organized into several packages:
//
//	hierquery/
//	├── vpi/        Object model contract: kinds, properties, Adapter
//	├── model/      Reference object store (YAML and SQLite, elaboration)
//	├── design/     Session registry, handles, scope walker, lookups
//	├── resource/   Handle table with drop-on-remove
//	├── errors/     Structured error types
//	├── config/     YAML configuration and logger construction
//	└── cmd/        hierquery command line and terminal browser
//
// # Quick Start
//
//	reg := design.NewRegistry()
//	defer reg.Close()
//
//	id, err := reg.Load(ctx, "soc.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tops, err := reg.TopModules(id)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer design.CloseAll(tops)
//
//	scopes, err := reg.SubScopes(tops[0].Handle)
//
// Every Handle returned by the registry owns one object reference and must
// be closed. Unloading a session closes whatever handles remain.
package hierquery
