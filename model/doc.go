// Package model is an in-memory implementation of the vpi object model.
//
// A Store restores designs from a serialized file and serves them through
// the vpi.Adapter surface. Every reference returned by Restore, Iterate or
// Scan is a fresh slot in a resource table and must be released; Live
// reports how many are outstanding, which is what leak tests assert on.
//
// # Design files
//
// Two formats are understood, chosen by extension:
//
//	.yaml .yml               YAML document with a top-level designs list
//	.db .sqlite .sqlite3     SQLite database with designs and objects tables
//
// A design lists its definitions under allModules and, once elaborated,
// its instance tree under topModules:
//
//	designs:
//	  - name: work@top
//	    allModules:
//	      - kind: module
//	        defName: work@top
//	        file: top.sv
//	        line: 1
//	        children:
//	          - {kind: net, name: clk, line: 2, size: 1}
//	          - {kind: module, name: u_core, defName: work@core, line: 5}
//
// Kinds are the names produced by vpi.Kind.String or decimal numbers.
//
// # Elaboration
//
// Elaborate turns the definitions of an unelaborated design into an
// instance tree. Definitions no other definition instantiates become top
// modules; every module, interface or program node carrying a defName is
// replaced by a copy of its definition with hierarchical full names.
package model
