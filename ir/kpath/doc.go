// Package kpath provides key path parsing and construction.
//
// A key path addresses a position in an ir.Node tree: dot-separated object
// keys with [i] suffixes for array indices.
//
//	kp, err := kpath.Parse("servers[0].name")
//
// Paths are built structurally during traversal:
//
//	p := kpath.Key("", "servers")   // "servers"
//	p = kpath.Elem(p, 0)            // "servers[0]"
//	p = kpath.Key(p, "name")        // "servers[0].name"
//
// The root of a tree has the empty path, which parses to nil.
package kpath
