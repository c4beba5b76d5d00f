// Package ir defines the format-independent value tree all codecs parse
// into and serialize from, together with the comment side table that travels
// with a parsed document.
//
// # Value Trees
//
//	n := ir.NewObject()
//	n.SetField("port", ir.FromFloat(25565))
//	n.Field("port") // → Number 25565
//
// Objects are ordered; key order survives a parse/serialize round trip.
//
// # Key Paths
//
// Positions in a tree are addressed by key path strings such as
// "section.sub.list[2].name"; see the kpath subpackage. Paths are computed
// during traversal and never stored in nodes.
package ir
