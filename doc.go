// Package confdoc is a configuration-document engine: it parses raw
// configuration text in four incompatible formats (JSON with // comments, a
// TOML subset, a YAML subset, Java-style properties) into one unified,
// ordered, semantically typed value tree plus a path-keyed comment table,
// and serializes the (possibly edited) tree back into valid text of the same
// format.
//
//	doc, err := confdoc.Parse(content, format.TOMLFormat)
//	if err != nil {
//	    // fall back to plain-text editing
//	}
//	tree := edit.Set(doc.Values, "section.port", ir.FromFloat(25566))
//	out, err := confdoc.Stringify(tree, format.TOMLFormat)
//
// Comments survive parsing keyed by the path they preceded, but are never
// written back; serialization is comment-free by design for every format.
//
// The engine is not a conformant implementation of any of the four formats.
// YAML anchors, multi-document streams, block-scalar content, TOML inline
// tables, and date/time types are out of scope.
package confdoc
