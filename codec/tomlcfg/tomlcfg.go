// Package tomlcfg implements the codec for a dotted-section TOML subset.
//
// The parser is a line-oriented state machine around a single "current
// section" reference. It is deliberately lenient: unparseable lines are
// silently ignored and parsing never fails. The subset excludes inline
// tables, dates, and escape processing in strings.
//
// Within every table, value fields are kept ahead of section fields. That is
// the only order Encode can emit, so canonicalizing at parse time keeps a
// document's field order stable across a parse/serialize round trip even
// when the input defines a child section before a sibling key.
package tomlcfg

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/confdoc/confdoc/debug"
	"github.com/confdoc/confdoc/ir"
	"github.com/confdoc/confdoc/ir/kpath"
)

// Parse builds a tree and its comment table from TOML-subset text.
//
// Consecutive `#` lines accumulate, joined with single spaces, and attach to
// the next key line, surviving any section headers in between; a section's
// own comment comes from an inline `#` on its header line. An inline `#`
// comment after a value, scanned outside quoted strings, overrides the
// accumulated comment for that key. A blank or unparseable line drops the
// accumulated comment.
func Parse(d []byte) (*ir.Node, ir.CommentMap, error) {
	root := ir.NewObject()
	comments := ir.CommentMap{}
	cur := root
	curPath := ""
	var pending []string

	for _, raw := range strings.Split(string(d), "\n") {
		line := strings.TrimRight(raw, "\r")
		t := strings.TrimSpace(line)
		if t == "" {
			pending = nil
			continue
		}
		if t[0] == '#' {
			pending = append(pending, strings.TrimSpace(t[1:]))
			continue
		}
		body, inline := splitInlineComment(t)
		body = strings.TrimSpace(body)
		if strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]") {
			segs := headerSegments(body[1 : len(body)-1])
			if segs == nil {
				pending = nil
				continue
			}
			cur = root
			curPath = ""
			for _, seg := range segs {
				cur = table(cur, seg)
				curPath = kpath.Key(curPath, seg)
			}
			if inline != "" {
				comments[curPath] = inline
			}
			// an accumulated leading comment is kept for the section's
			// first key, not claimed by the header
			continue
		}
		eq := strings.IndexByte(body, '=')
		if eq < 0 {
			if debug.Parse() {
				debug.Logf("tomlcfg: ignoring line: %q\n", line)
			}
			pending = nil
			continue
		}
		key := strings.TrimSpace(body[:eq])
		if key == "" || strings.ContainsAny(key, "\"'") {
			if debug.Parse() {
				debug.Logf("tomlcfg: ignoring key %q\n", key)
			}
			pending = nil
			continue
		}
		setValue(cur, key, parseValue(strings.TrimSpace(body[eq+1:])))
		p := kpath.Key(curPath, key)
		if inline != "" {
			comments[p] = inline
		} else if len(pending) > 0 {
			comments[p] = strings.Join(pending, " ")
		}
		pending = nil
	}
	return root, comments, nil
}

// headerSegments splits a section name on dots. A name with an empty
// segment is rejected; the caller treats the header as a junk line.
func headerSegments(name string) []string {
	segs := strings.Split(name, ".")
	for i, seg := range segs {
		segs[i] = strings.TrimSpace(seg)
		if segs[i] == "" {
			return nil
		}
	}
	return segs
}

// table returns the sub-table under seg, creating it if needed. A value
// field shadowed by a section header is removed and the new table appended,
// keeping value fields ahead of section fields.
func table(obj *ir.Node, seg string) *ir.Node {
	if i := obj.FieldIndex(seg); i >= 0 {
		if t := obj.Values[i]; t.Type == ir.ObjectType {
			return t
		}
		obj.Fields = append(obj.Fields[:i], obj.Fields[i+1:]...)
		obj.Values = append(obj.Values[:i], obj.Values[i+1:]...)
	}
	t := ir.NewObject()
	obj.SetField(seg, t)
	return t
}

// setValue stores a key's value, inserting new keys ahead of any section
// fields. A section shadowed by a value is removed first so the value lands
// back in the value zone.
func setValue(obj *ir.Node, key string, v *ir.Node) {
	if i := obj.FieldIndex(key); i >= 0 {
		if obj.Values[i].Type != ir.ObjectType {
			obj.Values[i] = v
			return
		}
		obj.Fields = append(obj.Fields[:i], obj.Fields[i+1:]...)
		obj.Values = append(obj.Values[:i], obj.Values[i+1:]...)
	}
	at := len(obj.Fields)
	for i := range obj.Fields {
		if obj.Values[i].Type == ir.ObjectType {
			at = i
			break
		}
	}
	obj.Fields = append(obj.Fields, "")
	copy(obj.Fields[at+1:], obj.Fields[at:])
	obj.Fields[at] = key
	obj.Values = append(obj.Values, nil)
	copy(obj.Values[at+1:], obj.Values[at:])
	obj.Values[at] = v
}

// splitInlineComment splits s at the first '#' that is not inside a quoted
// string. The second result is the trimmed comment text, or "".
func splitInlineComment(s string) (string, string) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
		}
	}
	return s, ""
}

func parseValue(s string) *ir.Node {
	switch s {
	case "true":
		return ir.FromBool(true)
	case "false":
		return ir.FromBool(false)
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			// quotes stripped, no escape processing
			return ir.FromString(s[1 : len(s)-1])
		}
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		arr := ir.NewArray()
		for _, elt := range splitTopLevel(s[1 : len(s)-1]) {
			elt = strings.TrimSpace(elt)
			if elt == "" {
				continue
			}
			arr.Append(parseValue(elt))
		}
		return arr
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return ir.FromFloat(f)
	}
	return ir.FromString(s)
}

// splitTopLevel splits on commas at bracket depth zero, outside quotes.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// Encode writes the tree as TOML-subset text. At each level the value keys
// are emitted first as `key = value` lines; nested objects follow as
// `[dotted.path]` section blocks, recursively. Strings are written in
// whichever representation the parser's own line scan reads back unchanged.
// Comments are intentionally not restored.
func Encode(n *ir.Node, w io.Writer) error {
	if n == nil || n.Type != ir.ObjectType {
		return nil
	}
	return encodeTable(w, n, "")
}

func encodeTable(w io.Writer, n *ir.Node, path string) error {
	for i, key := range n.Fields {
		v := n.Values[i]
		if v.Type == ir.ObjectType {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s = %s\n", key, valueText(v)); err != nil {
			return err
		}
	}
	for i, key := range n.Fields {
		v := n.Values[i]
		if v.Type != ir.ObjectType {
			continue
		}
		sub := kpath.Key(path, key)
		if _, err := fmt.Fprintf(w, "\n[%s]\n", sub); err != nil {
			return err
		}
		if err := encodeTable(w, v, sub); err != nil {
			return err
		}
	}
	return nil
}

func valueText(v *ir.Node) string {
	switch v.Type {
	case ir.StringType:
		return stringText(v.String)
	case ir.ArrayType:
		return arrayText(v, true)
	default:
		return plainText(v)
	}
}

func plainText(v *ir.Node) string {
	switch v.Type {
	case ir.NullType:
		return ""
	case ir.BoolType:
		return strconv.FormatBool(v.Bool)
	case ir.NumberType:
		return ir.FormatNumber(v.Number)
	case ir.ObjectType:
		// objects inside arrays are not representable in the subset
		return "{}"
	default:
		return ""
	}
}

// arrayText renders an array inline. mayOpen is true when nothing follows
// the array on its line, which lets the final element leave a quote open.
func arrayText(v *ir.Node, mayOpen bool) string {
	parts := make([]string, len(v.Values))
	for i, e := range v.Values {
		last := mayOpen && i == len(v.Values)-1
		switch e.Type {
		case ir.StringType:
			parts[i] = elementText(e.String, last)
		case ir.ArrayType:
			parts[i] = arrayText(e, last)
		default:
			parts[i] = plainText(e)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// stringText picks the first representation of s that the codec's own line
// scan reads back as s: double quotes, then single quotes, then raw.
func stringText(s string) string {
	for _, c := range []string{`"` + s + `"`, "'" + s + "'", s} {
		if readsBack(c, s) {
			return c
		}
	}
	return `"` + s + `"`
}

// elementText is stringText under the extra constraints of array element
// position: the text must scan as one comma-free, quote-closed element so
// the surrounding ", " join splits cleanly. The final element may leave a
// quote open, since only the closing bracket follows it.
func elementText(s string, last bool) string {
	for _, c := range []string{`"` + s + `"`, "'" + s + "'", s} {
		if !readsBack(c, s) {
			continue
		}
		if parts := splitTopLevel(c); len(parts) != 1 || parts[0] != c {
			continue
		}
		if !last && !closedScan(c) {
			continue
		}
		return c
	}
	return `"` + s + `"`
}

func readsBack(c, s string) bool {
	if strings.TrimSpace(c) != c {
		return false
	}
	if body, _ := splitInlineComment(c); body != c {
		return false
	}
	v := parseValue(c)
	return v.Type == ir.StringType && v.String == s
}

// closedScan reports whether scanning c leaves no quote open and bracket
// depth zero.
func closedScan(c string) bool {
	var depth int
	var quote byte
	for i := 0; i < len(c); i++ {
		ch := c[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '[':
			depth++
		case ch == ']':
			depth--
		}
	}
	return quote == 0 && depth == 0
}
