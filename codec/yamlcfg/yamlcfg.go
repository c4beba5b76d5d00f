// Package yamlcfg implements the codec for an indentation-based YAML subset.
//
// The parser is a stack of indentation frames, not a grammar: each `key:`
// line with an empty value (or a `|`/`>` block-scalar marker, whose content
// is never parsed) pushes a nested object frame, and deeper lines insert
// into the innermost frame whose indent is smaller than theirs. `- ` lines
// append to an array stored under the top frame's own key in that frame's
// parent. Anchors, aliases, and multi-document streams are out of scope, and
// there is no syntactic failure mode: some tree is always produced.
package yamlcfg

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/confdoc/confdoc/debug"
	"github.com/confdoc/confdoc/ir"
	"github.com/confdoc/confdoc/ir/kpath"
)

type frame struct {
	indent int
	parent *ir.Node // object holding key
	key    string
	obj    *ir.Node // nested object created for key
	path   string
}

// Parse builds a tree and its comment table from YAML-subset text.
//
// `#` lines accumulate without touching the frame stack and attach, joined
// with single spaces, to the dotted path of the next key defined; a blank
// line drops the accumulated comment. An inline `#` suffix is recognized
// only when the value is unquoted, and overrides the accumulated comment.
func Parse(d []byte) (*ir.Node, ir.CommentMap, error) {
	root := ir.NewObject()
	comments := ir.CommentMap{}
	stack := []frame{{indent: -1, obj: root}}
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
		indent := len(line) - len(strings.TrimLeft(line, " "))
		for len(stack) > 1 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]

		if t == "-" || strings.HasPrefix(t, "- ") {
			if top.parent == nil {
				// list item with no owning key
				if debug.Parse() {
					debug.Logf("yamlcfg: ignoring unowned list item: %q\n", line)
				}
				pending = nil
				continue
			}
			arr := top.parent.Field(top.key)
			if arr == nil || arr.Type != ir.ArrayType {
				arr = ir.NewArray()
				top.parent.SetField(top.key, arr)
			}
			arr.Append(parseScalar(strings.TrimSpace(strings.TrimPrefix(t, "-"))))
			pending = nil
			continue
		}

		ci := strings.IndexByte(t, ':')
		if ci < 0 {
			if debug.Parse() {
				debug.Logf("yamlcfg: ignoring line: %q\n", line)
			}
			pending = nil
			continue
		}
		key := strings.TrimSpace(t[:ci])
		rest := strings.TrimSpace(t[ci+1:])
		if key == "" {
			pending = nil
			continue
		}
		path := kpath.Key(top.path, key)
		inline := ""
		if rest != "" && rest[0] != '"' && rest[0] != '\'' {
			if hi := strings.IndexByte(rest, '#'); hi >= 0 {
				inline = strings.TrimSpace(rest[hi+1:])
				rest = strings.TrimSpace(rest[:hi])
			}
		}
		if rest == "" || rest == "|" || rest == ">" {
			// block-scalar content is never parsed; the marker only makes
			// the key a nested object placeholder
			child := ir.NewObject()
			top.obj.SetField(key, child)
			stack = append(stack, frame{
				indent: indent,
				parent: top.obj,
				key:    key,
				obj:    child,
				path:   path,
			})
		} else {
			top.obj.SetField(key, parseScalar(rest))
		}
		if inline != "" {
			comments[path] = inline
		} else if len(pending) > 0 {
			comments[path] = strings.Join(pending, " ")
		}
		pending = nil
	}
	return root, comments, nil
}

func parseScalar(s string) *ir.Node {
	switch s {
	case "", "null", "~":
		return ir.Null()
	case "true", "yes", "on":
		return ir.FromBool(true)
	case "false", "no", "off":
		return ir.FromBool(false)
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
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
			arr.Append(parseScalar(elt))
		}
		return arr
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return ir.FromFloat(f)
	}
	return ir.FromString(s)
}

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

// Encode writes the tree as YAML-subset text with two-space indentation.
// Ambiguous scalars are quoted so they re-parse to the same value; an empty
// nested object serializes as a bare `key:` line, which round-trips to an
// empty object. Comments are intentionally not restored.
func Encode(n *ir.Node, w io.Writer) error {
	if n == nil {
		return nil
	}
	if n.Type != ir.ObjectType {
		_, err := fmt.Fprintf(w, "%s\n", scalarText(n))
		return err
	}
	return encodeObject(w, n, 0)
}

func encodeObject(w io.Writer, n *ir.Node, indent int) error {
	pre := strings.Repeat(" ", indent)
	for i, key := range n.Fields {
		v := n.Values[i]
		switch v.Type {
		case ir.ObjectType:
			if _, err := fmt.Fprintf(w, "%s%s:\n", pre, key); err != nil {
				return err
			}
			if err := encodeObject(w, v, indent+2); err != nil {
				return err
			}
		case ir.ArrayType:
			if len(v.Values) == 0 {
				if _, err := fmt.Fprintf(w, "%s%s: []\n", pre, key); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s%s:\n", pre, key); err != nil {
				return err
			}
			if err := encodeList(w, v, indent+2); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(w, "%s%s: %s\n", pre, key, scalarText(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeList(w io.Writer, arr *ir.Node, indent int) error {
	pre := strings.Repeat(" ", indent)
	for _, e := range arr.Values {
		switch e.Type {
		case ir.ObjectType:
			if len(e.Fields) == 0 {
				if _, err := fmt.Fprintf(w, "%s- {}\n", pre); err != nil {
					return err
				}
				continue
			}
			// first line of the object shares the dash's line, the rest is
			// already indented two deeper
			var buf bytes.Buffer
			if err := encodeObject(&buf, e, indent+2); err != nil {
				return err
			}
			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			first := strings.TrimLeft(lines[0], " ")
			if _, err := fmt.Fprintf(w, "%s- %s\n", pre, first); err != nil {
				return err
			}
			for _, ln := range lines[1:] {
				if _, err := fmt.Fprintf(w, "%s\n", ln); err != nil {
					return err
				}
			}
		case ir.ArrayType:
			if _, err := fmt.Fprintf(w, "%s- %s\n", pre, inlineArray(e, true)); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(w, "%s- %s\n", pre, scalarText(e)); err != nil {
				return err
			}
		}
	}
	return nil
}

// inlineArray renders a nested array. mayOpen is true when nothing follows
// the array on its line, which lets the final element leave a quote open.
func inlineArray(arr *ir.Node, mayOpen bool) string {
	parts := make([]string, len(arr.Values))
	for i, e := range arr.Values {
		last := mayOpen && i == len(arr.Values)-1
		switch e.Type {
		case ir.ArrayType:
			parts[i] = inlineArray(e, last)
		case ir.ObjectType:
			parts[i] = "{}"
		case ir.StringType:
			parts[i] = elementText(e.String, last)
		default:
			parts[i] = scalarText(e)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// elementText picks the first representation of s that splitTopLevel reads
// back as the single element s: bare when needsQuote allows, then double
// then single quotes. A non-final element must scan quote-closed at bracket
// depth zero so the surrounding ", " join splits cleanly.
func elementText(s string, last bool) string {
	cands := []string{`"` + s + `"`, "'" + s + "'"}
	if !needsQuote(s) {
		cands = append([]string{s}, cands...)
	}
	for _, c := range cands {
		if parts := splitTopLevel(c); len(parts) != 1 || parts[0] != c {
			continue
		}
		if !last && !closedScan(c) {
			continue
		}
		if v := parseScalar(c); v.Type == ir.StringType && v.String == s {
			return c
		}
	}
	return `"` + s + `"`
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

func scalarText(v *ir.Node) string {
	switch v.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return strconv.FormatBool(v.Bool)
	case ir.NumberType:
		return ir.FormatNumber(v.Number)
	case ir.StringType:
		if needsQuote(v.String) {
			return quote(v.String)
		}
		return v.String
	default:
		return ""
	}
}

// needsQuote reports whether a string would re-parse as something other than
// itself when left bare.
func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	switch s {
	case "null", "~", "true", "false", "yes", "no", "on", "off":
		return true
	}
	if strings.ContainsAny(s, ":#,[]") {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	if s[0] == '"' || s[0] == '\'' || s[0] == '-' {
		return true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return true
	}
	return false
}

func quote(s string) string {
	if strings.Contains(s, `"`) && !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
