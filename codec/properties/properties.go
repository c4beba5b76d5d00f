// Package properties implements the codec for Java-style .properties text.
//
// The format is line oriented: one key per line, `=` or `:` as separator,
// `#` or `!` starting a comment line. Comments are never captured into the
// document's CommentMap and never written back; this codec is the only one
// with no comment support on either side. There is no syntactic failure
// mode: a line without a separator is silently skipped.
package properties

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

// Parse builds a flat object from properties text. Keys containing dots stay
// literal keys; properties has no section or nesting concept. The returned
// CommentMap is always empty.
func Parse(d []byte) (*ir.Node, ir.CommentMap, error) {
	root := ir.NewObject()
	for _, raw := range strings.Split(string(d), "\n") {
		line := strings.TrimRight(raw, "\r")
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if t[0] == '#' || t[0] == '!' {
			continue
		}
		sep := separator(line)
		if sep < 0 {
			if debug.Parse() {
				debug.Logf("properties: skipping line without separator: %q\n", line)
			}
			continue
		}
		key := strings.TrimSpace(line[:sep])
		if key == "" {
			continue
		}
		val := strings.TrimSpace(line[sep+1:])
		root.SetField(key, inferScalar(val))
	}
	return root, ir.CommentMap{}, nil
}

// separator returns the offset of the first of '=' or ':' in line, or -1.
func separator(line string) int {
	eq := strings.IndexByte(line, '=')
	col := strings.IndexByte(line, ':')
	if eq < 0 {
		return col
	}
	if col >= 0 && col < eq {
		return col
	}
	return eq
}

func inferScalar(v string) *ir.Node {
	switch v {
	case "true":
		return ir.FromBool(true)
	case "false":
		return ir.FromBool(false)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return ir.FromFloat(f)
	}
	return ir.FromString(v)
}

// Encode writes the tree as key=value lines. Comments are intentionally not
// restored. Nested objects, which can only appear through editing, are
// flattened under dotted keys; arrays are joined with commas. Both are lossy
// extensions unreachable from Parse.
func Encode(n *ir.Node, w io.Writer) error {
	if n == nil || n.Type != ir.ObjectType {
		return nil
	}
	return encodeObject(w, n, "")
}

func encodeObject(w io.Writer, n *ir.Node, prefix string) error {
	for i, key := range n.Fields {
		v := n.Values[i]
		full := kpath.Key(prefix, key)
		if v.Type == ir.ObjectType {
			if err := encodeObject(w, v, full); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", full, valueText(v)); err != nil {
			return err
		}
	}
	return nil
}

func valueText(v *ir.Node) string {
	switch v.Type {
	case ir.NullType:
		return ""
	case ir.BoolType:
		return strconv.FormatBool(v.Bool)
	case ir.NumberType:
		return ir.FormatNumber(v.Number)
	case ir.StringType:
		return v.String
	case ir.ArrayType:
		parts := make([]string, len(v.Values))
		for i, e := range v.Values {
			parts[i] = valueText(e)
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
