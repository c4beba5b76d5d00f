// Package jsoncfg implements the codec for JSON extended with `//` line
// comments.
//
// This is the one codec with a hard failure mode. Parsing is two-tier: the
// text is cleaned of comments and trailing commas and parsed strictly; if
// that fails, the original untouched text is parsed as strict JSON,
// discarding any harvested comments. Only when both attempts fail does Parse
// return an error, and the caller is expected to fall back to unstructured
// text editing.
package jsoncfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/confdoc/confdoc/ir"
	"github.com/confdoc/confdoc/ir/kpath"
)

var ErrParse = errors.New("parse error")

var keyLineRe = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"\s*:`)

// Parse builds a tree and its comment table from JSON-with-comments text.
//
// A pre-pass over the lines harvests runs of `//` comments onto the next
// quoted-key line, keyed by the key's full path; any structural line that is
// neither a comment nor a key clears the pending run. The comment stripping
// for the main parse is string-aware and also removes trailing commas.
func Parse(d []byte) (*ir.Node, ir.CommentMap, error) {
	return parse(jsonc.ToJSON(d), d)
}

// parse decodes the cleaned text, harvesting comments from the original on
// success. The heuristic cleaning may have corrupted otherwise-valid JSON, so
// a cleaned-text failure retries on the untouched original, without comments.
func parse(cleaned, original []byte) (*ir.Node, ir.CommentMap, error) {
	node, err := decode(cleaned)
	if err == nil {
		return node, harvestComments(original), nil
	}
	node, err2 := decode(original)
	if err2 == nil {
		return node, ir.CommentMap{}, nil
	}
	return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
}

// container tracks one open object or array during the comment pre-pass.
type container struct {
	path  string
	array bool
	index int
}

func harvestComments(d []byte) ir.CommentMap {
	res := ir.CommentMap{}
	var stack []container
	var pending []string

	for _, raw := range strings.Split(string(d), "\n") {
		t := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "//") {
			pending = append(pending, strings.TrimSpace(t[2:]))
			continue
		}
		if m := keyLineRe.FindStringSubmatch(t); m != nil {
			prefix := ""
			if len(stack) > 0 {
				prefix = stack[len(stack)-1].path
			}
			p := kpath.Key(prefix, m[1])
			if len(pending) > 0 {
				res[p] = strings.Join(pending, " ")
				pending = nil
			}
			scanStructure(&stack, t[len(m[0]):], p)
			continue
		}
		if strings.ContainsAny(t, "{}[]") {
			pending = nil
		}
		scanStructure(&stack, t, "")
	}
	return res
}

// scanStructure walks the non-comment remainder of a line, outside string
// literals, and maintains the open-container stack. keyPath names the key
// whose value starts on this line, if any; a container opened while the
// enclosing container is an array takes the next element index instead.
func scanStructure(stack *[]container, s, keyPath string) {
	inStr := false
	esc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '/':
			if i+1 < len(s) && s[i+1] == '/' {
				return
			}
		case '{', '[':
			p := keyPath
			keyPath = ""
			if p == "" && len(*stack) > 0 {
				top := &(*stack)[len(*stack)-1]
				if top.array {
					p = kpath.Elem(top.path, top.index)
					top.index++
				}
			}
			*stack = append(*stack, container{path: p, array: c == '['})
		case '}', ']':
			if len(*stack) > 0 {
				*stack = (*stack)[:len(*stack)-1]
			}
		}
	}
}

// decode parses strict JSON into an ordered tree using the token stream, so
// that object key order survives.
func decode(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	n, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after document")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := ir.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("bad object key %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.SetField(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := ir.NewArray()
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case bool:
		return ir.FromBool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(f), nil
	case string:
		return ir.FromString(t), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// Encode pretty-prints the tree as strict JSON with two-space indentation
// and ordered keys. Comments are never written back.
func Encode(n *ir.Node, w io.Writer) error {
	if err := encodeValue(w, n, 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeValue(w io.Writer, n *ir.Node, depth int) error {
	ind := strings.Repeat("  ", depth)
	switch n.Type {
	case ir.NullType:
		_, err := io.WriteString(w, "null")
		return err
	case ir.BoolType:
		_, err := fmt.Fprintf(w, "%t", n.Bool)
		return err
	case ir.NumberType:
		_, err := io.WriteString(w, ir.FormatNumber(n.Number))
		return err
	case ir.StringType:
		return writeQuoted(w, n.String)
	case ir.ArrayType:
		if len(n.Values) == 0 {
			_, err := io.WriteString(w, "[]")
			return err
		}
		if _, err := io.WriteString(w, "[\n"); err != nil {
			return err
		}
		for i, e := range n.Values {
			if _, err := io.WriteString(w, ind+"  "); err != nil {
				return err
			}
			if err := encodeValue(w, e, depth+1); err != nil {
				return err
			}
			if i < len(n.Values)-1 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, ind+"]")
		return err
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			_, err := io.WriteString(w, "{}")
			return err
		}
		if _, err := io.WriteString(w, "{\n"); err != nil {
			return err
		}
		for i, key := range n.Fields {
			if _, err := io.WriteString(w, ind+"  "); err != nil {
				return err
			}
			if err := writeQuoted(w, key); err != nil {
				return err
			}
			if _, err := io.WriteString(w, ": "); err != nil {
				return err
			}
			if err := encodeValue(w, n.Values[i], depth+1); err != nil {
				return err
			}
			if i < len(n.Fields)-1 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, ind+"}")
		return err
	default:
		return fmt.Errorf("cannot encode node type %s", n.Type)
	}
}

func writeQuoted(w io.Writer, s string) error {
	d, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
