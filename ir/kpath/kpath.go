package kpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrPath = errors.New("bad key path")

// KPath is one segment of a parsed key path, linked to the next. Exactly one
// of Field and Index is set.
type KPath struct {
	Field *string
	Index *int
	Next  *KPath
}

// Parse parses a key path such as "section.sub.list[2].name". The empty
// string is the root path and parses to nil.
func Parse(p string) (*KPath, error) {
	if p == "" {
		return nil, nil
	}
	var head, tail *KPath
	add := func(seg *KPath) {
		if head == nil {
			head = seg
			tail = seg
			return
		}
		tail.Next = seg
		tail = seg
	}
	i := 0
	expectField := true
	for i < len(p) {
		switch {
		case p[i] == '[':
			j := strings.IndexByte(p[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("%w: unterminated index in %q", ErrPath, p)
			}
			idx, err := strconv.Atoi(p[i+1 : i+j])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrPath, p[i+1:i+j], p)
			}
			add(&KPath{Index: &idx})
			i += j + 1
			expectField = false
		case p[i] == '.':
			if expectField {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrPath, p)
			}
			i++
			expectField = true
		default:
			j := i
			for j < len(p) && p[j] != '.' && p[j] != '[' {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrPath, p)
			}
			f := p[i:j]
			add(&KPath{Field: &f})
			i = j
			expectField = false
		}
	}
	if expectField {
		return nil, fmt.Errorf("%w: trailing dot in %q", ErrPath, p)
	}
	return head, nil
}

// String renders the path back to its textual form.
func (p *KPath) String() string {
	var b strings.Builder
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(*x.Field)
		case x.Index != nil:
			fmt.Fprintf(&b, "[%d]", *x.Index)
		}
	}
	return b.String()
}

// Key appends an object key segment to a path prefix.
func Key(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

// Elem appends an array index segment to a path prefix.
func Elem(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
