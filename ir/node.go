package ir

import "strconv"

// Node is one value in a configuration document tree.
//
// A Node of ObjectType keeps its keys in Fields and the corresponding values
// at the same offsets in Values; insertion order is preserved and is
// significant for serialization. A Node of ArrayType uses Values only.
// Scalar nodes use the payload field matching their Type.
//
// Nodes hold no parent or sibling references: trees are built bottom-up and
// cannot form cycles, and subtrees may be shared freely between trees
// produced by functional edits.
type Node struct {
	Type Type

	Bool   bool
	Number float64
	String string

	Fields []string
	Values []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: NumberType, Number: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func NewArray(elts ...*Node) *Node {
	return &Node{Type: ArrayType, Values: elts}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

// Field returns the value stored under key, or nil if the node is not an
// object or the key is absent.
func (n *Node) Field(key string) *Node {
	if n == nil || n.Type != ObjectType {
		return nil
	}
	for i, f := range n.Fields {
		if f == key {
			return n.Values[i]
		}
	}
	return nil
}

// FieldIndex returns the offset of key in Fields, or -1.
func (n *Node) FieldIndex(key string) int {
	if n == nil || n.Type != ObjectType {
		return -1
	}
	for i, f := range n.Fields {
		if f == key {
			return i
		}
	}
	return -1
}

// SetField inserts or replaces the value under key. Duplicate keys are
// last-write-wins: the original insertion position is kept, only the value
// changes. The receiver must be an object.
func (n *Node) SetField(key string, v *Node) {
	if i := n.FieldIndex(key); i >= 0 {
		n.Values[i] = v
		return
	}
	n.Fields = append(n.Fields, key)
	n.Values = append(n.Values, v)
}

// Append adds an element to an array node.
func (n *Node) Append(v *Node) {
	n.Values = append(n.Values, v)
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Values)
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{
		Type:   n.Type,
		Bool:   n.Bool,
		Number: n.Number,
		String: n.String,
	}
	if n.Fields != nil {
		res.Fields = make([]string, len(n.Fields))
		copy(res.Fields, n.Fields)
	}
	if n.Values != nil {
		res.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// Default returns a same-shaped empty placeholder for example: false for
// bools, 0 for numbers, "" for strings, [] for arrays, {} for objects. It is
// used when an editor appends a new array element by cloning the shape of an
// existing sibling.
func Default(example *Node) *Node {
	if example == nil {
		return Null()
	}
	switch example.Type {
	case BoolType:
		return FromBool(false)
	case NumberType:
		return FromFloat(0)
	case StringType:
		return FromString("")
	case ArrayType:
		return NewArray()
	case ObjectType:
		return NewObject()
	default:
		return Null()
	}
}

// Visit walks the tree in depth-first order, calling f before (isPost=false)
// and after (isPost=true) each node's children. Returning false from the pre
// call skips the children.
func (n *Node) Visit(f func(n *Node, isPost bool) bool) {
	if !f(n, false) {
		return
	}
	for _, v := range n.Values {
		v.Visit(f)
	}
	f(n, true)
}

// FormatNumber renders a Number payload in its default textual form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
