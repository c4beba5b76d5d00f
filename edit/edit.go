// Package edit provides path-addressed operations on ir.Node trees.
//
// All operations are total functions: an invalid path, a type mismatch along
// the path, or an out-of-range index returns the input tree unchanged rather
// than an error. Mutating operations are functional — they rebuild only the
// chain of ancestors along the path and share every untouched sibling with
// the input tree by reference. Comment tables are never consulted or
// modified here; a delete leaves its comment entry orphaned.
package edit

import (
	"github.com/confdoc/confdoc/debug"
	"github.com/confdoc/confdoc/ir"
	"github.com/confdoc/confdoc/ir/kpath"
)

// Get returns the node at path, or nil if the path is invalid or absent.
// The empty path addresses the root.
func Get(root *ir.Node, path string) *ir.Node {
	kp, err := kpath.Parse(path)
	if err != nil {
		return nil
	}
	n := root
	for x := kp; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			n = n.Field(*x.Field)
		case x.Index != nil:
			if n == nil || n.Type != ir.ArrayType || *x.Index >= len(n.Values) {
				return nil
			}
			n = n.Values[*x.Index]
		}
		if n == nil {
			return nil
		}
	}
	return n
}

// Set returns a new tree with the value at path replaced by v. When the
// final segment names a key absent from an existing parent object, the key
// is appended. The empty path and unreachable paths are no-ops.
func Set(root *ir.Node, path string, v *ir.Node) *ir.Node {
	kp, err := kpath.Parse(path)
	if err != nil || kp == nil {
		return root
	}
	res, ok := set(root, kp, v)
	if !ok {
		if debug.Edit() {
			debug.Logf("edit: set %q: no-op\n", path)
		}
		return root
	}
	return res
}

func set(n *ir.Node, kp *kpath.KPath, v *ir.Node) (*ir.Node, bool) {
	if kp == nil {
		return v, true
	}
	switch {
	case kp.Field != nil:
		if n == nil || n.Type != ir.ObjectType {
			return nil, false
		}
		i := n.FieldIndex(*kp.Field)
		if i < 0 {
			if kp.Next != nil {
				return nil, false
			}
			res := shallow(n)
			res.Fields = append(res.Fields, *kp.Field)
			res.Values = append(res.Values, v)
			return res, true
		}
		child, ok := set(n.Values[i], kp.Next, v)
		if !ok {
			return nil, false
		}
		res := shallow(n)
		res.Values[i] = child
		return res, true
	case kp.Index != nil:
		i := *kp.Index
		if n == nil || n.Type != ir.ArrayType || i >= len(n.Values) {
			return nil, false
		}
		child, ok := set(n.Values[i], kp.Next, v)
		if !ok {
			return nil, false
		}
		res := shallow(n)
		res.Values[i] = child
		return res, true
	}
	return nil, false
}

// Delete returns a new tree with the node at path removed. It does not purge
// the path's comment entry; that leak is accepted and bounded by document
// size. Invalid paths are no-ops.
func Delete(root *ir.Node, path string) *ir.Node {
	kp, err := kpath.Parse(path)
	if err != nil || kp == nil {
		return root
	}
	res, ok := del(root, kp)
	if !ok {
		return root
	}
	return res
}

func del(n *ir.Node, kp *kpath.KPath) (*ir.Node, bool) {
	switch {
	case kp.Field != nil:
		if n == nil || n.Type != ir.ObjectType {
			return nil, false
		}
		i := n.FieldIndex(*kp.Field)
		if i < 0 {
			return nil, false
		}
		res := shallow(n)
		if kp.Next == nil {
			res.Fields = append(res.Fields[:i:i], res.Fields[i+1:]...)
			res.Values = append(res.Values[:i:i], res.Values[i+1:]...)
			return res, true
		}
		child, ok := del(n.Values[i], kp.Next)
		if !ok {
			return nil, false
		}
		res.Values[i] = child
		return res, true
	case kp.Index != nil:
		i := *kp.Index
		if n == nil || n.Type != ir.ArrayType || i >= len(n.Values) {
			return nil, false
		}
		res := shallow(n)
		if kp.Next == nil {
			res.Values = append(res.Values[:i:i], res.Values[i+1:]...)
			return res, true
		}
		child, ok := del(n.Values[i], kp.Next)
		if !ok {
			return nil, false
		}
		res.Values[i] = child
		return res, true
	}
	return nil, false
}

// ArrayInsert returns a new tree with v inserted at index i of the array at
// path. Valid indices are 0 through the array's length inclusive; anything
// else, or a path not addressing an array, is a no-op.
func ArrayInsert(root *ir.Node, path string, i int, v *ir.Node) *ir.Node {
	return withArray(root, path, func(arr *ir.Node) (*ir.Node, bool) {
		if i < 0 || i > len(arr.Values) {
			return nil, false
		}
		res := shallow(arr)
		res.Values = append(res.Values[:i:i], append([]*ir.Node{v}, arr.Values[i:]...)...)
		return res, true
	})
}

// ArrayRemove returns a new tree with element i of the array at path
// removed. Out-of-range indices are no-ops.
func ArrayRemove(root *ir.Node, path string, i int) *ir.Node {
	return withArray(root, path, func(arr *ir.Node) (*ir.Node, bool) {
		if i < 0 || i >= len(arr.Values) {
			return nil, false
		}
		res := shallow(arr)
		res.Values = append(res.Values[:i:i], arr.Values[i+1:]...)
		return res, true
	})
}

func withArray(root *ir.Node, path string, fn func(arr *ir.Node) (*ir.Node, bool)) *ir.Node {
	kp, err := kpath.Parse(path)
	if err != nil {
		return root
	}
	res, ok := apply(root, kp, func(n *ir.Node) (*ir.Node, bool) {
		if n == nil || n.Type != ir.ArrayType {
			return nil, false
		}
		return fn(n)
	})
	if !ok {
		return root
	}
	return res
}

// apply rebuilds the ancestor chain down kp and replaces the addressed node
// with fn's result.
func apply(n *ir.Node, kp *kpath.KPath, fn func(n *ir.Node) (*ir.Node, bool)) (*ir.Node, bool) {
	if kp == nil {
		return fn(n)
	}
	switch {
	case kp.Field != nil:
		if n == nil || n.Type != ir.ObjectType {
			return nil, false
		}
		i := n.FieldIndex(*kp.Field)
		if i < 0 {
			return nil, false
		}
		child, ok := apply(n.Values[i], kp.Next, fn)
		if !ok {
			return nil, false
		}
		res := shallow(n)
		res.Values[i] = child
		return res, true
	case kp.Index != nil:
		i := *kp.Index
		if n == nil || n.Type != ir.ArrayType || i >= len(n.Values) {
			return nil, false
		}
		child, ok := apply(n.Values[i], kp.Next, fn)
		if !ok {
			return nil, false
		}
		res := shallow(n)
		res.Values[i] = child
		return res, true
	}
	return nil, false
}

// shallow copies a node with fresh child slices but the same child pointers,
// so siblings of an edited path stay shared with the input tree.
func shallow(n *ir.Node) *ir.Node {
	res := &ir.Node{
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
		res.Values = make([]*ir.Node, len(n.Values))
		copy(res.Values, n.Values)
	}
	return res
}
