package confdoc

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/confdoc/confdoc/format"
	"github.com/confdoc/confdoc/ir"
)

// MergePatch applies an RFC 7386 JSON merge patch to a tree, whatever format
// the tree was parsed from: the document is rendered as JSON, patched, and
// re-parsed ordered. The input tree is not modified.
func MergePatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	d, err := Stringify(doc, format.JSONFormat)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, err
	}
	res, err := Parse(out, format.JSONFormat)
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}
