package confdoc

import (
	"bytes"
	"fmt"

	"github.com/confdoc/confdoc/codec/jsoncfg"
	"github.com/confdoc/confdoc/codec/properties"
	"github.com/confdoc/confdoc/codec/tomlcfg"
	"github.com/confdoc/confdoc/codec/yamlcfg"
	"github.com/confdoc/confdoc/format"
	"github.com/confdoc/confdoc/ir"
)

// ErrParse is returned by Parse when a document cannot be parsed. Only the
// JSON codec can fail; the other three are permissive and always produce a
// tree.
var ErrParse = jsoncfg.ErrParse

// ErrBadFormat is returned when the format tag is not one of the four
// supported formats.
var ErrBadFormat = format.ErrBadFormat

// Document is a parsed configuration file: the value tree and the comment
// side table keyed by the paths that existed at parse time. The pair is
// rebuilt fresh on every parse and discarded after Stringify.
type Document struct {
	Values   *ir.Node
	Comments ir.CommentMap
}

// Parse parses raw configuration text in the given format.
//
// A nil Document with a non-nil error means the document is unsupported for
// structured editing and the caller must fall back to plain-text handling,
// never crash or present an empty structured view.
func Parse(content []byte, f format.Format) (*Document, error) {
	var (
		values   *ir.Node
		comments ir.CommentMap
		err      error
	)
	switch f {
	case format.JSONFormat:
		values, comments, err = jsoncfg.Parse(content)
	case format.TOMLFormat:
		values, comments, err = tomlcfg.Parse(content)
	case format.YAMLFormat:
		values, comments, err = yamlcfg.Parse(content)
	case format.PropertiesFormat:
		values, comments, err = properties.Parse(content)
	default:
		return nil, fmt.Errorf("%w: format tag %d", ErrBadFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return &Document{Values: values, Comments: comments}, nil
}

// Stringify serializes a (possibly edited) tree back into text of the given
// format. Comments are read-only metadata and are never written back by any
// codec.
func Stringify(values *ir.Node, f format.Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case format.JSONFormat:
		err = jsoncfg.Encode(values, &buf)
	case format.TOMLFormat:
		err = tomlcfg.Encode(values, &buf)
	case format.YAMLFormat:
		err = yamlcfg.Encode(values, &buf)
	case format.PropertiesFormat:
		err = properties.Encode(values, &buf)
	default:
		return nil, fmt.Errorf("%w: format tag %d", ErrBadFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
