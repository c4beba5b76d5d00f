package main

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/confdoc/confdoc"
	"github.com/confdoc/confdoc/format"
	"github.com/confdoc/confdoc/ir"
)

// fileFormat resolves the format of path, honoring the --format override.
func fileFormat(path, override string) (format.Format, error) {
	if override != "" {
		return format.ParseFormat(override)
	}
	return format.FromPath(path)
}

// loadDoc reads a whole file and parses it. Reads and writes are whole-file:
// the engine never sees partial content.
func loadDoc(path, override string) (*confdoc.Document, format.Format, error) {
	f, err := fileFormat(path, override)
	if err != nil {
		return nil, 0, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	doc, err := confdoc.Parse(content, f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return doc, f, nil
}

// writeDoc serializes values and atomically overwrites path with the result.
func writeDoc(path string, values *ir.Node, f format.Format) error {
	out, err := confdoc.Stringify(values, f)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// scalarArg turns a CLI argument into a node the way the permissive codecs
// infer types: bare true/false become bools, finite numeric tokens become
// numbers, everything else stays a string.
func scalarArg(v string) *ir.Node {
	switch v {
	case "true":
		return ir.FromBool(true)
	case "false":
		return ir.FromBool(false)
	case "null":
		return ir.Null()
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return ir.FromFloat(f)
	}
	return ir.FromString(v)
}
