package confdoc

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff computes a line-level diff between two serialized documents.
func Diff(a, b string) []diffpatch.Diff {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}
