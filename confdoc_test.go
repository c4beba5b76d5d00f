package confdoc

import (
	"errors"
	"strings"
	"testing"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/confdoc/confdoc/edit"
	"github.com/confdoc/confdoc/format"
	"github.com/confdoc/confdoc/ir"
)

func TestParseDispatch(t *testing.T) {
	tests := []struct {
		f  format.Format
		in string
	}{
		{format.JSONFormat, "{\n  // bind port\n  \"port\": 8080\n}"},
		{format.TOMLFormat, "# bind port\nport = 8080\n"},
		{format.YAMLFormat, "# bind port\nport: 8080\n"},
		{format.PropertiesFormat, "port=8080\n"},
	}
	for _, tt := range tests {
		doc, err := Parse([]byte(tt.in), tt.f)
		if err != nil {
			t.Fatalf("%v: %v", tt.f, err)
		}
		if got := doc.Values.Field("port"); got == nil || got.Number != 8080 {
			t.Errorf("%v: port = %v", tt.f, got)
		}
		if tt.f == format.PropertiesFormat {
			if len(doc.Comments) != 0 {
				t.Errorf("properties must never capture comments, got %v", doc.Comments)
			}
		} else if doc.Comments["port"] != "bind port" {
			t.Errorf("%v: comments = %v", tt.f, doc.Comments)
		}
	}
}

func TestParseBadFormat(t *testing.T) {
	if _, err := Parse([]byte("x"), format.Format(99)); !errors.Is(err, ErrBadFormat) {
		t.Errorf("err = %v, want ErrBadFormat", err)
	}
	if _, err := Stringify(ir.NewObject(), format.Format(99)); !errors.Is(err, ErrBadFormat) {
		t.Errorf("err = %v, want ErrBadFormat", err)
	}
}

func TestParseFailureReturnsNilDocument(t *testing.T) {
	doc, err := Parse([]byte(`{"broken":`), format.JSONFormat)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	if doc != nil {
		t.Errorf("doc = %v, want nil so callers fall back to plain text", doc)
	}
}

func TestConvertAcrossFormats(t *testing.T) {
	// tags precedes server: tomlcfg emits root scalars and arrays before
	// section blocks, and object equality is order sensitive
	in := `{"tags": ["a", "b"], "server": {"host": "localhost", "port": 8080}}`
	doc, err := Parse([]byte(in), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	// properties flattens and is excluded: its parse cannot rebuild nesting
	for _, f := range []format.Format{format.TOMLFormat, format.YAMLFormat} {
		out, err := Stringify(doc.Values, f)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Parse(out, f)
		if err != nil {
			t.Fatalf("%v: %v", f, err)
		}
		if !ir.Equal(doc.Values, back.Values) {
			t.Errorf("%v conversion changed values:\nout:\n%s", f, out)
		}
	}
}

func TestCommentsNotRestored(t *testing.T) {
	tests := []struct {
		f  format.Format
		in string
	}{
		{format.JSONFormat, "{\n  // gone\n  \"k\": 1\n}"},
		{format.TOMLFormat, "# gone\nk = 1\n"},
		{format.YAMLFormat, "# gone\nk: 1\n"},
	}
	for _, tt := range tests {
		doc, err := Parse([]byte(tt.in), tt.f)
		if err != nil {
			t.Fatal(err)
		}
		out, err := Stringify(doc.Values, tt.f)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(out), "gone") {
			t.Errorf("%v: comment written back:\n%s", tt.f, out)
		}
	}
}

func TestMergePatch(t *testing.T) {
	doc, err := Parse([]byte(`{"a": 1, "b": {"c": 2, "d": 3}}`), format.JSONFormat)
	if err != nil {
		t.Fatal(err)
	}
	got, err := MergePatch(doc.Values, []byte(`{"b": {"c": 20, "d": null}, "e": "new"}`))
	if err != nil {
		t.Fatal(err)
	}
	if v := edit.Get(got, "a"); v == nil || v.Number != 1 {
		t.Errorf("a = %v, want untouched 1", v)
	}
	if v := edit.Get(got, "b.c"); v == nil || v.Number != 20 {
		t.Errorf("b.c = %v, want 20", v)
	}
	if v := edit.Get(got, "b.d"); v != nil {
		t.Errorf("b.d = %v, want removed by null", v)
	}
	if v := edit.Get(got, "e"); v == nil || v.String != "new" {
		t.Errorf("e = %v, want \"new\"", v)
	}
	// the input tree stays untouched
	if v := edit.Get(doc.Values, "b.c"); v.Number != 2 {
		t.Errorf("input tree modified: b.c = %v", v.Number)
	}
}

func TestMergePatchBadPatch(t *testing.T) {
	if _, err := MergePatch(ir.NewObject(), []byte("{")); err == nil {
		t.Error("want error for malformed patch")
	}
}

func TestDiff(t *testing.T) {
	a := "one\ntwo\nthree\n"
	b := "one\nTWO\nthree\n"
	var del, ins []string
	for _, d := range Diff(a, b) {
		switch d.Type {
		case diffpatch.DiffDelete:
			del = append(del, d.Text)
		case diffpatch.DiffInsert:
			ins = append(ins, d.Text)
		}
	}
	if len(del) != 1 || del[0] != "two\n" {
		t.Errorf("deletions = %q, want [\"two\\n\"]", del)
	}
	if len(ins) != 1 || ins[0] != "TWO\n" {
		t.Errorf("insertions = %q, want [\"TWO\\n\"]", ins)
	}
}

func TestDiffEqual(t *testing.T) {
	for _, d := range Diff("same\n", "same\n") {
		if d.Type != diffpatch.DiffEqual {
			t.Errorf("unexpected %v chunk: %q", d.Type, d.Text)
		}
	}
}
