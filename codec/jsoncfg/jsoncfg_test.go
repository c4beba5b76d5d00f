package jsoncfg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/confdoc/confdoc/ir"
)

func TestParseComments(t *testing.T) {
	in := `{
  // Max players
  "max": 20
}`
	values, comments, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got := values.Field("max").Number; got != 20 {
		t.Errorf("max = %v", got)
	}
	want := ir.CommentMap{"max": "Max players"}
	if diff := cmp.Diff(want, comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCommentPaths(t *testing.T) {
	in := `{
  // run of two
  // comment lines
  "server": {
    // bind port
    "port": 8080
  },
  "list": [
    {
      // first element
      "name": "a"
    },
    {
      // second element
      "name": "b"
    }
  ]
}`
	_, comments, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := ir.CommentMap{
		"server":       "run of two comment lines",
		"server.port":  "bind port",
		"list[0].name": "first element",
		"list[1].name": "second element",
	}
	if diff := cmp.Diff(want, comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStructuralLineClearsPending(t *testing.T) {
	in := `{
  "a": {
    // belongs to nothing: the brace below intervenes
  },
  "b": 1
}`
	_, comments, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 0 {
		t.Errorf("comments = %v, want none", comments)
	}
}

func TestParseTrailingCommas(t *testing.T) {
	in := `{"a": 1, "b": [1, 2,],}`
	values, _, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got := values.Field("b").Len(); got != 2 {
		t.Errorf("b has %d elements, want 2", got)
	}
}

func TestParseKeyOrder(t *testing.T) {
	in := `{"zebra": 1, "apple": 2, "mango": 3}`
	values, _, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"zebra", "apple", "mango"}
	if diff := cmp.Diff(want, values.Fields); diff != "" {
		t.Errorf("key order not preserved (-want +got):\n%s", diff)
	}
}

func TestParseSlashesInStrings(t *testing.T) {
	in := `{
  "url": "http://example.com//x",
  "text": "not // a comment",
  "esc": "quote \" and // slash"
}`
	values, comments, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got := values.Field("url").String; got != "http://example.com//x" {
		t.Errorf("url = %q", got)
	}
	if got := values.Field("esc").String; got != `quote " and // slash` {
		t.Errorf("esc = %q", got)
	}
	if len(comments) != 0 {
		t.Errorf("comments = %v, want none", comments)
	}
}

func TestParseCleanedTextFallsBackToOriginal(t *testing.T) {
	// when comment stripping mangles valid JSON, parsing retries on the
	// untouched text and drops the comments
	original := []byte(`{
  "a": 1,
  "b": "x"
}`)
	cleaned := []byte(`{ "a": 1, "b": `)
	values, comments, err := parse(cleaned, original)
	if err != nil {
		t.Fatal(err)
	}
	if got := values.Field("a").Number; got != 1 {
		t.Errorf("a = %v", got)
	}
	if got := values.Field("b").String; got != "x" {
		t.Errorf("b = %q", got)
	}
	if comments == nil || len(comments) != 0 {
		t.Errorf("comments = %v, want empty", comments)
	}
}

func TestParseFailure(t *testing.T) {
	for _, in := range []string{"{", `{"a":}`, "not json at all", `{"a": 1} extra`} {
		node, comments, err := Parse([]byte(in))
		if !errors.Is(err, ErrParse) {
			t.Errorf("Parse(%q) err = %v, want ErrParse", in, err)
		}
		if node != nil || comments != nil {
			t.Errorf("Parse(%q) = (%v, %v), want nils on error", in, node, comments)
		}
	}
}

func TestEncodeLayout(t *testing.T) {
	root := ir.NewObject()
	root.SetField("name", ir.FromString("srv"))
	root.SetField("port", ir.FromFloat(25565))
	root.SetField("tags", ir.NewArray(ir.FromString("a"), ir.FromBool(true), ir.Null()))
	root.SetField("empty", ir.NewObject())
	nested := ir.NewObject()
	nested.SetField("x", ir.FromFloat(1.5))
	root.SetField("nested", nested)

	var buf bytes.Buffer
	if err := Encode(root, &buf); err != nil {
		t.Fatal(err)
	}
	want := `{
  "name": "srv",
  "port": 25565,
  "tags": [
    "a",
    true,
    null
  ],
  "empty": {},
  "nested": {
    "x": 1.5
  }
}
`
	if buf.String() != want {
		t.Errorf("Encode = %q, want %q", buf.String(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{"a": 1, "b": {"c": [true, null, "x"]}}`,
		`// top comment
{
  "z": 1,
  "a": [1, 2, 3,],
}`,
		`{"deep": [[{"k": "v"}], []]}`,
	}
	for _, in := range inputs {
		v1, _, err := Parse([]byte(in))
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := Encode(v1, &buf); err != nil {
			t.Fatal(err)
		}
		v2, c2, err := Parse(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !ir.Equal(v1, v2) {
			t.Errorf("round trip of %q changed values:\n%s", in, cmp.Diff(v1, v2))
		}
		if len(c2) != 0 {
			t.Errorf("serialized output must re-parse with no comments, got %v", c2)
		}
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		`{}`,
		`{"a": 1}`,
		"// c\n{\n  \"k\": [1, {\"x\": null},]\n}",
		`{"s": "a // b"}`,
		`{"a": [[[1]]]}`,
		`{"a"`,
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		v1, _, err := Parse(data)
		if err != nil {
			return
		}
		var buf bytes.Buffer
		if err := Encode(v1, &buf); err != nil {
			t.Fatalf("encode failed after successful parse: %v", err)
		}
		v2, _, err := Parse(buf.Bytes())
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", buf.Bytes(), err)
		}
		if !ir.Equal(v1, v2) {
			t.Errorf("encode/parse cycle changed values:\n%s", cmp.Diff(v1, v2))
		}
	})
}
