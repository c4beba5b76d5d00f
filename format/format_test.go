package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", JSONFormat},
		{"j", JSONFormat},
		{"toml", TOMLFormat},
		{"t", TOMLFormat},
		{"yaml", YAMLFormat},
		{"y", YAMLFormat},
		{"properties", PropertiesFormat},
		{"p", PropertiesFormat},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "ini", "JSON", "yml"} {
		if _, err := ParseFormat(bad); !errors.Is(err, ErrBadFormat) {
			t.Errorf("ParseFormat(%q) err = %v, want ErrBadFormat", bad, err)
		}
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"server.json", JSONFormat},
		{"/etc/app/Config.TOML", TOMLFormat},
		{"deploy.yaml", YAMLFormat},
		{"deploy.yml", YAMLFormat},
		{"app.properties", PropertiesFormat},
		{"legacy.cfg", PropertiesFormat},
	}
	for _, tt := range tests {
		got, err := FromPath(tt.in)
		if err != nil {
			t.Fatalf("FromPath(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("FromPath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"noext", "a.ini", "a.json5"} {
		if _, err := FromPath(bad); !errors.Is(err, ErrBadFormat) {
			t.Errorf("FromPath(%q) err = %v, want ErrBadFormat", bad, err)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if g != f {
			t.Errorf("round trip of %v gave %v", f, g)
		}
		if f.String() != string(d) {
			t.Errorf("String() = %q, MarshalText = %q", f.String(), d)
		}
	}
}

func TestSuffix(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := FromPath("x" + f.Suffix())
		if err != nil {
			t.Fatalf("FromPath on own suffix %q: %v", f.Suffix(), err)
		}
		if got != f {
			t.Errorf("Suffix/FromPath disagree for %v", f)
		}
	}
}
