package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	TOMLFormat
	YAMLFormat
	PropertiesFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":          JSONFormat,
		"json":       JSONFormat,
		"t":          TOMLFormat,
		"toml":       TOMLFormat,
		"y":          YAMLFormat,
		"yaml":       YAMLFormat,
		"p":          PropertiesFormat,
		"properties": PropertiesFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath derives the format from a file name extension. The engine never
// sniffs content; the extension is the only source of the format tag.
func FromPath(p string) (Format, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json":
		return JSONFormat, nil
	case ".toml":
		return TOMLFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	case ".properties", ".cfg":
		return PropertiesFormat, nil
	default:
		return 0, fmt.Errorf("%w: unknown extension %q", ErrBadFormat, filepath.Ext(p))
	}
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case TOMLFormat:
		return []byte("toml"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case PropertiesFormat:
		return []byte("properties"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool       { return f == JSONFormat }
func (f Format) IsTOML() bool       { return f == TOMLFormat }
func (f Format) IsYAML() bool       { return f == YAMLFormat }
func (f Format) IsProperties() bool { return f == PropertiesFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case TOMLFormat:
		return ".toml"
	case YAMLFormat:
		return ".yaml"
	case PropertiesFormat:
		return ".properties"
	default:
		return ""
	}
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{JSONFormat, TOMLFormat, YAMLFormat, PropertiesFormat}
}
