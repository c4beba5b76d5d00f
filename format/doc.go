// Package format defines the tags for the on-disk configuration formats the
// engine understands.
//
// A Format is always derived from a file name extension, never from content:
//
//	f, err := format.FromPath("server.toml")
//
// # Related Packages
//
//   - github.com/confdoc/confdoc/codec/... - per-format parser/serializer pairs
package format
