package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/dsl"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Format identifies a hierarchy encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatDSL  Format = "dsl"
)

// Formats lists the accepted encodings.
var Formats = []Format{FormatJSON, FormatTOML, FormatDSL}

// ParseFormat converts a user-supplied name ("json", "toml", "dsl") to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	case FormatDSL, "sb", "sunburst":
		return FormatDSL, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q (want json, toml or dsl)", s)
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".sb", ".sunburst":
		return FormatDSL, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer input format from extension %q", ext)
	}
}

// ReadJSON decodes a JSON hierarchy from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*hierarchy.Node, error) {
	var root hierarchy.Node
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return validated(&root)
}

// ReadTOML decodes a TOML hierarchy from r.
func ReadTOML(r io.Reader) (*hierarchy.Node, error) {
	var root hierarchy.Node
	md, err := toml.NewDecoder(r).Decode(&root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "decode toml: unknown key %q", undecoded[0].String())
	}
	return validated(&root)
}

// ReadDSL parses the compact notation from r.
func ReadDSL(r io.Reader) (*hierarchy.Node, error) {
	root, err := dsl.Parse(r)
	if err != nil {
		return nil, err
	}
	return validated(root)
}

// Read decodes r using the given format.
func Read(r io.Reader, format Format) (*hierarchy.Node, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatDSL:
		return ReadDSL(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", format)
}

// ReadBytes is Read over an in-memory document.
func ReadBytes(data []byte, format Format) (*hierarchy.Node, error) {
	return Read(bytes.NewReader(data), format)
}

// Import reads the file at path, choosing the decoder from its extension.
func Import(path string) (*hierarchy.Node, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

func validated(root *hierarchy.Node) (*hierarchy.Node, error) {
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return root, nil
}
