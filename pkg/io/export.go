package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/dsl"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// WriteJSON encodes root as indented JSON. The output can be re-imported
// with [ReadJSON].
func WriteJSON(root *hierarchy.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteTOML encodes root as TOML.
func WriteTOML(root *hierarchy.Node, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(root); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
	}
	return nil
}

// Write encodes root using the given format.
func Write(root *hierarchy.Node, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(root, w)
	case FormatTOML:
		return WriteTOML(root, w)
	case FormatDSL:
		return dsl.Format(w, root)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", format)
}

// Export writes root to path in the format matching the extension.
func Export(root *hierarchy.Node, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := Write(root, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
