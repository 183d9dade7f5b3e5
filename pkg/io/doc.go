// Package io reads and writes hierarchies in the formats sunburst accepts.
//
// # Formats
//
// Three encodings describe the same tree:
//
//   - JSON: the d3-style nested object, also produced by [WriteJSON]
//   - TOML: the same shape as tables, exchanged via [ReadTOML] and [WriteTOML]
//   - DSL: the compact notation from pkg/dsl, in .sb or .sunburst files
//
// # JSON Format
//
//	{
//	  "name": "Languages",
//	  "children": [
//	    {"name": "OOP", "children": [
//	      {"name": "Java", "value": 35},
//	      {"name": "C#", "value": 25}
//	    ]},
//	    {"name": "Haskell", "value": 15}
//	  ]
//	}
//
// Only leaf values matter: internal values are replaced by the sum of their
// children when the layout is built.
//
// # TOML Format
//
//	name = "Languages"
//
//	[[children]]
//	name = "OOP"
//
//	  [[children.children]]
//	  name = "Java"
//	  value = 35
//
// # Import
//
// [Import] picks the decoder from the file extension (see [DetectFormat]);
// [Read] takes an explicit [Format] for data that does not come from a file:
//
//	root, err := io.Import("languages.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every decoder validates the result with hierarchy.Node.Validate, so a
// successful read always yields a tree the layout accepts. Decode errors
// carry the INVALID_FORMAT code, validation errors INVALID_HIERARCHY.
//
// # Export
//
// [Export] writes a tree to a file in the format matching its extension.
// Export followed by Import reproduces names, leaf values and child order.
package io
