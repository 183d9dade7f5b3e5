// Package dsl parses the compact hierarchy notation.
//
// A file holds exactly one root node. A node is a name, an optional value
// and an optional braced list of children:
//
//	# Programming languages by paradigm
//	Languages {
//	  OOP {
//	    Java 35
//	    "C#" 25
//	    C++ 30
//	  }
//	  Functional {
//	    Haskell 15
//	    Clojure 10   // trailing comments work too
//	  }
//	}
//
// Names are bare identifiers (letters, digits and _ . + # -, starting with a
// letter or underscore) or double-quoted strings. Values on internal nodes
// are accepted but replaced by the sum of their children at layout time.
package dsl

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][-+]?\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.+#-]*`},
		{Name: "Punct", Pattern: `[{}]`},
	})

	fileParser = participle.MustBuild[file](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "HashComment", "LineComment"),
		participle.Unquote("String"),
	)
)

type file struct {
	Root *node `parser:"@@"`
}

type node struct {
	Pos      lexer.Position
	Name     string   `parser:"( @String | @Ident )"`
	Value    *float64 `parser:"@Number?"`
	Children []*node  `parser:"( '{' @@* '}' )?"`
}

// Parse reads one hierarchy from r.
func Parse(r io.Reader) (*hierarchy.Node, error) {
	f, err := fileParser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "parse hierarchy")
	}
	return f.Root.convert(), nil
}

// ParseString parses a hierarchy from a string.
func ParseString(input string) (*hierarchy.Node, error) {
	return Parse(strings.NewReader(input))
}

func (n *node) convert() *hierarchy.Node {
	out := hierarchy.New(n.Name, 0)
	if n.Value != nil {
		out.Value = *n.Value
	}
	for _, c := range n.Children {
		out.AddChild(c.convert())
	}
	return out
}

var bareName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.+#-]*$`)

// Format writes root in the notation Parse reads. Internal nodes are written
// without values.
func Format(w io.Writer, root *hierarchy.Node) error {
	var b strings.Builder
	format(&b, root, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func format(b *strings.Builder, n *hierarchy.Node, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	if bareName.MatchString(n.Name) {
		b.WriteString(n.Name)
	} else {
		b.WriteString(strconv.Quote(n.Name))
	}
	if n.IsLeaf() {
		if n.Value != 0 {
			fmt.Fprintf(b, " %s", strconv.FormatFloat(n.Value, 'g', -1, 64))
		}
		b.WriteByte('\n')
		return
	}
	b.WriteString(" {\n")
	for _, c := range n.Children {
		format(b, c, indent+1)
	}
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString("}\n")
}
