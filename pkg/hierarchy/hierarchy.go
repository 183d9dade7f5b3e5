// Package hierarchy provides the weighted tree that sunburst charts are built
// from.
//
// A tree is a set of [Node] values linked through Children. Leaves carry
// their own value; after [Node.Sum] every internal node carries the sum of
// its children. [Node.Annotate] records each node's depth (root = 0) and
// height (leaf = 0), which the layout uses to size its rings.
//
// Trees are plain data: they are decoded from JSON, TOML or the node DSL (see
// pkg/io and pkg/dsl), mutated in place by Sum, SortByValue and AssignColors,
// and copied with Clone when the caller's tree must stay untouched.
package hierarchy

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// MaxTreeDepth bounds the nesting accepted by Validate.
const MaxTreeDepth = 64

// Node is one element of a hierarchy.
type Node struct {
	Name     string  `json:"name" toml:"name"`
	Value    float64 `json:"value,omitempty" toml:"value,omitempty"`
	Children []*Node `json:"children,omitempty" toml:"children,omitempty"`

	// ColorIndex is the palette slot, inherited from the top-level ancestor.
	ColorIndex int `json:"-" toml:"-"`
	// Depth is the distance from the root, set by Annotate.
	Depth int `json:"-" toml:"-"`
	// Height is the distance to the deepest leaf below, set by Annotate.
	Height int `json:"-" toml:"-"`
}

// New returns a node with the given name and value.
func New(name string, value float64) *Node {
	return &Node{Name: name, Value: value}
}

// AddChild appends c to n's children and returns c.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// EachBefore calls fn for n and then every descendant, parents first.
func (n *Node) EachBefore(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.EachBefore(fn)
	}
}

// EachAfter calls fn for every descendant of n and then n, children first.
func (n *Node) EachAfter(fn func(*Node)) {
	for _, c := range n.Children {
		c.EachAfter(fn)
	}
	fn(n)
}

// Walk visits n and its descendants in pre-order. path holds the names from
// the root's children down to the visited node (empty for the root itself).
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(path []string, node *Node) bool) {
	n.walk(nil, fn)
}

func (n *Node) walk(path []string, fn func([]string, *Node) bool) {
	if !fn(path, n) {
		return
	}
	for _, c := range n.Children {
		c.walk(append(path[:len(path):len(path)], c.Name), fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.EachBefore(func(*Node) { total++ })
	return total
}

// LeafCount returns the number of leaves below n (n itself if it is a leaf).
func (n *Node) LeafCount() int {
	total := 0
	n.EachBefore(func(c *Node) {
		if c.IsLeaf() {
			total++
		}
	})
	return total
}

// Leaves returns the leaves below n in pre-order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.EachBefore(func(c *Node) {
		if c.IsLeaf() {
			out = append(out, c)
		}
	})
	return out
}

// Sum replaces the value of every internal node with the sum of its
// children's values and returns the root total.
func (n *Node) Sum() float64 {
	n.EachAfter(func(c *Node) {
		if c.IsLeaf() {
			return
		}
		var s float64
		for _, ch := range c.Children {
			s += ch.Value
		}
		c.Value = s
	})
	return n.Value
}

// Annotate sets Depth and Height on every node, treating n as the root.
func (n *Node) Annotate() {
	n.annotate(0)
}

func (n *Node) annotate(depth int) int {
	n.Depth = depth
	n.Height = 0
	for _, c := range n.Children {
		n.Height = max(n.Height, c.annotate(depth+1)+1)
	}
	return n.Height
}

// MaxDepth returns the depth of the deepest node below n, relative to n.
func (n *Node) MaxDepth() int {
	d := 0
	for _, c := range n.Children {
		d = max(d, c.MaxDepth()+1)
	}
	return d
}

// SortByValue orders every node's children by descending value. Ties keep
// their original order.
func (n *Node) SortByValue() {
	n.EachBefore(func(c *Node) {
		slices.SortStableFunc(c.Children, func(a, b *Node) int {
			return cmp.Compare(b.Value, a.Value)
		})
	})
}

// AssignColors gives each top-level child its index as ColorIndex and
// propagates it to all of that child's descendants.
func (n *Node) AssignColors() {
	n.ColorIndex = 0
	for i, c := range n.Children {
		c.EachBefore(func(d *Node) { d.ColorIndex = i })
	}
}

// Find returns the descendant reached by following names from n.
// Find() with no names returns n.
func (n *Node) Find(names ...string) (*Node, bool) {
	cur := n
	for _, name := range names {
		next := slices.IndexFunc(cur.Children, func(c *Node) bool { return c.Name == name })
		if next < 0 {
			return nil, false
		}
		cur = cur.Children[next]
	}
	return cur, true
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	c := *n
	c.Children = nil
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return &c
}

// Validate checks that every node has a usable name unique among its
// siblings and every leaf a finite, non-negative value.
func (n *Node) Validate() error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidHierarchy, "hierarchy is empty")
	}
	return n.validate(nil, 0)
}

func (n *Node) validate(path []string, depth int) error {
	if depth > MaxTreeDepth {
		return errors.New(errors.ErrCodeInvalidHierarchy, "hierarchy deeper than %d levels", MaxTreeDepth)
	}
	if err := errors.ValidateLabel(n.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "node %s", pathString(path))
	}
	if n.IsLeaf() {
		if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) || n.Value < 0 {
			return errors.New(errors.ErrCodeInvalidHierarchy, "node %s has invalid value %v", pathString(append(path, n.Name)), n.Value)
		}
		return nil
	}
	path = append(path, n.Name)
	seen := make(map[string]struct{}, len(n.Children))
	for _, c := range n.Children {
		if c == nil {
			return errors.New(errors.ErrCodeInvalidHierarchy, "node %s has a nil child", pathString(path))
		}
		if _, dup := seen[c.Name]; dup {
			return errors.New(errors.ErrCodeInvalidHierarchy, "node %s has two children named %q", pathString(path), c.Name)
		}
		seen[c.Name] = struct{}{}
		if err := c.validate(path, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	return strings.Join(path, "/")
}
