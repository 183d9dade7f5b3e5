package hierarchy

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// languages builds the tree used across tests:
//
//	root
//	├── Functional
//	│   ├── Haskell 3
//	│   └── Lisp
//	│       ├── Clojure 2
//	│       └── Scheme 1
//	└── Imperative
//	    ├── C 4
//	    └── Go 6
func languages() *Node {
	root := New("root", 0)
	fn := root.AddChild(New("Functional", 0))
	fn.AddChild(New("Haskell", 3))
	lisp := fn.AddChild(New("Lisp", 0))
	lisp.AddChild(New("Clojure", 2))
	lisp.AddChild(New("Scheme", 1))
	imp := root.AddChild(New("Imperative", 0))
	imp.AddChild(New("C", 4))
	imp.AddChild(New("Go", 6))
	return root
}

func TestSum(t *testing.T) {
	root := languages()
	if got := root.Sum(); got != 16 {
		t.Fatalf("Sum() = %v, want 16", got)
	}

	tests := []struct {
		path []string
		want float64
	}{
		{[]string{"Functional"}, 6},
		{[]string{"Functional", "Lisp"}, 3},
		{[]string{"Imperative"}, 10},
		{[]string{"Imperative", "Go"}, 6},
	}
	for _, tt := range tests {
		n, ok := root.Find(tt.path...)
		if !ok {
			t.Fatalf("Find(%v) not found", tt.path)
		}
		if n.Value != tt.want {
			t.Errorf("%v value = %v, want %v", tt.path, n.Value, tt.want)
		}
	}
}

func TestSumOverridesInternalValue(t *testing.T) {
	root := New("root", 100)
	root.AddChild(New("a", 1))
	if got := root.Sum(); got != 1 {
		t.Errorf("Sum() = %v, want 1", got)
	}
}

func TestCounts(t *testing.T) {
	root := languages()
	if got := root.Count(); got != 9 {
		t.Errorf("Count() = %d, want 9", got)
	}
	if got := root.LeafCount(); got != 5 {
		t.Errorf("LeafCount() = %d, want 5", got)
	}
	var names []string
	for _, l := range root.Leaves() {
		names = append(names, l.Name)
	}
	if want := []string{"Haskell", "Clojure", "Scheme", "C", "Go"}; !slices.Equal(names, want) {
		t.Errorf("Leaves() = %v, want %v", names, want)
	}
	if got := New("solo", 1).LeafCount(); got != 1 {
		t.Errorf("single node LeafCount() = %d, want 1", got)
	}
}

func TestAnnotate(t *testing.T) {
	root := languages()
	root.Annotate()

	if root.Depth != 0 || root.Height != 3 {
		t.Errorf("root depth/height = %d/%d, want 0/3", root.Depth, root.Height)
	}
	scheme, _ := root.Find("Functional", "Lisp", "Scheme")
	if scheme.Depth != 3 || scheme.Height != 0 {
		t.Errorf("Scheme depth/height = %d/%d, want 3/0", scheme.Depth, scheme.Height)
	}
	imp, _ := root.Find("Imperative")
	if imp.Depth != 1 || imp.Height != 1 {
		t.Errorf("Imperative depth/height = %d/%d, want 1/1", imp.Depth, imp.Height)
	}
	if got := root.MaxDepth(); got != 3 {
		t.Errorf("MaxDepth() = %d, want 3", got)
	}
}

func TestSortByValue(t *testing.T) {
	root := languages()
	root.Sum()
	root.SortByValue()

	var order []string
	for _, c := range root.Children {
		order = append(order, c.Name)
	}
	if want := []string{"Imperative", "Functional"}; !slices.Equal(order, want) {
		t.Errorf("top-level order = %v, want %v", order, want)
	}
	imp, _ := root.Find("Imperative")
	if imp.Children[0].Name != "Go" {
		t.Errorf("first Imperative child = %s, want Go", imp.Children[0].Name)
	}

	ties := New("root", 0)
	ties.AddChild(New("first", 1))
	ties.AddChild(New("second", 1))
	ties.SortByValue()
	if ties.Children[0].Name != "first" {
		t.Error("SortByValue() reordered equal values")
	}
}

func TestAssignColors(t *testing.T) {
	root := languages()
	root.AssignColors()

	clojure, _ := root.Find("Functional", "Lisp", "Clojure")
	if clojure.ColorIndex != 0 {
		t.Errorf("Clojure ColorIndex = %d, want 0", clojure.ColorIndex)
	}
	goNode, _ := root.Find("Imperative", "Go")
	if goNode.ColorIndex != 1 {
		t.Errorf("Go ColorIndex = %d, want 1", goNode.ColorIndex)
	}
}

func TestWalk(t *testing.T) {
	root := languages()
	var paths []string
	root.Walk(func(path []string, n *Node) bool {
		paths = append(paths, strings.Join(path, "/"))
		return n.Name != "Lisp"
	})
	want := []string{"", "Functional", "Functional/Haskell", "Functional/Lisp", "Imperative", "Imperative/C", "Imperative/Go"}
	if !slices.Equal(paths, want) {
		t.Errorf("Walk paths = %v, want %v", paths, want)
	}
}

func TestFind(t *testing.T) {
	root := languages()
	if n, ok := root.Find(); !ok || n != root {
		t.Error("Find() should return the root")
	}
	if _, ok := root.Find("Functional", "Missing"); ok {
		t.Error("Find(missing) = ok, want not found")
	}
}

func TestClone(t *testing.T) {
	root := languages()
	c := root.Clone()
	c.Sum()
	c.Children[0].Name = "changed"

	if root.Value != 0 {
		t.Errorf("original root value = %v, want 0", root.Value)
	}
	if root.Children[0].Name != "Functional" {
		t.Errorf("original child renamed to %s", root.Children[0].Name)
	}
	if c.Count() != root.Count() {
		t.Errorf("clone Count() = %d, want %d", c.Count(), root.Count())
	}
}

func TestValidate(t *testing.T) {
	deep := New("root", 0)
	cur := deep
	for i := 0; i <= MaxTreeDepth; i++ {
		cur = cur.AddChild(New("n", 0))
	}
	cur.Value = 1

	tests := []struct {
		name    string
		root    *Node
		wantErr bool
	}{
		{"valid", languages(), false},
		{"single leaf", New("only", 0), false},
		{"nil", nil, true},
		{"empty name", func() *Node { r := New("root", 0); r.AddChild(New("", 1)); return r }(), true},
		{"negative leaf", func() *Node { r := New("root", 0); r.AddChild(New("a", -1)); return r }(), true},
		{"nan leaf", func() *Node { r := New("root", 0); r.AddChild(New("a", math.NaN())); return r }(), true},
		{"duplicate siblings", func() *Node { r := New("root", 0); r.AddChild(New("a", 1)); r.AddChild(New("a", 2)); return r }(), true},
		{"nil child", &Node{Name: "root", Children: []*Node{nil}}, true},
		{"too deep", deep, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.root.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidHierarchy) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidHierarchy)
			}
		})
	}
}
