package agf

import (
	"fmt"
	"io"
	"strings"
)

// Node is a node of an AGF syntax tree. The set of node types is closed:
// *Word, *Sequence, *OrGroup, *OptionalGroup, *EntityRef, and *Range.
type Node interface {
	fmt.Stringer
	agfNode()
}

// Word is a literal word. Text is lower-cased.
type Word struct {
	Text string
}

// Sequence matches its children one after another.
type Sequence struct {
	Children []Node
}

// OrGroup matches exactly one of its alternatives.
type OrGroup struct {
	Alternatives []Node
}

// OptionalGroup matches one of its alternatives or nothing.
type OptionalGroup struct {
	Alternatives []Node
}

// EntityRef refers to an entity registered in an EntityRegistry. Entity is
// the registry's own value, so two references to the same name share it.
type EntityRef struct {
	Name   string
	Entity *Entity
}

// Range is a closed integer interval [Min, Max]. Only values v where
// (v - Min) is a multiple of Step belong to the range.
//
// Slot is the 1-based position of the range among the ranges of a grammar.
type Range struct {
	Min  int
	Max  int
	Step int
	Slot int
}

func (*Word) agfNode()          {}
func (*Sequence) agfNode()      {}
func (*OrGroup) agfNode()       {}
func (*OptionalGroup) agfNode() {}
func (*EntityRef) agfNode()     {}
func (*Range) agfNode()         {}

func (n *Word) String() string {
	return n.Text
}

func (n *Sequence) String() string {
	return joinNodes(n.Children, " ")
}

func (n *OrGroup) String() string {
	return "(" + joinNodes(n.Alternatives, "|") + ")"
}

func (n *OptionalGroup) String() string {
	return "[" + joinNodes(n.Alternatives, "|") + "]"
}

func (n *EntityRef) String() string {
	return "{" + n.Name + "}"
}

func (n *Range) String() string {
	return fmt.Sprintf("$(%v,%v,%v)", n.Min, n.Max, n.Step)
}

// Contains reports whether v belongs to the range.
func (n *Range) Contains(v int) bool {
	if v < n.Min || v > n.Max {
		return false
	}
	return (v-n.Min)%n.Step == 0
}

// Key returns the name a bare range binds its value under.
func (n *Range) Key() string {
	return fmt.Sprintf("$%v", n.Slot)
}

func joinNodes(nodes []Node, sep string) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(n.String())
	}
	return b.String()
}

// Words returns the literal words of a tree in the order they appear.
// Words inside referenced entities are not included.
func Words(n Node) []string {
	var words []string
	Walk(n, func(n Node) bool {
		if w, ok := n.(*Word); ok {
			words = append(words, w.Text)
		}
		return true
	})
	return words
}

// Walk visits n and its descendants in depth-first order. When f returns
// false, the children of the node are skipped. Walk does not descend into
// the patterns of referenced entities.
func Walk(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range children(n) {
		Walk(c, f)
	}
}

func children(n Node) []Node {
	switch n := n.(type) {
	case *Sequence:
		return n.Children
	case *OrGroup:
		return n.Alternatives
	case *OptionalGroup:
		return n.Alternatives
	}
	return nil
}

func PrintTree(w io.Writer, n Node) {
	printTree(w, n, "", "")
}

func printTree(w io.Writer, n Node, ruledLine string, childRuledLinePrefix string) {
	if n == nil {
		return
	}

	switch n := n.(type) {
	case *Word:
		fmt.Fprintf(w, "%vword %#v\n", ruledLine, n.Text)
	case *Sequence:
		fmt.Fprintf(w, "%vsequence\n", ruledLine)
	case *OrGroup:
		fmt.Fprintf(w, "%vor\n", ruledLine)
	case *OptionalGroup:
		fmt.Fprintf(w, "%voptional\n", ruledLine)
	case *EntityRef:
		fmt.Fprintf(w, "%ventity %v (%v)\n", ruledLine, n.Name, n.Entity.Kind)
	case *Range:
		fmt.Fprintf(w, "%vrange %v %v\n", ruledLine, n.Key(), n)
	}

	cs := children(n)
	num := len(cs)
	for i, child := range cs {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
