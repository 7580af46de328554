// Package jsgf renders intents into a JSGF grammar for the offline speech
// recognizer.
package jsgf

import (
	"fmt"
	"strings"

	"github.com/AmyAssist/Amy-sub000/agf"
	"github.com/AmyAssist/Amy-sub000/intent"
	"github.com/AmyAssist/Amy-sub000/tokenizer"
)

const header = "#JSGF V1.0;"

// NumberRule is the rule every entity and range is rendered as.
const NumberRule = "<number>"

// Grammar holds everything a grammar file consists of besides the intents.
type Grammar struct {
	Name     string
	Wakeup   []string
	Sleep    []string
	Shutdown []string

	// NumberWords is the vocabulary of the <number> rule. When it is empty,
	// the words of tokenizer.English are used.
	NumberWords []string
}

// Compile renders a grammar file. Intents are rendered in the given order,
// so the same input always yields the same text.
func Compile(g *Grammar, intents []*intent.Intent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n\n", header)
	fmt.Fprintf(&b, "grammar %v;\n\n", g.Name)

	writePublicPhrases(&b, "wakeup", g.Wakeup)
	writePublicPhrases(&b, "sleep", g.Sleep)
	writePublicPhrases(&b, "shutdown", g.Shutdown)
	fmt.Fprintf(&b, "\n")

	words := g.NumberWords
	if len(words) == 0 {
		words = tokenizer.English.Words()
	}
	fmt.Fprintf(&b, "%v = ( %v )+;\n", NumberRule, strings.Join(escapeAll(words), " | "))

	if len(intents) > 0 {
		fmt.Fprintf(&b, "\n")
	}
	for _, in := range intents {
		fmt.Fprintf(&b, "public <%v> = %v;\n", in.ID, Render(in.Pattern))
	}
	return b.String()
}

func writePublicPhrases(b *strings.Builder, rule string, phrases []string) {
	alts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		words := strings.Fields(strings.ToLower(p))
		if len(words) == 0 {
			continue
		}
		alts = append(alts, strings.Join(escapeAll(words), " "))
	}
	if len(alts) == 0 {
		// A rule cannot be empty.
		alts = append(alts, "<VOID>")
	}
	fmt.Fprintf(b, "public <%v> = ( %v );\n", rule, strings.Join(alts, " | "))
}

// Render renders a grammar tree as a rule expansion.
func Render(n agf.Node) string {
	switch n := n.(type) {
	case *agf.Word:
		return Escape(strings.ToLower(n.Text))
	case *agf.Sequence:
		return renderAll(n.Children, " ")
	case *agf.OrGroup:
		return "( " + renderAll(n.Alternatives, " | ") + " )"
	case *agf.OptionalGroup:
		return "[ " + renderAll(n.Alternatives, " | ") + " ]"
	case *agf.EntityRef:
		// The recognizer must know the words of a string entity.
		if n.Entity.Kind == agf.EntityString {
			return "( " + Render(n.Entity.Pattern) + " )"
		}
		return NumberRule
	case *agf.Range:
		return NumberRule
	}
	panic(fmt.Errorf("unknown node type: %T", n))
}

func renderAll(nodes []agf.Node, sep string) string {
	rs := make([]string, len(nodes))
	for i, n := range nodes {
		rs[i] = Render(n)
	}
	return strings.Join(rs, sep)
}

// Escape returns a token the recognizer reads as the literal word w. Words
// made of [a-z0-9'._-] are left as they are; other words are quoted.
func Escape(w string) string {
	if isPlain(w) {
		return w
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range w {
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte('"')
	return b.String()
}

func isPlain(w string) bool {
	if w == "" {
		return false
	}
	for _, c := range w {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '\'' || c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

func escapeAll(words []string) []string {
	es := make([]string, len(words))
	for i, w := range words {
		es[i] = Escape(w)
	}
	return es
}
