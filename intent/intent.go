package intent

import (
	"context"

	"github.com/AmyAssist/Amy-sub000/agf"
	"github.com/google/uuid"
)

// Handler carries out an intent once an utterance matched it. The returned
// text is the response to the user.
type Handler interface {
	Handle(ctx context.Context, m *Match) (string, error)
}

type HandlerFunc func(ctx context.Context, m *Match) (string, error)

func (f HandlerFunc) Handle(ctx context.Context, m *Match) (string, error) {
	return f(ctx, m)
}

// Intent is a compiled grammar paired with its handler. An Intent is never
// modified once created.
type Intent struct {
	// ID is unique within the process. The JSGF compiler uses it as a rule name.
	ID      string
	Name    string
	Source  string
	Pattern agf.Node
	Handler Handler

	// Keywords are the literal words of Pattern. Every match consumes one of
	// them, unless Keywords is empty.
	Keywords []string
}

func New(name string, source string, pattern agf.Node, h Handler) *Intent {
	var keywords []string
	if requiresWord(pattern) {
		seen := map[string]struct{}{}
		for _, w := range agf.Words(pattern) {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			keywords = append(keywords, w)
		}
	}
	return &Intent{
		ID:       uuid.NewString(),
		Name:     name,
		Source:   source,
		Pattern:  pattern,
		Handler:  h,
		Keywords: keywords,
	}
}

// requiresWord reports whether every match of n consumes a literal word of n.
func requiresWord(n agf.Node) bool {
	switch n := n.(type) {
	case *agf.Word:
		return true
	case *agf.Sequence:
		for _, c := range n.Children {
			if requiresWord(c) {
				return true
			}
		}
	case *agf.OrGroup:
		for _, alt := range n.Alternatives {
			if !requiresWord(alt) {
				return false
			}
		}
		return true
	}
	return false
}
