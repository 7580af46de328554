// Package speech is where plugins register their intents. A Registry serves
// the recognizer grammar and resolves utterances to intents.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/AmyAssist/Amy-sub000/agf"
	verr "github.com/AmyAssist/Amy-sub000/error"
	"github.com/AmyAssist/Amy-sub000/intent"
	"github.com/AmyAssist/Amy-sub000/jsgf"
	"github.com/AmyAssist/Amy-sub000/tokenizer"
)

// NotUnderstood is the response to an utterance no intent matches.
const NotUnderstood = "I did not understand that"

type Option func(r *Registry)

func WithLanguage(lang *tokenizer.Language) Option {
	return func(r *Registry) {
		r.lang = lang
	}
}

func WithStemmer(s tokenizer.Stemmer) Option {
	return func(r *Registry) {
		r.stemmer = s
	}
}

// WithEntityRegistry makes the registry parse grammars against reg instead of
// a fresh registry of the built-in entities.
func WithEntityRegistry(reg *agf.EntityRegistry) Option {
	return func(r *Registry) {
		r.entities = reg
	}
}

func WithGrammar(g jsgf.Grammar) Option {
	return func(r *Registry) {
		r.grammar = g
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Registry owns the registered intents.
//
// Registration is serialized, and each registration publishes a new snapshot
// of the intent list. Resolve reads a snapshot without locking, so it can run
// concurrently with itself and with registration.
type Registry struct {
	lang      *tokenizer.Language
	stemmer   tokenizer.Stemmer
	entities  *agf.EntityRegistry
	grammar   jsgf.Grammar
	logger    *slog.Logger
	tokenizer *tokenizer.Tokenizer
	matcher   *intent.Matcher

	mu      sync.Mutex
	intents atomic.Pointer[[]*intent.Intent]
}

func New(opts ...Option) *Registry {
	r := &Registry{
		grammar: jsgf.Grammar{
			Name: "amy",
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.entities == nil {
		r.entities = agf.NewEntityRegistry()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.tokenizer = tokenizer.New(r.lang, r.stemmer)
	r.matcher = intent.NewMatcher(r.tokenizer.Language(), r.tokenizer.Stemmer())
	if len(r.grammar.NumberWords) == 0 {
		r.grammar.NumberWords = r.tokenizer.Language().Words()
	}
	r.intents.Store(&[]*intent.Intent{})
	return r
}

// RegisterEntity adds an entity that grammars registered later can refer to.
func (r *Registry) RegisterEntity(name string, kind agf.EntityKind, src string) (*agf.Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.entities.Register(name, kind, src)
	if err != nil {
		setSourceName(err, name)
		return nil, err
	}
	r.logger.Debug("registered entity", "name", name, "kind", kind.String(), "grammar", src)
	return e, nil
}

// RegisterIntent compiles src and adds the result as an intent invoking h.
// A malformed src yields a *verr.ParseError and leaves the registry unchanged.
func (r *Registry) RegisterIntent(name string, src string, h intent.Handler) (*intent.Intent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pattern, err := agf.Parse(src, r.entities)
	if err != nil {
		setSourceName(err, name)
		return nil, err
	}
	in := intent.New(name, src, pattern, h)

	cur := *r.intents.Load()
	next := make([]*intent.Intent, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, in)
	r.intents.Store(&next)

	r.logger.Debug("registered intent", "name", name, "id", in.ID, "grammar", src)
	return in, nil
}

func setSourceName(err error, name string) {
	var perr *verr.ParseError
	if errors.As(err, &perr) && perr.SourceName == "" {
		perr.SourceName = name
	}
}

// Intents returns the registered intents in registration order.
func (r *Registry) Intents() []*intent.Intent {
	return *r.intents.Load()
}

func (r *Registry) Entities() *agf.EntityRegistry {
	return r.entities
}

func (r *Registry) Tokenizer() *tokenizer.Tokenizer {
	return r.tokenizer
}

// CompileGrammarFile renders the grammar file the recognizer loads.
func (r *Registry) CompileGrammarFile() string {
	intents := r.Intents()
	g := r.grammar
	src := jsgf.Compile(&g, intents)
	r.logger.Debug("compiled grammar file", "name", g.Name, "intents", len(intents))
	return src
}

// Resolution is the outcome of resolving an utterance. Match is nil when no
// intent matched; Suggestions then lists known words close to the unknown
// words of the utterance.
type Resolution struct {
	Utterance   string
	Tokens      []tokenizer.Token
	Match       *intent.Match
	Suggestions []string
}

func (res *Resolution) Matched() bool {
	return res.Match != nil
}

// Resolve tokenizes an utterance and matches it against the registered intents.
func (r *Registry) Resolve(utterance string) *Resolution {
	toks := r.tokenizer.Tokenize(utterance)
	res := &Resolution{
		Utterance: utterance,
		Tokens:    toks,
	}
	intents := r.Intents()
	if m, ok := r.matcher.Match(toks, intents); ok {
		res.Match = m
		r.logger.Debug("resolved utterance", "utterance", utterance, "intent", m.Intent.Name, "entities", m.Entities.String())
		return res
	}
	res.Suggestions = Suggest(toks, intents, r.tokenizer.Stemmer())
	r.logger.Info("no intent matched", "utterance", utterance, "tokens", tokenizer.Contents(toks), "suggestions", res.Suggestions)
	return res
}

// ResolveTokens matches already tokenized input.
func (r *Registry) ResolveTokens(toks []tokenizer.Token) (*intent.Match, bool) {
	return r.matcher.Match(toks, r.Intents())
}

// Dispatch resolves an utterance and runs the handler of the matched intent.
// An utterance no intent matches is answered with NotUnderstood and no error.
func (r *Registry) Dispatch(ctx context.Context, utterance string) (string, error) {
	return r.DispatchResolution(ctx, r.Resolve(utterance))
}

// DispatchResolution runs the handler of an intent Resolve has matched.
func (r *Registry) DispatchResolution(ctx context.Context, res *Resolution) (string, error) {
	if !res.Matched() {
		return NotUnderstood, nil
	}
	in := res.Match.Intent
	if in.Handler == nil {
		return "", fmt.Errorf("intent %v has no handler", in.Name)
	}
	resp, err := in.Handler.Handle(ctx, res.Match)
	if err != nil {
		return "", fmt.Errorf("handling intent %v: %w", in.Name, err)
	}
	return resp, nil
}
