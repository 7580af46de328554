package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/AmyAssist/Amy-sub000/agf"
	"github.com/AmyAssist/Amy-sub000/config"
	verr "github.com/AmyAssist/Amy-sub000/error"
	"github.com/AmyAssist/Amy-sub000/intent"
	"github.com/AmyAssist/Amy-sub000/jsgf"
	"github.com/AmyAssist/Amy-sub000/tokenizer"
)

// Load builds a registry from a configuration. Every malformed grammar is
// reported; the errors are returned together as verr.ParseErrors.
func Load(cfg *config.Config, logger *slog.Logger) (*Registry, error) {
	lang, err := tokenizer.LookupLanguage(cfg.Language)
	if err != nil {
		return nil, err
	}
	stemmer, err := tokenizer.LookupStemmer(cfg.Stemmer)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := New(
		WithLanguage(lang),
		WithStemmer(stemmer),
		WithLogger(logger),
		WithGrammar(jsgf.Grammar{
			Name:     cfg.Grammar.Name,
			Wakeup:   cfg.Grammar.Wakeup,
			Sleep:    cfg.Grammar.Sleep,
			Shutdown: cfg.Grammar.Shutdown,
		}),
	)

	var perrs verr.ParseErrors
	collect := func(err error) error {
		var perr *verr.ParseError
		if errors.As(err, &perr) {
			perrs = append(perrs, perr)
			return nil
		}
		return err
	}

	for _, e := range cfg.Entities {
		kind, err := agf.ParseEntityKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("entity %v: %w", e.Name, err)
		}
		if _, err := r.RegisterEntity(e.Name, kind, e.Grammar); err != nil {
			if err := collect(err); err != nil {
				return nil, fmt.Errorf("entity %v: %w", e.Name, err)
			}
		}
	}
	for _, in := range cfg.Intents {
		h, err := ResponseHandler(in.Name, in.Response)
		if err != nil {
			return nil, fmt.Errorf("intent %v: %w", in.Name, err)
		}
		if _, err := r.RegisterIntent(in.Name, in.Grammar, h); err != nil {
			if err := collect(err); err != nil {
				return nil, fmt.Errorf("intent %v: %w", in.Name, err)
			}
		}
	}
	if len(perrs) > 0 {
		return nil, perrs
	}

	logger.Debug("loaded intents", "entities", len(cfg.Entities), "intents", len(cfg.Intents))
	return r, nil
}

// ResponseHandler returns a handler answering with a text/template executed
// with the bound entities, e.g. "It is {{.amytime}}" or
// `{{index . "amytime.hour"}}`. An empty response answers with the name.
func ResponseHandler(name string, response string) (intent.Handler, error) {
	if response == "" {
		response = name
	}
	tmpl, err := template.New(name).Parse(response)
	if err != nil {
		return nil, err
	}
	return intent.HandlerFunc(func(ctx context.Context, m *intent.Match) (string, error) {
		var b strings.Builder
		if err := tmpl.Execute(&b, m.Entities); err != nil {
			return "", err
		}
		return b.String(), nil
	}), nil
}
