package speech

import (
	"slices"
	"sort"

	"github.com/AmyAssist/Amy-sub000/intent"
	"github.com/AmyAssist/Amy-sub000/tokenizer"
	"github.com/agnivade/levenshtein"
)

// Suggest returns the keywords of intents that are close to, but not the same
// as, a word of toks. Speech recognizers often mishear a word as a similar one,
// so the suggestions hint at what the user may have meant. stemmer must be the
// one toks were produced with.
func Suggest(toks []tokenizer.Token, intents []*intent.Intent, stemmer tokenizer.Stemmer) []string {
	if stemmer == nil {
		stemmer = tokenizer.IdentityStemmer{}
	}
	// stem -> keywords with that stem
	keywords := map[string][]string{}
	for _, in := range intents {
		for _, kw := range in.Keywords {
			stem := stemmer.StripSuffix(kw)
			if !slices.Contains(keywords[stem], kw) {
				keywords[stem] = append(keywords[stem], kw)
			}
		}
	}

	found := map[string]int{}
	for _, tok := range toks {
		if tok.Number || len(tok.Content) < 3 {
			continue
		}
		if _, ok := keywords[tok.Content]; ok {
			continue
		}
		for stem, kws := range keywords {
			dist := levenshtein.ComputeDistance(tok.Content, stem)
			if dist > levenshteinLimit(len(stem)) {
				continue
			}
			for _, kw := range kws {
				if d, ok := found[kw]; !ok || dist < d {
					found[kw] = dist
				}
			}
		}
	}

	suggestions := make([]string, 0, len(found))
	for kw := range found {
		suggestions = append(suggestions, kw)
	}
	sort.Slice(suggestions, func(i, j int) bool {
		di, dj := found[suggestions[i]], found[suggestions[j]]
		if di == dj {
			return suggestions[i] < suggestions[j]
		}
		return di < dj
	})
	return suggestions
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
