package tokenizer

import (
	"math"
	"strconv"
	"strings"
)

// Token is a word of an utterance. A run of number words becomes a single
// token whose Content is the decimal rendering of Value.
type Token struct {
	Content  string
	Original string
	Number   bool
	Value    int
}

func (t Token) String() string {
	if t.Number {
		return "#" + t.Content
	}
	return t.Content
}

// Punctuation is trimmed from both ends of every word.
const Punctuation = `.,!?;:"`

type Tokenizer struct {
	lang    *Language
	stemmer Stemmer
}

// New returns a tokenizer. A nil lang means English and a nil stemmer
// leaves words unchanged.
func New(lang *Language, stemmer Stemmer) *Tokenizer {
	if lang == nil {
		lang = English
	}
	if stemmer == nil {
		stemmer = IdentityStemmer{}
	}
	return &Tokenizer{
		lang:    lang,
		stemmer: stemmer,
	}
}

func (t *Tokenizer) Language() *Language {
	return t.lang
}

func (t *Tokenizer) Stemmer() Stemmer {
	return t.stemmer
}

type word struct {
	text string
	raw  string
}

// Tokenize splits an utterance into lower-cased tokens. Runs of number words
// collapse into numbers before the other words are stemmed.
func (t *Tokenizer) Tokenize(utterance string) []Token {
	var words []word
	for _, raw := range strings.Fields(utterance) {
		text := strings.Trim(strings.ToLower(raw), Punctuation)
		if text == "" {
			continue
		}
		// twenty-two
		if parts := strings.Split(text, "-"); len(parts) > 1 && t.allNumberWords(parts) {
			for _, p := range parts {
				words = append(words, word{text: p, raw: p})
			}
			continue
		}
		words = append(words, word{text: text, raw: raw})
	}

	toks := make([]Token, 0, len(words))
	for i := 0; i < len(words); {
		w := words[i]
		if n, err := strconv.Atoi(w.text); err == nil && n >= 0 {
			toks = append(toks, Token{
				Content:  strconv.Itoa(n),
				Original: w.raw,
				Number:   true,
				Value:    n,
			})
			i++
			continue
		}
		if _, ok := t.lang.Value(w.text); ok {
			tok, n := t.collapse(words[i:])
			toks = append(toks, tok)
			i += n
			continue
		}
		toks = append(toks, Token{
			Content:  t.stemmer.StripSuffix(w.text),
			Original: w.raw,
		})
		i++
	}
	return toks
}

// collapse turns the run of number words at the head of words into a
// number token. It returns the token and the count of words it consumed.
// A word that would overflow int ends the run.
func (t *Tokenizer) collapse(words []word) (Token, int) {
	var partial, total int
	var raws []string
	n := 0
run:
	for n < len(words) {
		w := words[n].text
		if w == t.lang.Connector && t.lang.Connector != "" {
			if n == 0 || !t.lang.isMagnitude(words[n-1].text) || n+1 >= len(words) {
				break
			}
			if _, ok := t.lang.Value(words[n+1].text); !ok {
				break
			}
			raws = append(raws, words[n].raw)
			n++
			continue
		}
		v, ok := t.lang.Value(w)
		if !ok {
			break
		}
		switch {
		case t.lang.isMagnitude(w):
			p := max(partial, 1)
			if v > 0 && p > math.MaxInt/v {
				break run
			}
			p *= v
			if total > math.MaxInt-p {
				break run
			}
			if v >= 1000 {
				total += p
				partial = 0
			} else {
				partial = p
			}
		default:
			if total > math.MaxInt-partial-v {
				break run
			}
			partial += v
		}
		raws = append(raws, words[n].raw)
		n++
	}
	// a connector is only part of a run when a number word follows it
	if n > 0 && words[n-1].text == t.lang.Connector {
		n--
		raws = raws[:len(raws)-1]
	}
	total += partial
	return Token{
		Content:  strconv.Itoa(total),
		Original: strings.Join(raws, " "),
		Number:   true,
		Value:    total,
	}, n
}

func (t *Tokenizer) allNumberWords(words []string) bool {
	for _, w := range words {
		if _, ok := t.lang.Value(w); !ok {
			return false
		}
	}
	return true
}

// Contents returns the contents of toks.
func Contents(toks []Token) []string {
	cs := make([]string, len(toks))
	for i, tok := range toks {
		cs[i] = tok.Content
	}
	return cs
}
