package intent

import (
	"strings"

	"github.com/AmyAssist/Amy-sub000/agf"
	"github.com/AmyAssist/Amy-sub000/tokenizer"
)

// Match is an intent matched against a span of tokens.
type Match struct {
	Intent   *Intent
	Entities Bindings

	// Start and End delimit the matched tokens; End is exclusive.
	Start int
	End   int

	// Literals counts the matched literal words outside optional groups.
	Literals int
}

func (m *Match) Len() int {
	return m.End - m.Start
}

// Matcher selects the intent an utterance invokes. A Matcher holds no state
// besides its stemmer, so it can be used concurrently.
type Matcher struct {
	lang    *tokenizer.Language
	stemmer tokenizer.Stemmer
}

// NewMatcher returns a matcher comparing tokens with grammar words. lang and
// stemmer must be those the tokens were produced with; nil means English and
// no stemming.
func NewMatcher(lang *tokenizer.Language, stemmer tokenizer.Stemmer) *Matcher {
	if lang == nil {
		lang = tokenizer.English
	}
	if stemmer == nil {
		stemmer = tokenizer.IdentityStemmer{}
	}
	return &Matcher{
		lang:    lang,
		stemmer: stemmer,
	}
}

// binding is a node of a persistent list, so that states sharing a prefix
// of their bindings share the list too.
type binding struct {
	key    string
	val    Value
	direct bool
	next   *binding
}

func (b *binding) push(key string, val Value, direct bool) *binding {
	return &binding{
		key:    key,
		val:    val,
		direct: direct,
		next:   b,
	}
}

// list returns the bindings in the order they were made.
func (b *binding) list() []*binding {
	var bs []*binding
	for ; b != nil; b = b.next {
		bs = append(bs, b)
	}
	for i, j := 0, len(bs)-1; i < j; i, j = i+1, j-1 {
		bs[i], bs[j] = bs[j], bs[i]
	}
	return bs
}

// state is a partial match ending just before toks[pos].
type state struct {
	pos      int
	literals int
	bindings *binding
}

// Match finds the best match of intents over toks. The best match spans the
// most tokens. Among matches of the same length, the one with more literal
// words wins, then the intent registered earlier, then the earlier start.
// Match returns false when no intent matches anywhere in toks.
func (m *Matcher) Match(toks []tokenizer.Token, intents []*Intent) (*Match, bool) {
	var best *Match
	for _, in := range intents {
		if !m.mayMatch(in, toks) {
			continue
		}
		for start := range toks {
			for _, s := range m.match(in.Pattern, toks, []state{{pos: start}}, true, false) {
				if s.pos == start {
					continue
				}
				if best != nil && !better(s.pos-start, s.literals, best) {
					continue
				}
				best = &Match{
					Intent:   in,
					Entities: toBindings(s.bindings),
					Start:    start,
					End:      s.pos,
					Literals: s.literals,
				}
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// better reports whether a match of the given length and literal count beats
// cur. Intents are visited in registration order and start positions in
// ascending order, so a tie keeps cur.
func better(length, literals int, cur *Match) bool {
	if length != cur.Len() {
		return length > cur.Len()
	}
	return literals > cur.Literals
}

// mayMatch is a cheap check that rules out an intent none of whose keywords
// occur in toks.
func (m *Matcher) mayMatch(in *Intent, toks []tokenizer.Token) bool {
	if len(in.Keywords) == 0 {
		return true
	}
	for _, kw := range in.Keywords {
		for _, tok := range toks {
			if m.wordMatches(kw, tok) {
				return true
			}
		}
	}
	return false
}

func (m *Matcher) wordMatches(word string, tok tokenizer.Token) bool {
	if tok.Number {
		if v, ok := m.lang.Value(word); ok && v == tok.Value {
			return true
		}
		return strings.Trim(strings.ToLower(tok.Original), tokenizer.Punctuation) == word
	}
	return tok.Content == word || tok.Content == m.stemmer.StripSuffix(word)
}

// match advances every state in in over n and returns the resulting states.
// top is false inside entities, where bindings are keyed by field names.
// optional is true inside optional groups, where literal words do not count.
func (m *Matcher) match(n agf.Node, toks []tokenizer.Token, in []state, top bool, optional bool) []state {
	var out []state
	switch n := n.(type) {
	case *agf.Word:
		for _, s := range in {
			if s.pos >= len(toks) || !m.wordMatches(n.Text, toks[s.pos]) {
				continue
			}
			next := s
			next.pos++
			if !optional {
				next.literals++
			}
			out = append(out, next)
		}
	case *agf.Sequence:
		out = in
		for _, c := range n.Children {
			out = m.match(c, toks, out, top, optional)
			if len(out) == 0 {
				return nil
			}
		}
	case *agf.OrGroup:
		for _, alt := range n.Alternatives {
			out = append(out, m.match(alt, toks, in, top, optional)...)
		}
	case *agf.OptionalGroup:
		out = append(out, in...)
		for _, alt := range n.Alternatives {
			out = append(out, m.match(alt, toks, in, top, true)...)
		}
	case *agf.Range:
		for _, s := range in {
			if s.pos >= len(toks) {
				continue
			}
			tok := toks[s.pos]
			if !tok.Number || !n.Contains(tok.Value) {
				continue
			}
			next := s
			next.pos++
			next.bindings = s.bindings.push(n.Key(), IntValue(tok.Value), true)
			out = append(out, next)
		}
	case *agf.EntityRef:
		key := n.Name
		if !top {
			key = n.Entity.Field()
		}
		for _, s := range in {
			for _, es := range m.match(n.Entity.Pattern, toks, []state{{pos: s.pos}}, false, false) {
				if es.pos == s.pos {
					continue
				}
				next := s
				next.pos = es.pos
				next.bindings = s.bindings.push(key, entityValue(n.Entity, toks[s.pos:es.pos], es.bindings), true)
				for _, b := range es.bindings.list() {
					if strings.HasPrefix(b.key, "$") {
						continue
					}
					next.bindings = next.bindings.push(key+"."+b.key, b.val, false)
				}
				out = append(out, next)
			}
		}
	}
	return dedupe(out)
}

// dedupe keeps a single state per position. The state with more literal
// words wins; on a tie, the earlier state does.
func dedupe(ss []state) []state {
	if len(ss) <= 1 {
		return ss
	}
	idx := map[int]int{}
	out := make([]state, 0, len(ss))
	for _, s := range ss {
		if i, ok := idx[s.pos]; ok {
			if s.literals > out[i].literals {
				out[i] = s
			}
			continue
		}
		idx[s.pos] = len(out)
		out = append(out, s)
	}
	return out
}

// entityValue computes the value of an entity from the tokens it consumed and
// the values its parts were bound to.
func entityValue(e *agf.Entity, toks []tokenizer.Token, parts *binding) Value {
	var ints []int
	for _, b := range parts.list() {
		if b.direct && b.val.Kind == ValueInteger {
			ints = append(ints, b.val.Int)
		}
	}
	if len(ints) == 0 {
		for _, tok := range toks {
			if tok.Number {
				ints = append(ints, tok.Value)
			}
		}
	}

	switch e.Kind {
	case agf.EntityInteger:
		if len(ints) > 0 {
			return IntValue(ints[0])
		}
	case agf.EntityTime:
		switch len(ints) {
		case 0:
		case 1:
			return TimeValue(ints[0], 0)
		default:
			return TimeValue(ints[0], ints[1])
		}
	}
	words := make([]string, len(toks))
	for i, tok := range toks {
		words[i] = strings.Trim(strings.ToLower(tok.Original), tokenizer.Punctuation)
	}
	return StringValue(strings.Join(words, " "))
}

func toBindings(b *binding) Bindings {
	bs := Bindings{}
	for _, b := range b.list() {
		bs[b.key] = b.val
	}
	return bs
}
