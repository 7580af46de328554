package speech

import (
	"testing"

	"github.com/AmyAssist/Amy-sub000/agf"
	"github.com/AmyAssist/Amy-sub000/intent"
	"github.com/AmyAssist/Amy-sub000/tokenizer"
	"github.com/matryer/is"
)

func TestSuggest(t *testing.T) {
	reg := agf.NewEntityRegistry()
	var intents []*intent.Intent
	for _, src := range []string{"how is the weather", "set the temperature to $(10,30,1)", "play music"} {
		pattern, err := agf.Parse(src, reg)
		if err != nil {
			t.Fatal(err)
		}
		intents = append(intents, intent.New(src, src, pattern, nil))
	}
	tk := tokenizer.New(nil, nil)

	tests := []struct {
		caption     string
		utterance   string
		suggestions []string
	}{
		{
			caption:     "a misheard word",
			utterance:   "how is the whether",
			suggestions: []string{"weather"},
		},
		{
			caption:     "closer suggestions come first",
			utterance:   "set the tempratur to twenty and pley musik",
			suggestions: []string{"music", "play", "temperature"},
		},
		{
			caption:   "short words and numbers are ignored",
			utterance: "hw is the 20",
		},
		{
			caption:   "known words are not suggested",
			utterance: "play the weather",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			is := is.New(t)
			got := Suggest(tk.Tokenize(tt.utterance), intents, nil)
			is.Equal(len(got), len(tt.suggestions))
			for i := range tt.suggestions {
				is.Equal(got[i], tt.suggestions[i])
			}
		})
	}
}

func TestSuggest_Stemmer(t *testing.T) {
	is := is.New(t)
	reg := agf.NewEntityRegistry()
	pattern, err := agf.Parse("turn on the lights", reg)
	is.NoErr(err)
	intents := []*intent.Intent{intent.New("lights", "turn on the lights", pattern, nil)}
	tk := tokenizer.New(nil, tokenizer.PorterStemmer{})

	// "lights" is tokenized as "light", which is no misheard word
	is.Equal(len(Suggest(tk.Tokenize("turn on the lights"), intents, tokenizer.PorterStemmer{})), 0)
	is.Equal(Suggest(tk.Tokenize("turn on the lihgts"), intents, tokenizer.PorterStemmer{}), []string{"lights"})
}

func TestLevenshteinLimit(t *testing.T) {
	is := is.New(t)
	is.Equal(levenshteinLimit(3), 1)
	is.Equal(levenshteinLimit(4), 1)
	is.Equal(levenshteinLimit(5), 2)
	is.Equal(levenshteinLimit(8), 2)
	is.Equal(levenshteinLimit(11), 3)
}
