package tokenizer

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Language is the number vocabulary of a spoken language.
type Language struct {
	Name string

	// Numbers maps the number words below one hundred to their values.
	// Their values are added up within a number.
	Numbers map[string]int

	// Magnitudes maps words such as hundred and thousand to their values.
	// A magnitude multiplies the part of the number preceding it.
	Magnitudes map[string]int

	// Connector may join a magnitude and the following number word, as in
	// "two thousand and five".
	Connector string
}

var English = &Language{
	Name: "en",
	Numbers: map[string]int{
		"zero":      0,
		"one":       1,
		"two":       2,
		"three":     3,
		"four":      4,
		"five":      5,
		"six":       6,
		"seven":     7,
		"eight":     8,
		"nine":      9,
		"ten":       10,
		"eleven":    11,
		"twelve":    12,
		"thirteen":  13,
		"fourteen":  14,
		"fifteen":   15,
		"sixteen":   16,
		"seventeen": 17,
		"eighteen":  18,
		"nineteen":  19,
		"twenty":    20,
		"thirty":    30,
		"forty":     40,
		"fifty":     50,
		"sixty":     60,
		"seventy":   70,
		"eighty":    80,
		"ninety":    90,
	},
	Magnitudes: map[string]int{
		"hundred":  100,
		"thousand": 1000,
		"million":  1000000,
		"billion":  1000000000,
	},
	Connector: "and",
}

var (
	languagesMu sync.RWMutex
	languages   = map[string]*Language{
		English.Name: English,
		"english":    English,
	}
)

// RegisterLanguage makes a number vocabulary available to LookupLanguage
// under its name.
func RegisterLanguage(l *Language) error {
	if l == nil || l.Name == "" {
		return fmt.Errorf("a language needs a name")
	}
	if len(l.Numbers) == 0 {
		return fmt.Errorf("language %v has no number words", l.Name)
	}
	name := strings.ToLower(l.Name)

	languagesMu.Lock()
	defer languagesMu.Unlock()
	if _, ok := languages[name]; ok {
		return fmt.Errorf("language already registered: %v", l.Name)
	}
	languages[name] = l
	return nil
}

func LookupLanguage(name string) (*Language, error) {
	languagesMu.RLock()
	defer languagesMu.RUnlock()
	l, ok := languages[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown language: %v", name)
	}
	return l, nil
}

// Value returns the value of a single number word.
func (l *Language) Value(word string) (int, bool) {
	if v, ok := l.Numbers[word]; ok {
		return v, true
	}
	v, ok := l.Magnitudes[word]
	return v, ok
}

func (l *Language) isMagnitude(word string) bool {
	_, ok := l.Magnitudes[word]
	return ok
}

// Words returns every word of the vocabulary ordered by value. The
// connector comes last.
func (l *Language) Words() []string {
	words := make([]string, 0, len(l.Numbers)+len(l.Magnitudes)+1)
	for w := range l.Numbers {
		words = append(words, w)
	}
	for w := range l.Magnitudes {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		vi, _ := l.Value(words[i])
		vj, _ := l.Value(words[j])
		if vi != vj {
			return vi < vj
		}
		return words[i] < words[j]
	})
	if l.Connector != "" {
		words = append(words, l.Connector)
	}
	return words
}
