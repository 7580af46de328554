package tokenizer

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball/english"
)

// Stemmer reduces a word to its stem so that inflected forms of a word
// match the same grammar word.
type Stemmer interface {
	StripSuffix(word string) string
}

// IdentityStemmer leaves words unchanged.
type IdentityStemmer struct{}

func (IdentityStemmer) StripSuffix(word string) string {
	return word
}

// PorterStemmer applies the Porter2 (Snowball) English stemmer. Stop words
// such as "the" are left unchanged.
type PorterStemmer struct{}

func (PorterStemmer) StripSuffix(word string) string {
	return english.Stem(word, false)
}

func LookupStemmer(name string) (Stemmer, error) {
	switch strings.ToLower(name) {
	case "", "identity", "none":
		return IdentityStemmer{}, nil
	case "porter", "snowball":
		return PorterStemmer{}, nil
	}
	return nil, fmt.Errorf("unknown stemmer: %v", name)
}
