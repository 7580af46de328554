package agf

import (
	"testing"
)

func TestLexer_Run(t *testing.T) {
	wordTok := func(text string) *token {
		return newWordToken(text, 0)
	}

	rangeTok := func(text string) *token {
		return newRangeToken(text, 0)
	}

	symTok := func(kind tokenKind) *token {
		return newSymbolToken(kind, 0)
	}

	tests := []struct {
		caption string
		src     string
		tokens  []*token
	}{
		{
			caption: "the lexer can recognize all kinds of tokens",
			src:     `turn ( on | off ) [the] {amytime} $(0,24,1)`,
			tokens: []*token{
				wordTok("turn"),
				symTok(tokenKindLParen),
				wordTok("on"),
				symTok(tokenKindPipe),
				wordTok("off"),
				symTok(tokenKindRParen),
				symTok(tokenKindLBracket),
				wordTok("the"),
				symTok(tokenKindRBracket),
				symTok(tokenKindLBrace),
				wordTok("amytime"),
				symTok(tokenKindRBrace),
				rangeTok("$(0,24,1)"),
				newEOFToken(0),
			},
		},
		{
			caption: "delimiters end a word even without white spaces",
			src:     `(a|b)[c]{d}`,
			tokens: []*token{
				symTok(tokenKindLParen),
				wordTok("a"),
				symTok(tokenKindPipe),
				wordTok("b"),
				symTok(tokenKindRParen),
				symTok(tokenKindLBracket),
				wordTok("c"),
				symTok(tokenKindRBracket),
				symTok(tokenKindLBrace),
				wordTok("d"),
				symTok(tokenKindRBrace),
				newEOFToken(0),
			},
		},
		{
			caption: "a word can contain punctuation other than delimiters",
			src:     "o'clock   \t\nwi-fi",
			tokens: []*token{
				wordTok("o'clock"),
				wordTok("wi-fi"),
				newEOFToken(0),
			},
		},
		{
			caption: "a range can contain white spaces",
			src:     `$( 1 , 10 , 2 )`,
			tokens: []*token{
				rangeTok("$( 1 , 10 , 2 )"),
				newEOFToken(0),
			},
		},
		{
			caption: "a lone $ is an invalid token",
			src:     `a $ b`,
			tokens: []*token{
				wordTok("a"),
				newInvalidToken("$", 0),
			},
		},
		{
			caption: "an empty source has only the EOF token",
			src:     "",
			tokens: []*token{
				newEOFToken(0),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := newLexer(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			for n, expected := range tt.tokens {
				tok, err := l.next()
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if n == len(tt.tokens)-1 && expected.kind == tokenKindInvalid {
					if tok.kind != tokenKindInvalid || tok.text[0] != '$' {
						t.Fatalf("unexpected token; want: an invalid token starting with $, got: %+v", tok)
					}
					break
				}
				testToken(t, tok, expected)
			}
		})
	}
}

func TestLexer_Column(t *testing.T) {
	l, err := newLexer("set ( alarm )")
	if err != nil {
		t.Fatal(err)
	}
	expected := []int{1, 5, 7, 13, 14}
	for _, col := range expected {
		tok, err := l.next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.col != col {
			t.Fatalf("unexpected column; want: %v, got: %v (%+v)", col, tok.col, tok)
		}
	}
}

func testToken(t *testing.T, tok, expected *token) {
	t.Helper()
	if tok.kind != expected.kind || tok.text != expected.text {
		t.Fatalf("unexpected token; want: %+v, got: %+v", expected, tok)
	}
}
