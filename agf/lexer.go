package agf

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindWord     = tokenKind("word")
	tokenKindLParen   = tokenKind("(")
	tokenKindRParen   = tokenKind(")")
	tokenKindLBracket = tokenKind("[")
	tokenKindRBracket = tokenKind("]")
	tokenKindPipe     = tokenKind("|")
	tokenKindLBrace   = tokenKind("{")
	tokenKindRBrace   = tokenKind("}")
	tokenKindRange    = tokenKind("range")
	tokenKindEOF      = tokenKind("eof")
	tokenKindInvalid  = tokenKind("invalid")
)

type token struct {
	kind tokenKind
	text string
	col  int
}

func newSymbolToken(kind tokenKind, col int) *token {
	return &token{
		kind: kind,
		col:  col,
	}
}

func newWordToken(text string, col int) *token {
	return &token{
		kind: tokenKindWord,
		text: text,
		col:  col,
	}
}

func newRangeToken(text string, col int) *token {
	return &token{
		kind: tokenKindRange,
		text: text,
		col:  col,
	}
}

func newEOFToken(col int) *token {
	return &token{
		kind: tokenKindEOF,
		col:  col,
	}
}

func newInvalidToken(text string, col int) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		col:  col,
	}
}

// Delimiters and white spaces end a word. A `$` can only start a range.
const wordPattern = `[^\u{0009}\u{000A}\u{000D}\u{0020}()[\]|{}$]+`

var lexEntries = []*mlspec.LexEntry{
	{Kind: "white_space", Pattern: `[\u{0009}\u{000A}\u{000D}\u{0020}]+`},
	{Kind: "l_paren", Pattern: `\(`},
	{Kind: "r_paren", Pattern: `\)`},
	{Kind: "l_bracket", Pattern: `\[`},
	{Kind: "r_bracket", Pattern: `\]`},
	{Kind: "pipe", Pattern: `\|`},
	{Kind: "l_brace", Pattern: `{`},
	{Kind: "r_brace", Pattern: `}`},
	{Kind: "range", Pattern: `$\([^)]*\)`},
	{Kind: "word", Pattern: wordPattern},
}

var (
	compiledLexSpec    *mlspec.CompiledLexSpec
	compiledLexSpecErr error
	compileLexSpecOnce sync.Once
)

func lexSpec() (*mlspec.CompiledLexSpec, error) {
	compileLexSpecOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name:    "agf",
			Entries: lexEntries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				err = fmt.Errorf("%v", b.String())
			}
			compiledLexSpecErr = fmt.Errorf("failed to compile the AGF lexical specification: %w", err)
			return
		}
		compiledLexSpec = clspec
	})
	return compiledLexSpec, compiledLexSpecErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer

	// pos counts the code points read so far. The driver resets its column
	// at every line feed, while AGF columns run through the whole source.
	pos int
}

func newLexer(src string) (*lexer, error) {
	s, err := lexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return &lexer{
		s: s,
		d: d,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	var kind string
	var col int
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return newEOFToken(l.pos + 1), nil
		}
		col = l.pos + 1
		l.pos += utf8.RuneCount(tok.Lexeme)
		if tok.Invalid {
			return newInvalidToken(string(tok.Lexeme), col), nil
		}
		kind = string(l.s.KindNames[tok.KindID])
		if kind == "white_space" {
			continue
		}

		break
	}

	switch kind {
	case "l_paren":
		return newSymbolToken(tokenKindLParen, col), nil
	case "r_paren":
		return newSymbolToken(tokenKindRParen, col), nil
	case "l_bracket":
		return newSymbolToken(tokenKindLBracket, col), nil
	case "r_bracket":
		return newSymbolToken(tokenKindRBracket, col), nil
	case "pipe":
		return newSymbolToken(tokenKindPipe, col), nil
	case "l_brace":
		return newSymbolToken(tokenKindLBrace, col), nil
	case "r_brace":
		return newSymbolToken(tokenKindRBrace, col), nil
	case "range":
		return newRangeToken(string(tok.Lexeme), col), nil
	case "word":
		return newWordToken(string(tok.Lexeme), col), nil
	default:
		return newInvalidToken(string(tok.Lexeme), col), nil
	}
}
