package agf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	verr "github.com/AmyAssist/Amy-sub000/error"
)

var parseErr = fmt.Errorf("parse error")

var reEntityName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Parse parses an AGF source. Entity references are resolved against reg;
// an unknown name fails the whole parse. Errors describing a malformed
// source are *verr.ParseError.
func Parse(src string, reg *EntityRegistry) (Node, error) {
	p, err := newParser(src, reg)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	src       string
	reg       *EntityRegistry
	lex       *lexer
	peekedTok *token
	lastTok   *token
	ranges    int

	errCause  error
	errDetail string
	errCol    int
}

func newParser(src string, reg *EntityRegistry) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		src: src,
		reg: reg,
		lex: lex,
	}, nil
}

func (p *parser) parse() (root Node, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			if err != parseErr {
				panic(err)
			}
			retErr = &verr.ParseError{
				Cause:  p.errCause,
				Detail: p.errDetail,
				Source: p.src,
				Col:    p.errCol,
			}
		}
	}()

	return p.parseGrammar(), nil
}

func (p *parser) parseGrammar() Node {
	seq := p.parseSequence()
	if seq == nil {
		switch {
		case p.consume(tokenKindEOF):
			p.raiseParseError(SynErrEmptyGrammar, "")
		case p.consume(tokenKindPipe):
			p.raiseParseError(SynErrAltNotEnclosed, "")
		}
		p.raiseUnexpected()
	}
	if p.consume(tokenKindPipe) {
		p.raiseParseError(SynErrAltNotEnclosed, "")
	}
	if !p.consume(tokenKindEOF) {
		p.raiseUnexpected()
	}
	return seq
}

// raiseUnexpected reports a token that cannot appear at the current position.
func (p *parser) raiseUnexpected() {
	switch {
	case p.consume(tokenKindRParen):
		p.raiseParseError(SynErrGroupNoInitiator, "")
	case p.consume(tokenKindRBracket):
		p.raiseParseError(SynErrOptNoInitiator, "")
	case p.consume(tokenKindRBrace):
		p.raiseParseError(SynErrEntityNoInitiator, "")
	}
	p.next()
	p.raiseParseError(SynErrInvalidChar, p.lastTok.text)
}

func (p *parser) parseSequence() Node {
	var elems []Node
	for {
		elem := p.parseElement()
		if elem == nil {
			break
		}
		elems = append(elems, elem)
	}
	switch len(elems) {
	case 0:
		return nil
	case 1:
		return elems[0]
	}
	return &Sequence{
		Children: elems,
	}
}

func (p *parser) parseElement() Node {
	switch {
	case p.consume(tokenKindWord):
		return &Word{
			Text: strings.ToLower(p.lastTok.text),
		}
	case p.consume(tokenKindLParen):
		alts := p.parseAlternatives(tokenKindRParen, SynErrGroupUnclosed)
		return &OrGroup{
			Alternatives: alts,
		}
	case p.consume(tokenKindLBracket):
		alts := p.parseAlternatives(tokenKindRBracket, SynErrOptUnclosed)
		return &OptionalGroup{
			Alternatives: alts,
		}
	case p.consume(tokenKindLBrace):
		return p.parseEntityRef()
	case p.consume(tokenKindRange):
		return p.parseRange(p.lastTok.text)
	}
	return nil
}

func (p *parser) parseAlternatives(closer tokenKind, errUnclosed *SyntaxError) []Node {
	open := p.lastTok
	var alts []Node
	for {
		alt := p.parseSequence()
		if alt == nil {
			switch {
			case p.consume(tokenKindEOF):
				p.raiseParseErrorAt(errUnclosed, p.src[byteOffset(p.src, open.col):], open.col)
			case len(alts) == 0 && p.consume(closer):
				p.raiseParseErrorAt(SynErrGroupNoElem, "", open.col)
			case p.consume(tokenKindPipe) || p.consume(closer):
				p.raiseParseError(SynErrAltLackOfOperand, "")
			}
			p.raiseParseErrorAt(errUnclosed, p.src[byteOffset(p.src, open.col):], open.col)
		}
		alts = append(alts, alt)
		if p.consume(tokenKindPipe) {
			continue
		}
		break
	}
	if !p.consume(closer) {
		p.raiseParseErrorAt(errUnclosed, p.src[byteOffset(p.src, open.col):], open.col)
	}
	return alts
}

func (p *parser) parseEntityRef() Node {
	open := p.lastTok
	if !p.consume(tokenKindWord) {
		if p.consume(tokenKindRBrace) {
			p.raiseParseErrorAt(SynErrEntityNoName, "", open.col)
		}
		p.raiseParseErrorAt(SynErrEntityUnclosed, "", open.col)
	}
	nameTok := p.lastTok
	name := strings.ToLower(nameTok.text)
	if !reEntityName.MatchString(name) {
		p.raiseParseErrorAt(SynErrEntityInvalidName, nameTok.text, nameTok.col)
	}
	if !p.consume(tokenKindRBrace) {
		p.raiseParseErrorAt(SynErrEntityUnclosed, "{"+nameTok.text, open.col)
	}
	if p.reg == nil {
		p.raiseParseErrorAt(SynErrUnknownEntity, name, open.col)
	}
	e, ok := p.reg.Resolve(name)
	if !ok {
		p.raiseParseErrorAt(SynErrUnknownEntity, name, open.col)
	}
	return &EntityRef{
		Name:   name,
		Entity: e,
	}
}

// parseRange interprets a range lexeme of the form $(min,max,step).
func (p *parser) parseRange(text string) Node {
	body := strings.TrimSuffix(strings.TrimPrefix(text, "$("), ")")
	params := strings.Split(body, ",")
	if len(params) != 3 {
		p.raiseParseError(SynErrRangeInvalidForm, text)
	}
	var nums [3]int
	for i, param := range params {
		n, err := strconv.Atoi(strings.TrimSpace(param))
		if err != nil {
			p.raiseParseError(SynErrRangeInvalidBound, text)
		}
		nums[i] = n
	}
	if nums[0] > nums[1] {
		p.raiseParseError(SynErrRangeInvalidOrder, text)
	}
	if nums[2] <= 0 {
		p.raiseParseError(SynErrRangeInvalidStep, text)
	}
	p.ranges++
	return &Range{
		Min:  nums[0],
		Max:  nums[1],
		Step: nums[2],
		Slot: p.ranges,
	}
}

func (p *parser) next() *token {
	var tok *token
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		var err error
		tok, err = p.lex.next()
		if err != nil {
			p.raiseParseError(err, "")
		}
	}
	p.lastTok = tok
	return tok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.next()
	if tok.kind == tokenKindInvalid {
		if strings.HasPrefix(tok.text, "$") {
			p.raiseParseError(SynErrRangeInvalidForm, tok.text)
		}
		p.raiseParseError(SynErrInvalidChar, tok.text)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}

func (p *parser) raiseParseError(cause error, detail string) {
	col := 0
	if p.lastTok != nil {
		col = p.lastTok.col
	} else if p.peekedTok != nil {
		col = p.peekedTok.col
	}
	p.raiseParseErrorAt(cause, detail, col)
}

func (p *parser) raiseParseErrorAt(cause error, detail string, col int) {
	p.errCause = cause
	p.errDetail = detail
	p.errCol = col
	panic(parseErr)
}

// byteOffset converts a 1-based column counted in code points into a byte
// offset of src.
func byteOffset(src string, col int) int {
	n := 1
	for i := range src {
		if n == col {
			return i
		}
		n++
	}
	return len(src)
}
