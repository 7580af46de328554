package tester

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// TestCase is an utterance together with the resolution it must produce.
//
// A test case file consists of three parts separated by lines of hyphens:
//
//	Wake up at half past two
//	---
//	wake me at fourteen oh thirty
//	---
//	alarm amytime=14:30 amytime.hour=14
//
// The last part names the expected intent followed by the bindings it must
// carry, or is "none" when the utterance must not match. Bindings not listed
// are not checked, and a binding value cannot contain spaces.
type TestCase struct {
	Description string
	Utterance   string
	Expected    *Expectation
}

type Expectation struct {
	// Intent is empty when no intent may match.
	Intent   string
	Bindings map[string]string
}

func (e *Expectation) String() string {
	if e.Intent == "" {
		return "none"
	}
	var b strings.Builder
	b.WriteString(e.Intent)
	for _, k := range sortedKeys(e.Bindings) {
		fmt.Fprintf(&b, " %v=%v", k, e.Bindings[k])
	}
	return b.String()
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	utterance := strings.TrimSpace(string(parts[1].buf))
	if utterance == "" {
		return nil, fmt.Errorf("line %v: an utterance must not be empty", parts[0].lineCount+2)
	}
	exp, err := parseExpectation(string(parts[2].buf), parts[0].lineCount+parts[1].lineCount+3)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: strings.TrimSpace(string(parts[0].buf)),
		Utterance:   utterance,
		Expected:    exp,
	}, nil
}

func parseExpectation(src string, line int) (*Expectation, error) {
	fields := strings.Fields(src)
	if len(fields) == 0 {
		return nil, fmt.Errorf("line %v: an expected intent name or 'none' is required", line)
	}
	if fields[0] == "none" {
		if len(fields) > 1 {
			return nil, fmt.Errorf("line %v: 'none' cannot have bindings", line)
		}
		return &Expectation{}, nil
	}
	exp := &Expectation{
		Intent:   fields[0],
		Bindings: map[string]string{},
	}
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("line %v: a binding must be in the form key=value: %v", line, f)
		}
		exp.Bindings[k] = v
	}
	return exp, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var parts []*testCasePart
	s := bufio.NewScanner(r)
	delimited := false
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			// a delimiter at the end of the input closes one more empty part
			if delimited {
				parts = append(parts, &testCasePart{buf: []byte{}})
			}
			break
		}
		parts = append(parts, &testCasePart{
			buf:       buf.buf,
			lineCount: lineCount,
		})
		delimited = buf.delimited
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

type rawPart struct {
	buf       []byte
	delimited bool
}

// readPart returns nil at the end of the input. A part is never nil
// otherwise, even when it is empty or consists of blank lines.
func readPart(s *bufio.Scanner) (*rawPart, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	line := s.Bytes()
	if reDelim.Match(line) {
		return &rawPart{buf: []byte{}, delimited: true}, 0, nil
	}
	buf := bytes.NewBuffer([]byte{})
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return &rawPart{buf: buf.Bytes(), delimited: true}, lineCount, nil
		}
		buf.WriteByte('\n')
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return &rawPart{buf: buf.Bytes()}, lineCount, nil
}
