package error

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseError reports a malformed AGF source. Cause is one of the sentinel
// errors of the agf package; errors.Is sees through a ParseError to it.
type ParseError struct {
	Cause      error
	Detail     string
	SourceName string
	Source     string
	Col        int
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Col != 0 {
		fmt.Fprintf(&b, "%v: ", e.Col)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	if e.Source != "" {
		fmt.Fprintf(&b, "\n    %v", e.Source)
		if e.Col > 0 && e.Col <= utf8.RuneCountInString(e.Source)+1 {
			fmt.Fprintf(&b, "\n    %v^", strings.Repeat(" ", e.Col-1))
		}
	}

	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ParseErrors collects the errors of a bulk load so that every malformed
// source is reported at once.
type ParseErrors []*ParseError

func (e ParseErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}
	return b.String()
}
