package error

import (
	"errors"
	"testing"
)

var errCause = errors.New("syntax error: unknown entity")

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		caption string
		err     *ParseError
		msg     string
	}{
		{
			caption: "a full error",
			err: &ParseError{
				Cause:      errCause,
				Detail:     "amydate",
				SourceName: "alarm",
				Source:     "wake me at {amydate}",
				Col:        12,
			},
			msg: "alarm: 12: error: syntax error: unknown entity: amydate\n    wake me at {amydate}\n               ^",
		},
		{
			caption: "only a cause",
			err: &ParseError{
				Cause: errCause,
			},
			msg: "error: syntax error: unknown entity",
		},
		{
			caption: "a column past a multi-byte source has no caret",
			err: &ParseError{
				Cause:  errCause,
				Source: "wäre {x}",
				Col:    10,
			},
			msg: "10: error: syntax error: unknown entity\n    wäre {x}",
		},
		{
			caption: "a column past the source has no caret",
			err: &ParseError{
				Cause:  errCause,
				Source: "ab",
				Col:    9,
			},
			msg: "9: error: syntax error: unknown entity\n    ab",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if msg := tt.err.Error(); msg != tt.msg {
				t.Fatalf("unexpected message; want: %q, got: %q", tt.msg, msg)
			}
			if !errors.Is(tt.err, errCause) {
				t.Fatal("the cause must be visible to errors.Is")
			}
		})
	}
}

func TestParseErrors_Error(t *testing.T) {
	errs := ParseErrors{
		{Cause: errCause, SourceName: "a"},
		{Cause: errCause, SourceName: "b"},
	}
	want := "a: error: syntax error: unknown entity\nb: error: syntax error: unknown entity"
	if msg := errs.Error(); msg != want {
		t.Fatalf("unexpected message; want: %q, got: %q", want, msg)
	}
	var err error = errs
	var perrs ParseErrors
	if !errors.As(err, &perrs) || len(perrs) != 2 {
		t.Fatal("ParseErrors must be retrievable with errors.As")
	}
}
