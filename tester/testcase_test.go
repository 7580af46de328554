package tester

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		tc      *TestCase
		error   bool
	}{
		{
			caption: "an expected intent with bindings",
			src: `Wake up at half past two
---
wake me at fourteen oh thirty
---
alarm amytime=14:30 amytime.hour=14
`,
			tc: &TestCase{
				Description: "Wake up at half past two",
				Utterance:   "wake me at fourteen oh thirty",
				Expected: &Expectation{
					Intent: "alarm",
					Bindings: map[string]string{
						"amytime":      "14:30",
						"amytime.hour": "14",
					},
				},
			},
		},
		{
			caption: "no intent may match",
			src: `
---
sing a song
-----
none
`,
			tc: &TestCase{
				Utterance: "sing a song",
				Expected:  &Expectation{},
			},
		},
		{
			caption: "the expectation can span lines",
			src: `---
set volume to seven
---
volume
  $1=7
`,
			tc: &TestCase{
				Utterance: "set volume to seven",
				Expected: &Expectation{
					Intent:   "volume",
					Bindings: map[string]string{"$1": "7"},
				},
			},
		},
		{
			caption: "too few parts",
			src: `test
---
what time is it
`,
			error: true,
		},
		{
			caption: "too many parts",
			src: `test
---
what time is it
---
time
---
`,
			error: true,
		},
		{
			caption: "an utterance must not be empty",
			src: `test
---
---
time
`,
			error: true,
		},
		{
			caption: "an expectation is required",
			src: `test
---
what time is it
---
`,
			error: true,
		},
		{
			caption: "a malformed binding",
			src: `test
---
set volume to seven
---
volume $1
`,
			error: true,
		},
		{
			caption: "none with bindings",
			src: `test
---
set volume to seven
---
none $1=7
`,
			error: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			is := is.New(t)
			tc, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.error {
				is.True(err != nil)
				return
			}
			is.NoErr(err)
			is.Equal(tc.Description, tt.tc.Description)
			is.Equal(tc.Utterance, tt.tc.Utterance)
			is.Equal(tc.Expected.Intent, tt.tc.Expected.Intent)
			is.Equal(len(tc.Expected.Bindings), len(tt.tc.Expected.Bindings))
			for k, v := range tt.tc.Expected.Bindings {
				is.Equal(tc.Expected.Bindings[k], v)
			}
		})
	}
}

func TestExpectation_String(t *testing.T) {
	is := is.New(t)
	is.Equal((&Expectation{}).String(), "none")
	is.Equal((&Expectation{
		Intent:   "alarm",
		Bindings: map[string]string{"amytime.hour": "14", "amytime": "14:30"},
	}).String(), "alarm amytime=14:30 amytime.hour=14")
}
