package tester

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AmyAssist/Amy-sub000/speech"
)

func TestTester_Run(t *testing.T) {
	r := speech.New(speech.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	for name, src := range map[string]string{
		"alarm":   "wake me at {amytime}",
		"volume":  "set volume to $(0,10,1)",
		"weather": "how is the weather",
	} {
		if _, err := r.RegisterIntent(name, src, nil); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		testSrc string
		error   bool
	}{
		{
			testSrc: `
Test
---
wake me at fourteen oh thirty
---
alarm amytime=14:30 amytime.minute=30
`,
		},
		{
			testSrc: `
Test
---
set volume to seven
---
volume $1=7
`,
		},
		{
			testSrc: `
Test
---
sing a song
---
none
`,
		},
		{
			testSrc: `
Test
---
how is the whether
---
weather
`,
			error: true,
		},
		{
			testSrc: `
Test
---
set volume to seven
---
volume $1=8
`,
			error: true,
		},
		{
			testSrc: `
Test
---
set volume to seven
---
alarm
`,
			error: true,
		},
		{
			testSrc: `
Test
---
set volume to seven
---
volume amytime=07:00
`,
			error: true,
		},
		{
			testSrc: `
Test
---
how is the weather
---
none
`,
			error: true,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			c, err := ParseTestCase(strings.NewReader(tt.testSrc))
			if err != nil {
				t.Fatal(err)
			}
			tester := &Tester{
				Registry: r,
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
					},
				},
			}
			rs := tester.Run()
			if tt.error {
				errOccurred := false
				for _, r := range rs {
					if r.Error != nil {
						errOccurred = true
					}
				}
				if !errOccurred {
					t.Fatal("this test must fail, but it passed")
				}
			} else {
				for _, r := range rs {
					if r.Error != nil {
						t.Fatalf("unexpected error occurred: %v", r.Error)
					}
				}
			}
		})
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"a.txt":     "a\n---\nwhat time is it\n---\ntime\n",
		"sub/b.txt": "b\n---\nwhat time is it\n---\n",
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cases := ListTestCases(dir)
	if len(cases) != 2 {
		t.Fatalf("unexpected test case count; want: 2, got: %v", len(cases))
	}
	if cases[0].Error != nil || cases[0].TestCase.Expected.Intent != "time" {
		t.Fatalf("unexpected test case: %+v", cases[0])
	}
	if cases[1].Error == nil {
		t.Fatal("a malformed test case must be reported")
	}

	rs := (&Tester{Registry: speech.New(), Cases: cases[1:]}).Run()
	if rs[0].Error == nil {
		t.Fatal("a malformed test case must fail")
	}

	missing := ListTestCases(filepath.Join(dir, "missing"))
	if len(missing) != 1 || missing[0].Error == nil {
		t.Fatalf("a missing path must be reported: %+v", missing)
	}
}
