// Package tester runs utterance test cases against a speech registry.
package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AmyAssist/Amy-sub000/speech"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []string
}

func (r *TestResult) String() string {
	if r.Error == nil {
		return fmt.Sprintf("Passed %v", r.TestCasePath)
	}
	const indent1 = "    "
	const indent2 = indent1 + indent1

	msgLines := strings.Split(r.Error.Error(), "\n")
	msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
	if len(r.Diffs) == 0 {
		return msg
	}
	return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(r.Diffs, "\n"+indent2))
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

// ListTestCases reads the test case at testPath, or every test case under it
// when it is a directory.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCaseFile(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cases = append(cases, ListTestCases(filepath.Join(testPath, e.Name()))...)
	}
	return cases
}

func parseTestCaseFile(path string) (*TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

type Tester struct {
	Registry *speech.Registry
	Cases    []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Registry, c))
	}
	return rs
}

func runTest(r *speech.Registry, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	exp := c.TestCase.Expected
	res := r.Resolve(c.TestCase.Utterance)
	if !res.Matched() {
		if exp.Intent == "" {
			return &TestResult{TestCasePath: c.FilePath}
		}
		diffs := []string{fmt.Sprintf("expected: %v", exp)}
		if len(res.Suggestions) > 0 {
			diffs = append(diffs, fmt.Sprintf("did you mean: %v", strings.Join(res.Suggestions, ", ")))
		}
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("no intent matched: %v", c.TestCase.Utterance),
			Diffs:        diffs,
		}
	}

	m := res.Match
	if exp.Intent == "" {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        []string{"expected: none", fmt.Sprintf("actual:   %v %v", m.Intent.Name, m.Entities)},
		}
	}
	var diffs []string
	if m.Intent.Name != exp.Intent {
		diffs = append(diffs, fmt.Sprintf("unexpected intent; expected: %v, actual: %v", exp.Intent, m.Intent.Name))
	}
	for _, k := range sortedKeys(exp.Bindings) {
		v, ok := m.Entities[k]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("missing binding: %v", k))
			continue
		}
		if v.String() != exp.Bindings[k] {
			diffs = append(diffs, fmt.Sprintf("unexpected binding %v; expected: %v, actual: %v", k, exp.Bindings[k], v))
		}
	}
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{TestCasePath: c.FilePath}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
