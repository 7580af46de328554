package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AmyAssist/Amy-sub000/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <test file path>|<test directory path>",
		Short:   "Test the intents of a configuration",
		Example: `  amy test -c amy.yaml testdata`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	r, _, err := loadRegistry()
	if err != nil {
		return err
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[0])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Registry: r,
		Cases:    cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
