package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile the intents of a configuration into a JSGF grammar file",
		Example: `  amy compile -c amy.yaml -o amy.gram`,
		Args:    cobra.NoArgs,
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	r, _, err := loadRegistry()
	if err != nil {
		return err
	}

	src := r.CompileGrammarFile()
	if *compileFlags.output == "" {
		fmt.Fprint(os.Stdout, src)
		return nil
	}
	err = os.WriteFile(*compileFlags.output, []byte(src), 0644)
	if err != nil {
		return fmt.Errorf("Cannot write the grammar file: %w", err)
	}
	return nil
}
