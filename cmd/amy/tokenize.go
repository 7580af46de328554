package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "tokenize <utterance>",
		Short:   "Print the tokens of an utterance",
		Example: `  amy tokenize 'set volume to twenty two'`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTokenize,
	}
	rootCmd.AddCommand(cmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	r, _, err := loadRegistry()
	if err != nil {
		return err
	}
	for _, tok := range r.Tokenizer().Tokenize(args[0]) {
		if tok.Number {
			fmt.Fprintf(os.Stdout, "%v\tnumber\t%v\n", tok.Original, tok.Value)
			continue
		}
		fmt.Fprintf(os.Stdout, "%v\tword\t%v\n", tok.Original, tok.Content)
	}
	return nil
}
