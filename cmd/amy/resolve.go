package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AmyAssist/Amy-sub000/speech"
	"github.com/spf13/cobra"
)

var resolveFlags = struct {
	tokens   *bool
	dispatch *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "resolve [<utterance>]",
		Short: "Resolve utterances to intents",
		Long: `resolve matches an utterance against the intents of a configuration.
When no utterance is given, every line of stdin is resolved.`,
		Example: `  amy resolve 'wake me at seven oh five'`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runResolve,
	}
	resolveFlags.tokens = cmd.Flags().Bool("tokens", false, "print the tokens of each utterance")
	resolveFlags.dispatch = cmd.Flags().Bool("dispatch", false, "print the response of the matched intent instead of its bindings")
	rootCmd.AddCommand(cmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	r, _, err := loadRegistry()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return resolveUtterance(cmd, r, os.Stdout, args[0])
	}
	s := bufio.NewScanner(os.Stdin)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if err := resolveUtterance(cmd, r, os.Stdout, line); err != nil {
			return err
		}
	}
	return s.Err()
}

func resolveUtterance(cmd *cobra.Command, r *speech.Registry, w io.Writer, utterance string) error {
	res := r.Resolve(utterance)
	if *resolveFlags.tokens {
		fmt.Fprintf(w, "tokens: %v\n", res.Tokens)
	}
	if *resolveFlags.dispatch {
		resp, err := r.DispatchResolution(cmd.Context(), res)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, resp)
		return nil
	}
	if !res.Matched() {
		fmt.Fprintf(w, "none\n")
		if len(res.Suggestions) > 0 {
			fmt.Fprintf(w, "did you mean: %v\n", strings.Join(res.Suggestions, ", "))
		}
		return nil
	}
	m := res.Match
	fmt.Fprintf(w, "%v", m.Intent.Name)
	if len(m.Entities) > 0 {
		fmt.Fprintf(w, " %v", m.Entities)
	}
	fmt.Fprintf(w, "\n")
	return nil
}
