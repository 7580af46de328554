package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/AmyAssist/Amy-sub000/agf"
	"github.com/AmyAssist/Amy-sub000/jsgf"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	jsgf *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [<grammar>]",
		Short: "Parse an AGF grammar and print its tree",
		Example: `  amy parse 'wake me at {amytime} [please]'
  echo 'turn (on|off) the light' | amy parse`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	parseFlags.jsgf = cmd.Flags().Bool("jsgf", false, "print the JSGF rule body instead of the tree")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				err = fmt.Errorf("an unexpected error occurred: %v", v)
			}
			fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
			retErr = err
		}
	}()

	r, _, err := loadRegistry()
	if err != nil {
		return err
	}

	var src string
	if len(args) > 0 {
		src = args[0]
	} else {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		src = strings.TrimSpace(string(b))
	}

	root, err := agf.Parse(src, r.Entities())
	if err != nil {
		return err
	}
	if *parseFlags.jsgf {
		fmt.Fprintln(os.Stdout, jsgf.Render(root))
		return nil
	}
	agf.PrintTree(os.Stdout, root)
	return nil
}
