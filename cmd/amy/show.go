package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/AmyAssist/Amy-sub000/agf"
	"github.com/AmyAssist/Amy-sub000/intent"
	"github.com/AmyAssist/Amy-sub000/speech"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the entities and intents of a configuration in a readable format",
		Example: `  amy show -c amy.yaml`,
		Args:    cobra.NoArgs,
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	r, _, err := loadRegistry()
	if err != nil {
		return err
	}

	err = writeReport(os.Stdout, r)
	if err != nil {
		return err
	}

	return nil
}

const reportTemplate = `# Entities

{{ range .Entities -}}
{{ printEntity . }}
{{ end }}
# Intents

{{ range $i, $in := .Intents -}}
{{ printIntent $i $in }}
{{ end -}}
`

type report struct {
	Entities []*agf.Entity
	Intents  []*intent.Intent
}

func writeReport(w io.Writer, r *speech.Registry) error {
	fns := template.FuncMap{
		"printEntity": func(e *agf.Entity) string {
			return fmt.Sprintf("%-12v %-8v %v", e.Name, e.Kind, e.Pattern)
		},
		"printIntent": func(i int, in *intent.Intent) string {
			var b strings.Builder
			fmt.Fprintf(&b, "%4v %v\n", i+1, in.Name)
			fmt.Fprintf(&b, "     grammar:  %v\n", in.Pattern)
			if len(in.Keywords) > 0 {
				fmt.Fprintf(&b, "     keywords: %v", strings.Join(in.Keywords, ", "))
			} else {
				fmt.Fprintf(&b, "     keywords: -")
			}
			return b.String()
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, &report{
		Entities: r.Entities().Entities(),
		Intents:  r.Intents(),
	})
}
