package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"verbtrainer/internal/models"
	contextutils "verbtrainer/internal/utils"

	"github.com/spf13/cobra"
)

// commandContext returns the command context carrying the --lang locale
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f := cmd.Flag("lang"); f != nil && f.Value.String() != "" {
		ctx = contextutils.WithLocale(ctx, contextutils.ParseLocale(f.Value.String()))
	}
	return ctx
}

// newTable returns a tabwriter aligned on tabs
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRows writes conjugation rows; the highlighted row is starred
func printRows(w io.Writer, rows []models.TableRow) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "\tTENSE\tPRONOUN\tSPANISH\tENGLISH")
	for _, row := range rows {
		mark := ""
		if row.Highlighted {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, row.Tense, row.Pronoun, row.Spanish.Text, row.English.Text)
	}
	return tw.Flush()
}

// printResult renders a resolution the way the web UI lays it out
func printResult(w io.Writer, view *models.ResultView) error {
	if !view.Found {
		fmt.Fprintln(w, view.Message)
		return nil
	}

	if len(view.Tabs) > 1 {
		labels := make([]string, 0, len(view.Tabs))
		for _, tab := range view.Tabs {
			if tab.Active {
				labels = append(labels, fmt.Sprintf("[%d: %s]", tab.Index, tab.Label))
			} else {
				labels = append(labels, fmt.Sprintf(" %d: %s ", tab.Index, tab.Label))
			}
		}
		fmt.Fprintf(w, "Meanings: %s\n", strings.Join(labels, " "))
	}
	if view.Primary != nil {
		fmt.Fprintf(w, "%s (%s)\n", view.Primary.Text, view.Primary.Lang)
	}
	if view.Heading != "" {
		fmt.Fprintln(w, view.Heading)
	}
	return printRows(w, view.Rows)
}
