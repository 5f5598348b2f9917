package commands

import (
	"fmt"
	"strings"

	"verbtrainer/internal/serviceinterfaces"

	"github.com/spf13/cobra"
)

// CatalogCommands returns the verbs and tenses browsing commands
func CatalogCommands(practice serviceinterfaces.PracticeService) []*cobra.Command {
	return []*cobra.Command{verbsCmd(practice), tensesCmd(practice)}
}

func verbsCmd(practice serviceinterfaces.PracticeService) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "verbs [infinitive]",
		Short: "List the verb catalog or show every table of one verb",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				summaries := practice.ListVerbs(ctx)
				if asJSON {
					return writeJSON(out, summaries)
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "VERB\tMEANINGS\tTENSES")
				for _, s := range summaries {
					fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Spanish, strings.Join(s.Senses, "; "), len(s.Tenses))
				}
				return tw.Flush()
			}

			detail, err := practice.GetVerb(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, detail)
			}
			fmt.Fprintf(out, "%s: %s\n", detail.Spanish, strings.Join(detail.Senses, "; "))
			for _, table := range detail.Tables {
				fmt.Fprintf(out, "\n%s\n", table.Sense)
				if err := printRows(out, table.Rows); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func tensesCmd(practice serviceinterfaces.PracticeService) *cobra.Command {
	return &cobra.Command{
		Use:   "tenses",
		Short: "Explain each tense with an example",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, t := range practice.Tenses(commandContext(cmd)) {
				fmt.Fprintf(out, "%s\n  %s\n  e.g. %s\n", t.Name, t.Definition, t.Example)
			}
			return nil
		},
	}
}
