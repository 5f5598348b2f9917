package commands

import (
	"strings"

	"verbtrainer/internal/models"
	"verbtrainer/internal/serviceinterfaces"

	"github.com/spf13/cobra"
)

// ResolveCommands returns the resolve command with one subcommand per direction
func ResolveCommands(practice serviceinterfaces.PracticeService) *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Find the verb, tense and pronoun behind a phrase",
		Long: `Find the verb, tense and pronoun behind a phrase.

Available commands:
  spanish  - resolve a conjugated form such as "hago" or "yo he comido"
  english  - resolve an English phrase such as "I have eaten"`,
	}

	resolveCmd.AddCommand(resolveDirectionCmd(practice, models.DirectionSpanish, "Resolve a conjugated Spanish form or infinitive"))
	resolveCmd.AddCommand(resolveDirectionCmd(practice, models.DirectionEnglish, "Resolve an English phrase"))

	return resolveCmd
}

func resolveDirectionCmd(practice serviceinterfaces.PracticeService, direction models.Direction, short string) *cobra.Command {
	var sense int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   string(direction) + " <phrase>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			text := strings.Join(args, " ")

			var view *models.ResultView
			var err error
			if direction == models.DirectionSpanish {
				view, err = practice.ResolveSpanish(ctx, text, sense)
			} else {
				view, err = practice.ResolveEnglish(ctx, text, sense)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			return printResult(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().IntVar(&sense, "sense", 0, "meaning tab to display")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
