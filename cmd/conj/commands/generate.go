package commands

import (
	"fmt"
	"strconv"
	"strings"

	"verbtrainer/internal/models"
	"verbtrainer/internal/serviceinterfaces"
	contextutils "verbtrainer/internal/utils"

	"github.com/spf13/cobra"
)

// GenerateCommand returns the generate command
func GenerateCommand(practice serviceinterfaces.PracticeService) *cobra.Command {
	var sense int

	cmd := &cobra.Command{
		Use:   "generate <infinitive> <tense> <pronoun>",
		Short: "Print the English phrase for one conjugation slot",
		Long: `Print the English phrase for one conjugation slot.

The tense is a label such as "Present" or "Present Perfect". The pronoun is
an index from 0 to 5 or one of: I, you, he, we, "you all", they.`,
		Example: `  conj generate hablar Present he
  conj generate ser Preterite 3
  conj generate tener "Present Perfect" I --sense 1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tense, ok := models.ParseTense(args[1])
			if !ok {
				return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
					"unknown tense", args[1])
			}
			pronoun, err := parsePronounArg(args[2])
			if err != nil {
				return err
			}

			phrase, err := practice.Generate(commandContext(cmd), serviceinterfaces.GenerateRequest{
				Infinitive: args[0],
				Tense:      tense,
				Pronoun:    pronoun,
				Sense:      sense,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), phrase)
			return nil
		},
	}
	cmd.Flags().IntVar(&sense, "sense", 0, "sense index of a polysemous verb")

	return cmd
}

// parsePronounArg accepts a pronoun index or an English subject pronoun
func parsePronounArg(arg string) (int, error) {
	if i, err := strconv.Atoi(arg); err == nil {
		return i, nil
	}
	for i, p := range models.EnglishPronouns() {
		if strings.EqualFold(strings.TrimSpace(arg), p) {
			return i, nil
		}
	}
	return 0, contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
		"unknown pronoun", arg)
}
