package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"verbtrainer/internal/models"
	"verbtrainer/internal/serviceinterfaces"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// QuizCommand returns the interactive quiz command
func QuizCommand(quiz serviceinterfaces.QuizService) *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Translate conjugated Spanish forms into English",
		Long: `Translate conjugated Spanish forms into English.

Type your answer and press enter. Type "?" to reveal the answer and "q" to
stop. Answers may also be piped in, one per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			interactive := false
			if f, ok := in.(*os.File); ok {
				interactive = term.IsTerminal(int(f.Fd()))
			}
			session := NewQuizSession(quiz, in, cmd.OutOrStdout(), interactive)
			return session.Run(commandContext(cmd), rounds)
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 0, "number of questions (0 asks until you quit)")

	return cmd
}

// QuizSession drives the quiz state machine over a line-oriented stream
type QuizSession struct {
	quiz        serviceinterfaces.QuizService
	in          *bufio.Scanner
	out         io.Writer
	interactive bool

	Asked   int
	Correct int
}

// NewQuizSession creates a session. Interactive sessions print an input prompt.
func NewQuizSession(quiz serviceinterfaces.QuizService, in io.Reader, out io.Writer, interactive bool) *QuizSession {
	return &QuizSession{
		quiz:        quiz,
		in:          bufio.NewScanner(in),
		out:         out,
		interactive: interactive,
	}
}

// Run asks questions until rounds are done, the input ends or the learner quits
func (s *QuizSession) Run(ctx context.Context, rounds int) error {
	defer s.printScore()

	for rounds <= 0 || s.Asked < rounds {
		state, err := s.quiz.Start(ctx)
		if err != nil {
			return err
		}
		s.Asked++
		fmt.Fprintf(s.out, "\n%d. %s  (%s, %s)\n", s.Asked, state.Question.Prompt, state.Question.Infinitive, state.Question.Tense)

		done, err := s.askQuestion(ctx, state)
		if err != nil || done {
			return err
		}
	}
	return nil
}

// askQuestion reads answers until the question is revealed. It reports
// done when the learner quits or the input is exhausted.
func (s *QuizSession) askQuestion(ctx context.Context, state models.QuizState) (bool, error) {
	for {
		if s.interactive {
			fmt.Fprint(s.out, "> ")
		}
		if !s.in.Scan() {
			return true, s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())

		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return true, nil
		case "?", "reveal":
			_, feedback, err := s.quiz.Reveal(ctx, state)
			if err != nil {
				return false, err
			}
			s.printReveal(feedback)
			return false, nil
		}

		next, feedback, err := s.quiz.Submit(ctx, state, line)
		if err != nil {
			return false, err
		}
		state = next

		switch feedback.Result {
		case models.QuizResultIgnored:
			continue
		case models.QuizResultCorrect:
			s.Correct++
			s.printReveal(feedback)
			return false, nil
		default:
			fmt.Fprintf(s.out, "%s (type ? to see the answer)\n", feedback.Message)
		}
	}
}

func (s *QuizSession) printReveal(feedback models.QuizFeedback) {
	fmt.Fprintln(s.out, feedback.Message)
	if feedback.Heading != "" {
		fmt.Fprintln(s.out, feedback.Heading)
	}
	_ = printRows(s.out, feedback.Rows)
}

func (s *QuizSession) printScore() {
	if s.Asked == 0 {
		return
	}
	fmt.Fprintf(s.out, "\nScore: %d/%d\n", s.Correct, s.Asked)
}
