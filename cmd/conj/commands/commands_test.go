package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"verbtrainer/internal/models"
	"verbtrainer/internal/serviceinterfaces"
	contextutils "verbtrainer/internal/utils"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPracticeService struct {
	mock.Mock
}

func (m *mockPracticeService) ResolveSpanish(ctx context.Context, text string, sense int) (*models.ResultView, error) {
	args := m.Called(ctx, text, sense)
	view, _ := args.Get(0).(*models.ResultView)
	return view, args.Error(1)
}

func (m *mockPracticeService) ResolveEnglish(ctx context.Context, text string, sense int) (*models.ResultView, error) {
	args := m.Called(ctx, text, sense)
	view, _ := args.Get(0).(*models.ResultView)
	return view, args.Error(1)
}

func (m *mockPracticeService) Generate(ctx context.Context, req serviceinterfaces.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockPracticeService) ListVerbs(ctx context.Context) []models.VerbSummary {
	args := m.Called(ctx)
	return args.Get(0).([]models.VerbSummary)
}

func (m *mockPracticeService) GetVerb(ctx context.Context, infinitive string) (*models.VerbDetail, error) {
	args := m.Called(ctx, infinitive)
	detail, _ := args.Get(0).(*models.VerbDetail)
	return detail, args.Error(1)
}

func (m *mockPracticeService) Tenses(ctx context.Context) []models.TenseInfo {
	args := m.Called(ctx)
	return args.Get(0).([]models.TenseInfo)
}

func (m *mockPracticeService) RandomPrompt(ctx context.Context) (*models.Prompt, error) {
	args := m.Called(ctx)
	prompt, _ := args.Get(0).(*models.Prompt)
	return prompt, args.Error(1)
}

// execute runs cmd under a root carrying the --lang flag
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "conj", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("lang", "en", "")
	root.AddCommand(cmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResolveSpanish_PrintsTable(t *testing.T) {
	practice := new(mockPracticeService)
	practice.On("ResolveSpanish", mock.Anything, "hago", 1).Return(&models.ResultView{
		Found:      true,
		Infinitive: "hacer",
		Tabs: []models.Tab{
			{Index: 0, Label: "to do"},
			{Index: 1, Label: "to make", Active: true},
		},
		Primary: &models.SpeechCue{Text: "I make", Lang: models.SpeechLangEnglish},
		Heading: "hacer (to make)",
		Rows: []models.TableRow{
			{Tense: "Present", Pronoun: "Yo", Spanish: models.SpeechCue{Text: "hago"}, English: models.SpeechCue{Text: "I make"}, Highlighted: true},
			{Tense: "Preterite", Pronoun: "Yo", Spanish: models.SpeechCue{Text: "hice"}, English: models.SpeechCue{Text: "I made"}},
		},
	}, nil)

	out, err := execute(t, ResolveCommands(practice), "resolve", "spanish", "hago", "--sense", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "[1: to make]")
	assert.Contains(t, out, "I make (en-US)")
	assert.Contains(t, out, "hacer (to make)")
	assert.Contains(t, out, "hice")
	lines := strings.Split(out, "\n")
	var highlighted string
	for _, line := range lines {
		if strings.HasPrefix(line, "*") {
			highlighted = line
		}
	}
	assert.Contains(t, highlighted, "hago")
	practice.AssertExpectations(t)
}

func TestResolveEnglish_JoinsArgsAndPassesLocale(t *testing.T) {
	practice := new(mockPracticeService)
	practice.On("ResolveEnglish", mock.MatchedBy(func(ctx context.Context) bool {
		return contextutils.GetLocaleFromContext(ctx) == contextutils.LocaleSpanish
	}), "the sky is blue", 0).Return(&models.ResultView{Found: false, Message: "Esta herramienta"}, nil)

	out, err := execute(t, ResolveCommands(practice), "resolve", "english", "the", "sky", "is", "blue", "--lang", "es")
	require.NoError(t, err)
	assert.Equal(t, "Esta herramienta\n", out)
	practice.AssertExpectations(t)
}

func TestResolve_JSON(t *testing.T) {
	practice := new(mockPracticeService)
	practice.On("ResolveSpanish", mock.Anything, "tengo", 0).Return(&models.ResultView{Found: true, Infinitive: "tener"}, nil)

	out, err := execute(t, ResolveCommands(practice), "resolve", "spanish", "tengo", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"infinitive": "tener"`)
}

func TestGenerateCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		pronoun int
		tense   models.Tense
	}{
		{name: "pronoun name", args: []string{"hablar", "Present", "he"}, pronoun: 2, tense: models.TensePresent},
		{name: "pronoun index", args: []string{"ser", "Preterite", "3"}, pronoun: 3, tense: models.TensePreterite},
		{name: "multi word pronoun", args: []string{"tener", "Present Perfect", "You all"}, pronoun: 4, tense: models.TensePresentPerfect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			practice := new(mockPracticeService)
			practice.On("Generate", mock.Anything, serviceinterfaces.GenerateRequest{
				Infinitive: tt.args[0],
				Tense:      tt.tense,
				Pronoun:    tt.pronoun,
			}).Return("phrase", nil)

			out, err := execute(t, GenerateCommand(practice), append([]string{"generate"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, "phrase\n", out)
			practice.AssertExpectations(t)
		})
	}
}

func TestGenerateCommand_InvalidArgs(t *testing.T) {
	practice := new(mockPracticeService)

	_, err := execute(t, GenerateCommand(practice), "generate", "hablar", "Someday", "I")
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(err))

	_, err = execute(t, GenerateCommand(practice), "generate", "hablar", "Present", "everyone")
	require.Error(t, err)
	assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(err))

	practice.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestVerbsCommand(t *testing.T) {
	practice := new(mockPracticeService)
	practice.On("ListVerbs", mock.Anything).Return([]models.VerbSummary{
		{Spanish: "tener", Senses: []string{"to have", "to be (age)"}, Tenses: []string{"Present", "Preterite"}},
	})
	practice.On("GetVerb", mock.Anything, "tener").Return(&models.VerbDetail{
		Spanish: "tener",
		Senses:  []string{"to have"},
		Tables: []models.SenseTable{{
			Sense: "to have",
			Rows:  []models.TableRow{{Tense: "Present", Pronoun: "Yo", Spanish: models.SpeechCue{Text: "tengo"}, English: models.SpeechCue{Text: "I have"}}},
		}},
	}, nil)
	practice.On("GetVerb", mock.Anything, "cantar").Return(nil, contextutils.ErrVerbNotFound)

	out, err := execute(t, CatalogCommands(practice)[0], "verbs")
	require.NoError(t, err)
	assert.Contains(t, out, "to have; to be (age)")

	out, err = execute(t, CatalogCommands(practice)[0], "verbs", "tener")
	require.NoError(t, err)
	assert.Contains(t, out, "tener: to have")
	assert.Contains(t, out, "I have")

	_, err = execute(t, CatalogCommands(practice)[0], "verbs", "cantar")
	assert.ErrorIs(t, err, contextutils.ErrVerbNotFound)
}

func TestTensesCommand(t *testing.T) {
	practice := new(mockPracticeService)
	practice.On("Tenses", mock.Anything).Return([]models.TenseInfo{
		{Name: "Present", Definition: "Actions happening now.", Example: "Yo hablo"},
	})

	out, err := execute(t, CatalogCommands(practice)[1], "tenses")
	require.NoError(t, err)
	assert.Equal(t, "Present\n  Actions happening now.\n  e.g. Yo hablo\n", out)
}
