package services

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"verbtrainer/internal/config"
	"verbtrainer/internal/models"
	"verbtrainer/internal/observability"
	contextutils "verbtrainer/internal/utils"

	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml data/*.json
var catalogFS embed.FS

const (
	verbsFile           = "verbs.yaml"
	irregularsFile      = "irregulars.yaml"
	promptsFile         = "prompts.yaml"
	tensesFile          = "tenses.yaml"
	verbsSchemaFile     = "verbs.schema.json"
	irregularSchemaFile = "irregulars.schema.json"
)

// CatalogBundle holds everything loaded at start-up. All of it is read-only.
type CatalogBundle struct {
	Verbs      *VerbCatalog
	Irregulars *IrregularTable
	Prompts    *PromptDeck
	Tenses     []models.TenseInfo
}

// CatalogLoader reads the static data the trainer runs on
type CatalogLoader struct {
	logger *observability.Logger
}

// NewCatalogLoader creates a new CatalogLoader instance
func NewCatalogLoader(logger *observability.Logger) *CatalogLoader {
	return &CatalogLoader{logger: logger}
}

// rawVerb mirrors one catalog entry before normalization. English is either a
// string or a list of strings.
type rawVerb struct {
	Spanish      string              `yaml:"spanish"`
	English      interface{}         `yaml:"english"`
	Conjugations map[string][]string `yaml:"conjugations"`
}

type rawIrregular struct {
	Preterite      string   `yaml:"preterite"`
	PastParticiple string   `yaml:"past_participle"`
	PreteriteForms []string `yaml:"preterite_forms"`
	PresentForms   []string `yaml:"present_forms"`
}

// Load reads the verb table, the irregular table, the prompt deck and the
// tense descriptions. Configured file paths replace the embedded defaults.
func (l *CatalogLoader) Load(ctx context.Context, cfg config.CatalogConfig) (result *CatalogBundle, err error) {
	ctx, span := observability.TraceCatalogFunction(ctx, "load_catalog",
		attribute.String("catalog.verbs_file", cfg.VerbsFile),
		attribute.String("catalog.irregulars_file", cfg.IrregularsFile),
	)
	defer observability.FinishSpan(span, &err)

	verbData, err := readCatalogSource(cfg.VerbsFile, verbsFile)
	if err != nil {
		return nil, err
	}
	records, err := l.ParseVerbs(ctx, verbData)
	if err != nil {
		return nil, err
	}

	irregularData, err := readCatalogSource(cfg.IrregularsFile, irregularsFile)
	if err != nil {
		return nil, err
	}
	irregulars, err := ParseIrregulars(irregularData)
	if err != nil {
		return nil, err
	}

	promptData, err := readCatalogSource(cfg.PromptsFile, promptsFile)
	if err != nil {
		return nil, err
	}
	prompts, err := ParsePrompts(promptData)
	if err != nil {
		return nil, err
	}

	tenseData, err := readCatalogSource("", tensesFile)
	if err != nil {
		return nil, err
	}
	tenses, err := ParseTenseInfo(tenseData)
	if err != nil {
		return nil, err
	}

	result = &CatalogBundle{
		Verbs:      NewVerbCatalog(ctx, records, l.logger),
		Irregulars: irregulars,
		Prompts:    prompts,
		Tenses:     tenses,
	}
	span.SetAttributes(
		attribute.Int("catalog.verbs", result.Verbs.Len()),
		attribute.Int("catalog.irregulars", irregulars.Len()),
	)
	l.logger.Info(ctx, "Verb catalog loaded", map[string]interface{}{
		"verbs":      result.Verbs.Len(),
		"irregulars": irregulars.Len(),
		"prompts":    prompts.Len(),
	})
	return result, nil
}

// ParseVerbs decodes and validates a verb catalog document. Legacy
// "(not available)" rows become absent tenses and the legacy note
// "possession" becomes "shows possession".
func (l *CatalogLoader) ParseVerbs(ctx context.Context, data []byte) ([]models.VerbRecord, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
			"verb catalog is not valid YAML", "", err)
	}
	if err := validateAgainstSchema(verbsSchemaFile, doc); err != nil {
		return nil, err
	}

	var raw struct {
		Verbs []rawVerb `yaml:"verbs"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
			"failed to decode verb catalog", "", err)
	}

	records := make([]models.VerbRecord, 0, len(raw.Verbs))
	for _, rv := range raw.Verbs {
		rec, err := normalizeVerb(rv)
		if err != nil {
			return nil, err
		}
		if len(rec.Conjugations) == 0 {
			return nil, contextutils.NewAppError(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
				"verb has no available tenses", rec.Spanish)
		}
		records = append(records, rec)
	}

	if l.logger != nil {
		l.logger.Debug(ctx, "Parsed verb catalog", map[string]interface{}{"verbs": len(records)})
	}
	return records, nil
}

func normalizeVerb(rv rawVerb) (models.VerbRecord, error) {
	rec := models.VerbRecord{
		Spanish:      strings.TrimSpace(rv.Spanish),
		Conjugations: make(map[models.Tense]models.Forms, len(rv.Conjugations)),
	}

	switch english := rv.English.(type) {
	case string:
		rec.Senses = []models.Sense{parseCatalogSense(english)}
	case []interface{}:
		for _, item := range english {
			s, ok := item.(string)
			if !ok {
				return rec, contextutils.NewAppError(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
					"sense must be a string", rec.Spanish)
			}
			rec.Senses = append(rec.Senses, parseCatalogSense(s))
		}
	}

	for label, row := range rv.Conjugations {
		tense, ok := models.ParseTense(label)
		if !ok {
			return rec, contextutils.NewAppError(contextutils.ErrorCodeInvalidFormat, contextutils.SeverityFatal,
				"unknown tense label", fmt.Sprintf("%s: %q", rec.Spanish, label))
		}
		var forms models.Forms
		available := false
		for i := range forms {
			form := strings.TrimSpace(row[i])
			if form == models.NotAvailable {
				form = ""
			}
			if form != "" {
				available = true
			}
			forms[i] = form
		}
		if available {
			rec.Conjugations[tense] = forms
		}
	}
	return rec, nil
}

func parseCatalogSense(raw string) models.Sense {
	s := models.ParseSense(raw)
	s.Note = models.NormalizeNote(s.Note)
	return s
}

// ParseIrregulars decodes and validates an irregular-form table
func ParseIrregulars(data []byte) (*IrregularTable, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
			"irregular table is not valid YAML", "", err)
	}
	if err := validateAgainstSchema(irregularSchemaFile, doc); err != nil {
		return nil, err
	}

	var raw struct {
		Irregulars map[string]rawIrregular `yaml:"irregulars"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
			"failed to decode irregular table", "", err)
	}

	entries := make(map[string]models.IrregularEntry, len(raw.Irregulars))
	for key, ri := range raw.Irregulars {
		entry := models.IrregularEntry{Preterite: ri.Preterite, PastParticiple: ri.PastParticiple}
		if len(ri.PreteriteForms) == models.PronounCount {
			var f models.Forms
			copy(f[:], ri.PreteriteForms)
			entry.PreteriteForms = &f
		}
		if len(ri.PresentForms) == models.PronounCount {
			var f models.Forms
			copy(f[:], ri.PresentForms)
			entry.PresentForms = &f
		}
		entries[key] = entry
	}
	return NewIrregularTable(entries), nil
}

// ParseTenseInfo decodes the tense descriptions, rejecting unknown tense names
func ParseTenseInfo(data []byte) ([]models.TenseInfo, error) {
	var raw struct {
		Tenses []models.TenseInfo `yaml:"tenses"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
			"failed to decode tense descriptions", "", err)
	}
	for _, info := range raw.Tenses {
		if _, ok := models.ParseTense(info.Name); !ok {
			return nil, contextutils.NewAppError(contextutils.ErrorCodeInvalidFormat, contextutils.SeverityFatal,
				"unknown tense in descriptions", info.Name)
		}
	}
	return raw.Tenses, nil
}

func validateAgainstSchema(schemaFile string, doc interface{}) error {
	schemaBytes, err := catalogFS.ReadFile("data/" + schemaFile)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to read schema %s", schemaFile)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to compile schema %s", schemaFile)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
			"catalog document could not be validated", schemaFile, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, verr := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
		}
		return contextutils.NewAppError(contextutils.ErrorCodeCatalogInvalid, contextutils.SeverityFatal,
			"catalog schema validation failed", strings.Join(problems, "; "))
	}
	return nil
}

func readCatalogSource(path, embedded string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, contextutils.WrapErrorf(err, "failed to read catalog file %s", path)
		}
		return data, nil
	}
	data, err := catalogFS.ReadFile("data/" + embedded)
	if err != nil {
		return nil, contextutils.WrapErrorf(err, "failed to read embedded %s", embedded)
	}
	return data, nil
}
