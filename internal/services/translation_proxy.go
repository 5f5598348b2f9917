package services

import (
	"context"
	"regexp"
	"strings"

	"verbtrainer/internal/config"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	contextutils "verbtrainer/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

// TranslationProxyInterface defines the interface for the free-text translation proxy
type TranslationProxyInterface = serviceinterfaces.TranslationProxy

const englishCode = "en"

// canonicalToCode maps canonical language names to provider codes
var canonicalToCode = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"hindi":      "hi",
	"mandarin":   "zh",
	"vietnamese": "vi",
	"portuguese": "pt",
	"german":     "de",
	"italian":    "it",
	"arabic":     "ar",
	"japanese":   "ja",
	"korean":     "ko",
	"russian":    "ru",
}

const quoteChars = `"'«»“”‹›`

var (
	quotedPhrasePattern = regexp.MustCompile(`[` + quoteChars + `](.+?)[` + quoteChars + `]`)
	quoteCharsPattern   = regexp.MustCompile(`[` + quoteChars + `]`)
	nonLetterPattern    = regexp.MustCompile(`[^a-z]`)

	// intentPatterns capture the phrase and the language name, first match wins
	intentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)how\s+(?:do\s+i|do\s+you)\s+say\s+(.+?)\s+in\s+([a-zA-Z\x{00C0}-\x{024F}\s]+)`),
		regexp.MustCompile(`(?i)how\s+to\s+say\s+(.+?)\s+in\s+([a-zA-Z\x{00C0}-\x{024F}\s]+)`),
		regexp.MustCompile(`(?i)what\s+is\s+(.+?)\s+in\s+([a-zA-Z\x{00C0}-\x{024F}\s]+)`),
		regexp.MustCompile(`(?i)(?:can\s+you\s+)?translate\s+(.+?)\s+(?:to|into)\s+([a-zA-Z\x{00C0}-\x{024F}\s]+)`),
		regexp.MustCompile(`(?i)how\s+would\s+i\s+say\s+(.+?)\s+in\s+([a-zA-Z\x{00C0}-\x{024F}\s]+)`),
	}
)

// TranslationIntent is a parsed "how do I say X in Y" request
type TranslationIntent struct {
	Phrase   string
	Language string
}

// ParseTranslationIntent matches text against the intent patterns
func ParseTranslationIntent(text string) (TranslationIntent, bool) {
	for _, p := range intentPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return TranslationIntent{
			Phrase:   strings.TrimSpace(quoteCharsPattern.ReplaceAllString(strings.TrimSpace(m[1]), "")),
			Language: strings.ToLower(strings.TrimSpace(m[2])),
		}, true
	}
	return TranslationIntent{}, false
}

// QuotedPhrase returns the first non-empty quoted span of text
func QuotedPhrase(text string) (string, bool) {
	m := quotedPhrasePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	phrase := strings.TrimSpace(m[1])
	return phrase, phrase != ""
}

// LanguageResolver maps free-form language names ("Français", "mandarin", "de")
// to provider codes
type LanguageResolver struct {
	aliases map[string]string
}

// NewLanguageResolver creates a new LanguageResolver instance from the configured alias lists
func NewLanguageResolver(aliases map[string][]string) *LanguageResolver {
	r := &LanguageResolver{aliases: make(map[string]string)}
	for canonical, list := range aliases {
		key := strings.ToLower(strings.TrimSpace(canonical))
		code, ok := canonicalToCode[key]
		if !ok {
			code = key
		}
		for _, alias := range list {
			r.aliases[strings.ToLower(strings.TrimSpace(alias))] = code
		}
		r.aliases[key] = code
	}
	return r
}

// Resolve returns the code for name, or false when nothing matches
func (r *LanguageResolver) Resolve(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	if code, ok := r.lookup(n); ok {
		return code, true
	}
	cleaned := nonLetterPattern.ReplaceAllString(n, "")
	if code, ok := r.lookup(cleaned); ok {
		return code, true
	}
	if len(cleaned) == 2 {
		if contextutils.IsLanguageCode(cleaned) {
			return cleaned, true
		}
	}
	return "", false
}

func (r *LanguageResolver) lookup(n string) (string, bool) {
	if code, ok := r.aliases[n]; ok {
		return code, true
	}
	if code, ok := canonicalToCode[n]; ok {
		return code, true
	}
	for _, code := range canonicalToCode {
		if code == n {
			return code, true
		}
	}
	return "", false
}

// TranslationProxy interprets learner requests and forwards them to a provider
type TranslationProxy struct {
	cfg          config.TranslationConfig
	provider     TranslationServiceInterface
	providerName string
	languages    *LanguageResolver
	metrics      *observability.TrainerMetrics
	logger       *observability.Logger
}

// NewTranslationProxy creates a new TranslationProxy instance
func NewTranslationProxy(cfg config.TranslationConfig, provider TranslationServiceInterface, metrics *observability.TrainerMetrics, logger *observability.Logger) *TranslationProxy {
	name := cfg.DefaultProvider
	if !cfg.Enabled || name == "" {
		name = "noop"
	}
	return &TranslationProxy{
		cfg:          cfg,
		provider:     provider,
		providerName: name,
		languages:    NewLanguageResolver(cfg.LanguageAliases),
		metrics:      metrics,
		logger:       logger,
	}
}

// Handle translates req. A recognised intent overrides the explicit target.
func (p *TranslationProxy) Handle(ctx context.Context, req serviceinterfaces.ProxyRequest) (result *serviceinterfaces.ProxyResponse, err error) {
	ctx, span := observability.TraceTranslationFunction(ctx, "handle_proxy_request",
		observability.AttributeInputLength(len(req.Text)),
	)
	defer observability.FinishSpan(span, &err)

	outcome := "direct"
	defer func() {
		if err != nil {
			outcome = "error"
		}
		p.metrics.RecordTranslation(ctx, p.providerName, outcome)
	}()

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeMissingRequired, contextutils.SeverityWarn, "Missing text in request body", "")
	}
	if req.Target != "" {
		if err := p.provider.ValidateLanguageCode(req.Target); err != nil {
			return nil, err
		}
	}

	source := req.Source
	if source == "" {
		detected, detectErr := p.provider.Detect(ctx, text)
		if detectErr != nil {
			p.logger.Warn(ctx, "Language detection failed, continuing without source", map[string]interface{}{
				"error": detectErr.Error(),
			})
		} else {
			source = detected
		}
	}
	span.SetAttributes(attribute.String("translation.detected_source", source))

	if intent, ok := ParseTranslationIntent(p.toEnglish(ctx, text, source)); ok {
		if code, found := p.languages.Resolve(intent.Language); found {
			outcome = "intent"
			span.SetAttributes(observability.AttributeLanguage(code))
			if quoted, hasQuote := QuotedPhrase(text); hasQuote {
				return p.translate(ctx, quoted, source, code, true)
			}
			return p.translate(ctx, intent.Phrase, englishCode, code, true)
		}
		p.logger.Debug(ctx, "Unrecognised language in translation intent", map[string]interface{}{
			"language": intent.Language,
		})
	}

	target := req.Target
	if target == "" {
		target = p.cfg.DefaultTarget
	}
	translateSource := ""
	if source != target {
		translateSource = source
	}
	return p.translate(ctx, text, translateSource, target, false)
}

// toEnglish renders text in English so the intent patterns can match. Failures fall back to text.
func (p *TranslationProxy) toEnglish(ctx context.Context, text, source string) string {
	if source == "" || source == englishCode {
		return text
	}
	resp, err := p.provider.Translate(ctx, serviceinterfaces.TranslateRequest{
		Text:           text,
		SourceLanguage: source,
		TargetLanguage: englishCode,
	})
	if err != nil || resp.TranslatedText == "" {
		return text
	}
	return resp.TranslatedText
}

func (p *TranslationProxy) translate(ctx context.Context, text, source, target string, intent bool) (*serviceinterfaces.ProxyResponse, error) {
	resp, err := p.provider.Translate(ctx, serviceinterfaces.TranslateRequest{
		Text:           text,
		SourceLanguage: source,
		TargetLanguage: target,
	})
	if err != nil {
		return nil, contextutils.WrapErrorf(err, "translation to %s failed", target)
	}
	return &serviceinterfaces.ProxyResponse{
		Result:         resp.TranslatedText,
		SourceLanguage: resp.SourceLanguage,
		TargetLanguage: target,
		SpeechLang:     p.cfg.SpeechTagFor(target),
		Intent:         intent,
	}, nil
}
