package serviceinterfaces

import (
	"context"
)

// TranslateRequest represents a translation request
type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language,omitempty"`
}

// TranslateResponse represents a translation response
type TranslateResponse struct {
	TranslatedText string  `json:"translated_text"`
	SourceLanguage string  `json:"source_language"`
	TargetLanguage string  `json:"target_language"`
	Confidence     float64 `json:"confidence,omitempty"`
}

// TranslationService defines the interface for translation providers
type TranslationService interface {
	// Translate translates text using the configured translation provider.
	// An empty SourceLanguage lets the provider detect it.
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)

	// Detect returns the language code of text
	Detect(ctx context.Context, text string) (string, error)

	// ValidateLanguageCode validates that a language code is properly formatted
	ValidateLanguageCode(langCode string) error

	// GetSupportedLanguages returns a list of supported target languages for translation
	GetSupportedLanguages() []string
}

// ProxyRequest is a free-text translation request from the learner. Source
// and Target may be omitted.
type ProxyRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`
}

// ProxyResponse is the proxy result with the speech tag of the output language
type ProxyResponse struct {
	Result         string `json:"result"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language"`
	SpeechLang     string `json:"speech_lang,omitempty"`
	Intent         bool   `json:"intent"`
}

// TranslationProxy interprets a request ("how do I say X in French") and
// forwards it to a TranslationService
type TranslationProxy interface {
	Handle(ctx context.Context, req ProxyRequest) (*ProxyResponse, error)
}
