package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"verbtrainer/internal/config"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	contextutils "verbtrainer/internal/utils"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
)

// TranslationServiceInterface defines the interface for translation services
type TranslationServiceInterface = serviceinterfaces.TranslationService

// GoogleTranslationService handles translation requests using the Google Translate v2 API
type GoogleTranslationService struct {
	provider   config.TranslationProviderConfig
	httpClient *http.Client
	logger     *observability.Logger
}

// NewGoogleTranslationService creates a new Google translation service instance
func NewGoogleTranslationService(provider config.TranslationProviderConfig, logger *observability.Logger) *GoogleTranslationService {
	return &GoogleTranslationService{
		provider: provider,
		httpClient: &http.Client{
			Timeout: provider.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
			),
		},
		logger: logger,
	}
}

// Shutdown releases pooled provider connections
func (s *GoogleTranslationService) Shutdown(_ context.Context) error {
	s.httpClient.CloseIdleConnections()
	return nil
}

// GoogleTranslateRequest represents the request format for Google Translate API
type GoogleTranslateRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Source string   `json:"source,omitempty"`
	Format string   `json:"format"`
}

// GoogleTranslateResponse represents the response format from Google Translate API
type GoogleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// GoogleDetectResponse represents the response format from the detect endpoint
type GoogleDetectResponse struct {
	Data struct {
		Detections [][]struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		} `json:"detections"`
	} `json:"data"`
}

// Translate translates text. An empty source language is detected by the provider.
func (s *GoogleTranslationService) Translate(ctx context.Context, req serviceinterfaces.TranslateRequest) (result *serviceinterfaces.TranslateResponse, err error) {
	ctx, span := observability.TraceTranslationFunction(ctx, "translate_google",
		attribute.String("translation.provider", s.provider.Code),
		attribute.String("translation.target_language", req.TargetLanguage),
		attribute.String("translation.source_language", req.SourceLanguage),
		observability.AttributeInputLength(len(req.Text)),
	)
	defer observability.FinishSpan(span, &err)

	if err := s.checkRequest(req.Text); err != nil {
		return nil, err
	}
	if req.TargetLanguage == "" {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Target language is required", "")
	}

	body := GoogleTranslateRequest{
		Q:      []string{req.Text},
		Target: req.TargetLanguage,
		Source: req.SourceLanguage,
		Format: "text",
	}
	var googleResp GoogleTranslateResponse
	if err := s.post(ctx, s.provider.APIEndpoint, body, &googleResp); err != nil {
		return nil, err
	}
	if len(googleResp.Data.Translations) == 0 {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeTranslationProvider, contextutils.SeverityError,
			"No translation returned from Google Translate API", "")
	}

	translation := googleResp.Data.Translations[0]
	source := req.SourceLanguage
	if source == "" {
		source = translation.DetectedSourceLanguage
	}
	return &serviceinterfaces.TranslateResponse{
		TranslatedText: translation.TranslatedText,
		SourceLanguage: source,
		TargetLanguage: req.TargetLanguage,
	}, nil
}

// Detect returns the most likely language code of text
func (s *GoogleTranslationService) Detect(ctx context.Context, text string) (result string, err error) {
	ctx, span := observability.TraceTranslationFunction(ctx, "detect_google",
		attribute.String("translation.provider", s.provider.Code),
		observability.AttributeInputLength(len(text)),
	)
	defer observability.FinishSpan(span, &err)

	if err := s.checkRequest(text); err != nil {
		return "", err
	}
	var detectResp GoogleDetectResponse
	if err := s.post(ctx, s.provider.DetectEndpoint, map[string]string{"q": text}, &detectResp); err != nil {
		return "", err
	}
	if len(detectResp.Data.Detections) == 0 || len(detectResp.Data.Detections[0]) == 0 {
		return "", contextutils.NewAppError(contextutils.ErrorCodeTranslationProvider, contextutils.SeverityError,
			"Invalid response from Google detect API", "")
	}
	result = detectResp.Data.Detections[0][0].Language
	span.SetAttributes(observability.AttributeLanguage(result))
	return result, nil
}

func (s *GoogleTranslationService) checkRequest(text string) error {
	if s.provider.APIKey == "" {
		return contextutils.NewAppError(contextutils.ErrorCodeInternalError, contextutils.SeverityError,
			"Translation API key not configured", "")
	}
	if len(text) == 0 {
		return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Text cannot be empty", "")
	}
	if len(text) > s.provider.MaxTextLength {
		return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
			fmt.Sprintf("Text cannot exceed %d characters", s.provider.MaxTextLength), "")
	}
	return nil
}

// post sends a JSON body to endpoint and decodes a JSON response into out
func (s *GoogleTranslationService) post(ctx context.Context, endpoint string, body, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return contextutils.WrapError(err, "failed to marshal request")
	}

	url := fmt.Sprintf("%s%s?key=%s", s.provider.BaseURL, endpoint, s.provider.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return contextutils.WrapError(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		// The URL carries the API key; keep it out of errors and logs.
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeTranslationProvider, contextutils.SeverityError,
			"translation request failed", contextutils.RedactURLKey(err.Error()), nil)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Warn(ctx, "Translation provider returned an error", map[string]interface{}{
			"status":   resp.StatusCode,
			"provider": s.provider.Code,
			"endpoint": endpoint,
		})
		return contextutils.NewAppError(contextutils.ErrorCodeTranslationProvider, contextutils.SeverityError,
			fmt.Sprintf("Google Translate API error: %d", resp.StatusCode), strings.TrimSpace(string(respBody)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeTranslationProvider, contextutils.SeverityError,
			"failed to decode provider response", "", err)
	}
	return nil
}

// ValidateLanguageCode validates that a language code parses as a BCP 47 tag
func (s *GoogleTranslationService) ValidateLanguageCode(langCode string) error {
	return validateLanguageCode(langCode)
}

// GetSupportedLanguages returns a list of supported target languages for translation
func (s *GoogleTranslationService) GetSupportedLanguages() []string {
	return []string{
		"af", "sq", "am", "ar", "hy", "az", "eu", "be", "bn", "bs", "bg", "ca", "ceb", "ny", "zh", "zh-CN", "zh-TW",
		"co", "hr", "cs", "da", "nl", "en", "eo", "et", "tl", "fi", "fr", "fy", "gl", "ka", "de", "el", "gu", "ht",
		"ha", "haw", "iw", "hi", "hmn", "hu", "is", "ig", "id", "ga", "it", "ja", "jw", "kn", "kk", "km", "ko", "ku",
		"ky", "lo", "la", "lv", "lt", "lb", "mk", "mg", "ms", "ml", "mt", "mi", "mr", "mn", "my", "ne", "no", "ps",
		"fa", "pl", "pt", "pa", "ro", "ru", "sm", "gd", "sr", "st", "sn", "sd", "si", "sk", "sl", "so", "es", "su",
		"sw", "sv", "tg", "ta", "te", "th", "tr", "uk", "ur", "uz", "vi", "cy", "xh", "yi", "yo", "zu",
	}
}

// NoopTranslationService echoes text back. It is used when translation is disabled.
type NoopTranslationService struct{}

// NewNoopTranslationService creates a new noop translation service instance
func NewNoopTranslationService() *NoopTranslationService {
	return &NoopTranslationService{}
}

// Translate returns the original text unchanged
func (s *NoopTranslationService) Translate(_ context.Context, req serviceinterfaces.TranslateRequest) (*serviceinterfaces.TranslateResponse, error) {
	return &serviceinterfaces.TranslateResponse{
		TranslatedText: req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Confidence:     1.0,
	}, nil
}

// Detect always reports English
func (s *NoopTranslationService) Detect(_ context.Context, _ string) (string, error) {
	return "en", nil
}

// ValidateLanguageCode validates that a language code parses as a BCP 47 tag
func (s *NoopTranslationService) ValidateLanguageCode(langCode string) error {
	return validateLanguageCode(langCode)
}

// GetSupportedLanguages returns a list of supported target languages for translation
func (s *NoopTranslationService) GetSupportedLanguages() []string {
	return []string{"en", "es", "fr", "de", "it", "pt", "ru", "ja", "ko", "zh"}
}

func validateLanguageCode(langCode string) error {
	if len(langCode) < 2 || len(langCode) > 10 {
		return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Language code must be 2-10 characters", "")
	}
	if _, err := language.Parse(langCode); err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Invalid language code format", langCode, err)
	}
	return nil
}

// NewTranslationService picks the provider from configuration. Disabled or
// unknown providers get the noop service.
func NewTranslationService(cfg *config.Config, logger *observability.Logger) TranslationServiceInterface {
	if !cfg.Translation.Enabled {
		return NewNoopTranslationService()
	}

	providerConfig, exists := cfg.Translation.Providers[cfg.Translation.DefaultProvider]
	if !exists {
		logger.Warn(context.Background(), "Translation provider not configured, using noop", map[string]interface{}{
			"provider": cfg.Translation.DefaultProvider,
		})
		return NewNoopTranslationService()
	}

	switch providerConfig.Code {
	case "google":
		logger.Info(context.Background(), "Translation provider configured", map[string]interface{}{
			"provider": providerConfig.Name,
			"base_url": providerConfig.BaseURL,
			"api_key":  contextutils.MaskAPIKey(providerConfig.APIKey),
		})
		return NewGoogleTranslationService(providerConfig, logger)
	default:
		logger.Warn(context.Background(), "Unsupported translation provider, using noop", map[string]interface{}{
			"provider": providerConfig.Code,
		})
		return NewNoopTranslationService()
	}
}
