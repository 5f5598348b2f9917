package contextutils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Locale represents a UI language locale
type Locale string

const (
	// LocaleEnglish represents English language
	LocaleEnglish Locale = "en"
	// LocaleSpanish represents Spanish language
	LocaleSpanish Locale = "es"
)

// MessageKey identifies a non-error UI message
type MessageKey string

const (
	// MessageNoMatchSpanish explains a Spanish lookup that found nothing
	MessageNoMatchSpanish MessageKey = "no_match_spanish"
	// MessageNoMatchEnglish explains an English lookup that found nothing
	MessageNoMatchEnglish MessageKey = "no_match_english"
	// MessageQuizCorrect is the positive quiz feedback
	MessageQuizCorrect MessageKey = "quiz_correct"
	// MessageQuizIncorrect is the retry prompt after a wrong answer
	MessageQuizIncorrect MessageKey = "quiz_incorrect"
	// MessageQuizAnswer prefixes a revealed answer
	MessageQuizAnswer MessageKey = "quiz_answer"
)

// LocalizedMessages contains localized error messages for different locales
type LocalizedMessages struct {
	messages map[ErrorCode]map[Locale]string
	ui       map[MessageKey]map[Locale]string
}

// NewLocalizedMessages creates a new instance of localized messages
func NewLocalizedMessages() *LocalizedMessages {
	return &LocalizedMessages{
		messages: make(map[ErrorCode]map[Locale]string),
		ui:       make(map[MessageKey]map[Locale]string),
	}
}

// AddMessage adds a localized message for a specific error code and locale
func (lm *LocalizedMessages) AddMessage(code ErrorCode, locale Locale, message string) {
	if lm.messages[code] == nil {
		lm.messages[code] = make(map[Locale]string)
	}
	lm.messages[code][locale] = message
}

// AddUIMessage adds a localized UI message
func (lm *LocalizedMessages) AddUIMessage(key MessageKey, locale Locale, message string) {
	if lm.ui[key] == nil {
		lm.ui[key] = make(map[Locale]string)
	}
	lm.ui[key][locale] = message
}

// GetMessage returns the localized message for an error code and locale,
// falling back to English and then to a built-in default.
func (lm *LocalizedMessages) GetMessage(code ErrorCode, locale Locale) string {
	if localeMessages, exists := lm.messages[code]; exists {
		if message, exists := localeMessages[locale]; exists {
			return message
		}
		if message, exists := localeMessages[LocaleEnglish]; exists {
			return message
		}
	}
	return getDefaultMessage(code)
}

// GetUIMessage returns a localized UI message, or the key itself if unknown.
func (lm *LocalizedMessages) GetUIMessage(key MessageKey, locale Locale) string {
	if localeMessages, exists := lm.ui[key]; exists {
		if message, exists := localeMessages[locale]; exists {
			return message
		}
		if message, exists := localeMessages[LocaleEnglish]; exists {
			return message
		}
	}
	return string(key)
}

// GetMessageWithDetails returns a localized message with additional details
func (lm *LocalizedMessages) GetMessageWithDetails(code ErrorCode, locale Locale, details string) string {
	message := lm.GetMessage(code, locale)
	if details != "" {
		return fmt.Sprintf("%s: %s", message, details)
	}
	return message
}

func getDefaultMessage(code ErrorCode) string {
	switch code {
	case ErrorCodeRecordNotFound:
		return "Record not found"
	case ErrorCodeVerbNotFound:
		return "Verb not found"
	case ErrorCodeInvalidInput:
		return "Invalid input"
	case ErrorCodeMissingRequired:
		return "Missing required field"
	case ErrorCodeInvalidFormat:
		return "Invalid format"
	case ErrorCodeValidationFailed:
		return "Validation failed"
	case ErrorCodeCatalogInvalid:
		return "Verb catalog is invalid"
	case ErrorCodeNoActiveQuiz:
		return "No quiz question has been started"
	case ErrorCodeConflict:
		return "Operation conflicts with current state"
	case ErrorCodeServiceUnavailable:
		return "Service temporarily unavailable"
	case ErrorCodeTranslationProvider:
		return "Translation provider error"
	case ErrorCodeTimeout:
		return "Request timeout"
	case ErrorCodeInternalError:
		return "Internal server error"
	default:
		return "An error occurred"
	}
}

// LoadMessagesFromJSON loads localized error messages keyed by code then locale
func (lm *LocalizedMessages) LoadMessagesFromJSON(jsonData string) error {
	var data map[string]map[string]string
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return WrapError(err, "failed to parse localization JSON")
	}

	for codeStr, localeMessages := range data {
		for localeStr, message := range localeMessages {
			lm.AddMessage(ErrorCode(codeStr), Locale(localeStr), message)
		}
	}
	return nil
}

// ParseLocale parses a locale string such as "es-MX" and returns the language part
func ParseLocale(localeStr string) Locale {
	parts := strings.Split(strings.TrimSpace(localeStr), "-")
	if len(parts) > 0 && parts[0] != "" {
		return Locale(strings.ToLower(parts[0]))
	}
	return LocaleEnglish
}

var globalLocalizedMessages = NewLocalizedMessages()

func init() {
	globalLocalizedMessages.AddMessage(ErrorCodeInvalidInput, LocaleSpanish, "Entrada inválida")
	globalLocalizedMessages.AddMessage(ErrorCodeRecordNotFound, LocaleSpanish, "Registro no encontrado")
	globalLocalizedMessages.AddMessage(ErrorCodeVerbNotFound, LocaleSpanish, "Verbo no encontrado")
	globalLocalizedMessages.AddMessage(ErrorCodeNoActiveQuiz, LocaleSpanish, "No hay ninguna pregunta activa")
	globalLocalizedMessages.AddMessage(ErrorCodeConflict, LocaleSpanish, "La operación no es válida en el estado actual")
	globalLocalizedMessages.AddMessage(ErrorCodeTranslationProvider, LocaleSpanish, "Error del proveedor de traducción")
	globalLocalizedMessages.AddMessage(ErrorCodeInternalError, LocaleSpanish, "Error interno del servidor")

	globalLocalizedMessages.AddUIMessage(MessageNoMatchSpanish, LocaleEnglish,
		`This tool is specifically designed for Spanish verbs (e.g., "ser", "estar", "hacer"). For translating other words or phrases, please use the general translation tool.`)
	globalLocalizedMessages.AddUIMessage(MessageNoMatchSpanish, LocaleSpanish,
		`Esta herramienta está diseñada para verbos en español (por ejemplo, "ser", "estar", "hacer"). Para traducir otras palabras o frases, use el traductor general.`)
	globalLocalizedMessages.AddUIMessage(MessageNoMatchEnglish, LocaleEnglish,
		`This tool is specifically designed for Spanish verbs (e.g., "to be", "to have", "to do"). For translating other words or phrases, please use the general translation tool.`)
	globalLocalizedMessages.AddUIMessage(MessageNoMatchEnglish, LocaleSpanish,
		`Esta herramienta está diseñada para verbos en español (por ejemplo, "to be", "to have", "to do"). Para traducir otras palabras o frases, use el traductor general.`)
	globalLocalizedMessages.AddUIMessage(MessageQuizCorrect, LocaleEnglish, "Correct!")
	globalLocalizedMessages.AddUIMessage(MessageQuizCorrect, LocaleSpanish, "¡Correcto!")
	globalLocalizedMessages.AddUIMessage(MessageQuizIncorrect, LocaleEnglish, "Incorrect. Try again!")
	globalLocalizedMessages.AddUIMessage(MessageQuizIncorrect, LocaleSpanish, "Incorrecto. ¡Inténtalo de nuevo!")
	globalLocalizedMessages.AddUIMessage(MessageQuizAnswer, LocaleEnglish, "Answer")
	globalLocalizedMessages.AddUIMessage(MessageQuizAnswer, LocaleSpanish, "Respuesta")
}

// GetLocalizedMessage returns a localized error message using the global instance
func GetLocalizedMessage(code ErrorCode, locale Locale) string {
	return globalLocalizedMessages.GetMessage(code, locale)
}

// GetLocalizedUIMessage returns a localized UI message using the global instance
func GetLocalizedUIMessage(key MessageKey, locale Locale) string {
	return globalLocalizedMessages.GetUIMessage(key, locale)
}

// GetLocalizedMessageWithDetails returns a localized error message with details
func GetLocalizedMessageWithDetails(code ErrorCode, locale Locale, details string) string {
	return globalLocalizedMessages.GetMessageWithDetails(code, locale, details)
}

// GetErrorLocalizedMessage returns a localized message for the error
func GetErrorLocalizedMessage(err error, locale string) string {
	if appErr, ok := err.(*AppError); ok {
		return GetLocalizedMessageWithDetails(appErr.Code, ParseLocale(locale), appErr.Details)
	}
	return "An error occurred"
}
