package contextutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedMessages_AddMessage_GetMessage(t *testing.T) {
	lm := NewLocalizedMessages()

	lm.AddMessage(ErrorCodeInvalidInput, LocaleEnglish, "Invalid input")
	lm.AddMessage(ErrorCodeInvalidInput, LocaleSpanish, "Entrada inválida")

	assert.Equal(t, "Invalid input", lm.GetMessage(ErrorCodeInvalidInput, LocaleEnglish))
	assert.Equal(t, "Entrada inválida", lm.GetMessage(ErrorCodeInvalidInput, LocaleSpanish))

	// Unknown locale falls back to English
	assert.Equal(t, "Invalid input", lm.GetMessage(ErrorCodeInvalidInput, Locale("fr")))

	// Unknown code falls back to the default message
	assert.Equal(t, "An error occurred", lm.GetMessage(ErrorCode("UNKNOWN_ERROR"), LocaleEnglish))
	assert.Equal(t, "Verb not found", lm.GetMessage(ErrorCodeVerbNotFound, LocaleEnglish))
}

func TestLocalizedMessages_GetMessageWithDetails(t *testing.T) {
	lm := NewLocalizedMessages()
	lm.AddMessage(ErrorCodeVerbNotFound, LocaleEnglish, "Verb not found")

	assert.Equal(t, "Verb not found: xyz", lm.GetMessageWithDetails(ErrorCodeVerbNotFound, LocaleEnglish, "xyz"))
	assert.Equal(t, "Verb not found", lm.GetMessageWithDetails(ErrorCodeVerbNotFound, LocaleEnglish, ""))
}

func TestLocalizedMessages_LoadMessagesFromJSON(t *testing.T) {
	jsonData := `{
		"VERB_NOT_FOUND": {"en": "No verb", "es": "Sin verbo"}
	}`

	lm := NewLocalizedMessages()
	assert.NoError(t, lm.LoadMessagesFromJSON(jsonData))
	assert.Equal(t, "Sin verbo", lm.GetMessage(ErrorCodeVerbNotFound, LocaleSpanish))

	assert.Error(t, lm.LoadMessagesFromJSON("{not json"))
}

func TestUIMessages(t *testing.T) {
	assert.Equal(t, "Correct!", GetLocalizedUIMessage(MessageQuizCorrect, LocaleEnglish))
	assert.Equal(t, "¡Correcto!", GetLocalizedUIMessage(MessageQuizCorrect, LocaleSpanish))
	assert.Contains(t, GetLocalizedUIMessage(MessageNoMatchSpanish, LocaleEnglish), `"ser"`)
	assert.Contains(t, GetLocalizedUIMessage(MessageNoMatchEnglish, Locale("de")), `"to be"`)
	assert.Equal(t, "unknown_key", GetLocalizedUIMessage(MessageKey("unknown_key"), LocaleEnglish))
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
	}{
		{"en-US", LocaleEnglish},
		{"es-MX", LocaleSpanish},
		{"ES", LocaleSpanish},
		{"", LocaleEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLocale(tt.in))
		})
	}
}
