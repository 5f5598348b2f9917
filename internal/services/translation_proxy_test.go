package services

import (
	"context"
	"testing"

	"verbtrainer/internal/config"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	contextutils "verbtrainer/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTranslationConfig() config.TranslationConfig {
	return config.TranslationConfig{
		Enabled:         true,
		DefaultProvider: "google",
		DefaultTarget:   "es",
		LanguageAliases: map[string][]string{
			"french":   {"français", "francais", "francés"},
			"mandarin": {"chinese", "中文"},
		},
		SpeechTags: map[string]string{
			"en": "en-US",
			"es": "es-ES",
			"fr": "fr-FR",
		},
	}
}

func newTestProxy(t *testing.T, fake *fakeGoogle) *TranslationProxy {
	t.Helper()
	return NewTranslationProxy(testTranslationConfig(), newTestGoogleService(t, fake), nil, observability.NewNopLogger())
}

func TestParseTranslationIntent(t *testing.T) {
	tests := []struct {
		text     string
		phrase   string
		language string
	}{
		{"How do I say good morning in French?", "good morning", "french"},
		{"how do you say cat in Spanish", "cat", "spanish"},
		{"How to say thank you in Japanese", "thank you", "japanese"},
		{"What is 'dog' in German", "dog", "german"},
		{"Can you translate I am tired into Italian", "I am tired", "italian"},
		{"translate hello to Português", "hello", "português"},
		{"How would I say see you later in Korean", "see you later", "korean"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			intent, ok := ParseTranslationIntent(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.phrase, intent.Phrase)
			assert.Equal(t, tt.language, intent.Language)
		})
	}

	_, ok := ParseTranslationIntent("good morning")
	assert.False(t, ok)
}

func TestQuotedPhrase(t *testing.T) {
	phrase, ok := QuotedPhrase(`How do I say "buenos días" in English`)
	require.True(t, ok)
	assert.Equal(t, "buenos días", phrase)

	phrase, ok = QuotedPhrase("Comment dit-on «bonjour» en espagnol")
	require.True(t, ok)
	assert.Equal(t, "bonjour", phrase)

	_, ok = QuotedPhrase("no quotes here")
	assert.False(t, ok)
}

func TestLanguageResolver_Resolve(t *testing.T) {
	resolver := NewLanguageResolver(testTranslationConfig().LanguageAliases)

	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"French", "fr", true},
		{"français", "fr", true},
		{"Chinese", "zh", true},
		{"mandarin", "zh", true},
		{"russian", "ru", true},
		{"de", "de", true},
		{" D-E ", "de", true},
		{"sv", "sv", true},
		{"klingon", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := resolver.Resolve(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestTranslationProxy_Intent(t *testing.T) {
	fake := newFakeGoogle()
	fake.translations["fr|good morning"] = "bonjour"
	proxy := newTestProxy(t, fake)

	resp, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "How do I say good morning in French?"})
	require.NoError(t, err)
	assert.Equal(t, "bonjour", resp.Result)
	assert.Equal(t, "fr", resp.TargetLanguage)
	assert.Equal(t, "fr-FR", resp.SpeechLang)
	assert.True(t, resp.Intent)

	last := fake.lastRequest(t)
	assert.Equal(t, "en", last.Source)
	assert.Equal(t, []string{"good morning"}, last.Q)
}

func TestTranslationProxy_QuotedPhraseTakesPrecedence(t *testing.T) {
	fake := newFakeGoogle()
	proxy := newTestProxy(t, fake)

	resp, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: `How do I say "me arriesgo" in English`})
	require.NoError(t, err)
	assert.True(t, resp.Intent)
	assert.Equal(t, "en-US", resp.SpeechLang)
	assert.Equal(t, []string{"me arriesgo"}, fake.lastRequest(t).Q)
}

func TestTranslationProxy_NonEnglishIntent(t *testing.T) {
	fake := newFakeGoogle()
	fake.detections["¿Cómo se dice gato en francés?"] = "es"
	fake.translations["en|¿Cómo se dice gato en francés?"] = "How do you say cat in French?"
	fake.translations["fr|cat"] = "chat"
	proxy := newTestProxy(t, fake)

	resp, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "¿Cómo se dice gato en francés?"})
	require.NoError(t, err)
	assert.Equal(t, "chat", resp.Result)
	assert.True(t, resp.Intent)
}

func TestTranslationProxy_DefaultTarget(t *testing.T) {
	t.Run("source equal to target is left for the provider", func(t *testing.T) {
		fake := newFakeGoogle()
		fake.detections["gato"] = "es"
		proxy := newTestProxy(t, fake)

		resp, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "gato"})
		require.NoError(t, err)
		assert.False(t, resp.Intent)
		assert.Equal(t, "es", resp.TargetLanguage)
		assert.Equal(t, "es-ES", resp.SpeechLang)
		assert.Empty(t, fake.lastRequest(t).Source)
	})

	t.Run("explicit target", func(t *testing.T) {
		fake := newFakeGoogle()
		proxy := newTestProxy(t, fake)

		resp, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "hello", Target: "de"})
		require.NoError(t, err)
		assert.Equal(t, "[de] hello", resp.Result)
		assert.Equal(t, "de", resp.SpeechLang)
		assert.Equal(t, "en", fake.lastRequest(t).Source)
	})

	t.Run("unknown intent language falls back to the default target", func(t *testing.T) {
		fake := newFakeGoogle()
		proxy := newTestProxy(t, fake)

		resp, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "How do I say hi in Klingon"})
		require.NoError(t, err)
		assert.False(t, resp.Intent)
		assert.Equal(t, "[es] How do I say hi in Klingon", resp.Result)
	})
}

func TestTranslationProxy_Errors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		proxy := newTestProxy(t, newFakeGoogle())
		_, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "   "})
		assert.ErrorIs(t, err, contextutils.ErrMissingRequired)
	})

	t.Run("invalid explicit target", func(t *testing.T) {
		proxy := newTestProxy(t, newFakeGoogle())
		_, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "hi", Target: "x"})
		assert.ErrorIs(t, err, contextutils.ErrInvalidInput)
	})

	t.Run("provider failure", func(t *testing.T) {
		fake := newFakeGoogle()
		fake.status = 503
		proxy := newTestProxy(t, fake)
		_, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "hello"})
		assert.ErrorIs(t, err, contextutils.ErrTranslationProvider)
	})
}

func TestTranslationProxy_Noop(t *testing.T) {
	cfg := testTranslationConfig()
	cfg.Enabled = false
	proxy := NewTranslationProxy(cfg, NewNoopTranslationService(), nil, observability.NewNopLogger())

	resp, err := proxy.Handle(context.Background(), serviceinterfaces.ProxyRequest{Text: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "hola", resp.Result)
	assert.Equal(t, "noop", proxy.providerName)
}
