package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"verbtrainer/internal/config"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	"verbtrainer/internal/services"
	"verbtrainer/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTranslationProxy struct {
	mock.Mock
}

func (m *mockTranslationProxy) Handle(ctx context.Context, req serviceinterfaces.ProxyRequest) (*serviceinterfaces.ProxyResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*serviceinterfaces.ProxyResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		IsTest: true,
		Server: config.ServerConfig{
			Port:          "8080",
			SessionSecret: "test-session-secret",
			DefaultLocale: "en",
		},
		Translation: config.TranslationConfig{
			Enabled:       true,
			DefaultTarget: "es",
			LanguageAliases: map[string][]string{
				"french":  {"francais"},
				"spanish": {"espanol"},
			},
		},
	}
}

// newTestRouter wires the real catalog-backed services with a mocked proxy
func newTestRouter(t *testing.T, proxy services.TranslationProxyInterface) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := observability.NewNopLogger()
	bundle, err := services.NewCatalogLoader(logger).Load(context.Background(), config.CatalogConfig{})
	require.NoError(t, err)
	generator := services.NewPhraseGenerator(bundle.Irregulars)
	resolver := services.NewPhraseResolver(bundle.Verbs, generator)
	rng := services.NewRandomSource(7)

	practice := services.NewPracticeService(bundle, generator, resolver, rng, nil, logger)
	quiz := services.NewQuizService(services.NewQuizEngine(bundle.Verbs, generator, rng), nil, logger)
	if proxy == nil {
		proxy = &mockTranslationProxy{}
	}
	return NewRouter(testConfig(), practice, quiz, proxy, logger)
}

// testClient replays session cookies between requests like a browser
type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
	headers map[string]string
}

func newTestClient(t *testing.T, router *gin.Engine) *testClient {
	return &testClient{t: t, router: router, cookies: map[string]*http.Cookie{}, headers: map[string]string{}}
}

func (tc *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	tc.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(tc.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.headers {
		req.Header.Set(k, v)
	}
	for _, cookie := range tc.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		tc.cookies[cookie.Name] = cookie
	}
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestRouter_Health(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	w := client.do("GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decodeJSON(t, w, &body)
	assert.Equal(t, map[string]string{"status": "ok", "service": "verbtrainer"}, body)
}

func TestRouter_Version(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	w := client.do("GET", "/v1/version", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decodeJSON(t, w, &body)
	assert.Equal(t, version.Version, body["version"])
	assert.Equal(t, "verbtrainer", body["service"])
}

func TestRouter_RouteIndexListsAPI(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	w := client.do("GET", "/?json=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	var routes []RouteInfo
	decodeJSON(t, w, &routes)
	found := map[string]bool{}
	for _, route := range routes {
		found[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"POST /v1/practice/spanish",
		"POST /v1/practice/english",
		"POST /v1/generate",
		"GET /v1/verbs",
		"GET /v1/verbs/:infinitive",
		"GET /v1/tenses",
		"GET /v1/prompts/random",
		"GET /v1/quiz",
		"POST /v1/quiz/start",
		"POST /v1/quiz/answer",
		"POST /v1/quiz/reveal",
		"POST /v1/translate",
		"GET /v1/translate/languages",
	} {
		assert.True(t, found[want], "missing route %s", want)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	w := client.do("GET", "/v1/nothing-here", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	decodeJSON(t, w, &body)
	assert.Equal(t, "RECORD_NOT_FOUND", body["code"])
}

func TestRouter_SetsRequestIDAndSecurityHeaders(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	w := client.do("GET", "/v1/tenses", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, config.DefaultCSP, w.Header().Get("Content-Security-Policy"))
}

func TestRouter_RejectsBodiesOutsideSchema(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	w := client.do("POST", "/v1/generate", `{"infinitive":"hablar","tense":"Someday","pronoun":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	decodeJSON(t, w, &body)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
}
