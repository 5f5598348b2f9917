package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"verbtrainer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startQuiz(t *testing.T, client *testClient) QuizResponse {
	t.Helper()
	w := client.do("POST", "/v1/quiz/start", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp QuizResponse
	decodeJSON(t, w, &resp)
	require.NotNil(t, resp.State.Question)
	return resp
}

// expectedAnswer asks the generate endpoint for the first-sense phrase of the question
func expectedAnswer(t *testing.T, client *testClient, q *models.QuizQuestion) string {
	t.Helper()
	w := client.do("POST", "/v1/generate", fmt.Sprintf(`{"infinitive":%q,"tense":%q,"pronoun":%d}`,
		q.Infinitive, q.Tense.String(), int(q.Pronoun)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body GenerateResponse
	decodeJSON(t, w, &body)
	return body.Phrase
}

func TestQuizHandler_InitialStateIsIdle(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	w := client.do("GET", "/v1/quiz", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp QuizResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, models.QuizPhaseIdle, resp.State.Phase)
	assert.Nil(t, resp.State.Question)
}

func TestQuizHandler_StartPersistsQuestionInSession(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	started := startQuiz(t, client)
	assert.Equal(t, models.QuizPhaseAwaitingAnswer, started.State.Phase)
	assert.NotEmpty(t, started.State.Question.ID)
	assert.NotEmpty(t, started.State.Question.Prompt)
	assert.NotContains(t, client.do("GET", "/v1/quiz", "").Body.String(), "expected")

	w := client.do("GET", "/v1/quiz", "")
	var current QuizResponse
	decodeJSON(t, w, &current)
	assert.Equal(t, started.State.Question.ID, current.State.Question.ID)
	assert.Equal(t, started.State.Question.Tense, current.State.Question.Tense)
}

func TestQuizHandler_CorrectAnswer(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))
	started := startQuiz(t, client)
	answer := expectedAnswer(t, client, started.State.Question)

	w := client.do("POST", "/v1/quiz/answer", fmt.Sprintf(`{"answer":%q}`, "  "+answer+"  "))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp QuizResponse
	decodeJSON(t, w, &resp)
	require.NotNil(t, resp.Feedback)
	assert.Equal(t, models.QuizResultCorrect, resp.Feedback.Result)
	assert.Equal(t, "Correct!", resp.Feedback.Message)
	assert.Equal(t, answer, resp.Feedback.Answer)
	assert.NotEmpty(t, resp.Feedback.Rows)
	assert.Equal(t, models.QuizPhaseRevealed, resp.State.Phase)

	w = client.do("POST", "/v1/quiz/answer", `{"answer":"again"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	var body map[string]interface{}
	decodeJSON(t, w, &body)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestQuizHandler_WrongAnswerThenReveal(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))
	client.headers["Accept-Language"] = "es"
	started := startQuiz(t, client)
	answer := expectedAnswer(t, client, started.State.Question)

	w := client.do("POST", "/v1/quiz/answer", `{"answer":"definitely not it"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp QuizResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, models.QuizResultIncorrect, resp.Feedback.Result)
	assert.Equal(t, "Incorrecto. ¡Inténtalo de nuevo!", resp.Feedback.Message)
	assert.True(t, resp.Feedback.CanShowAnswer)
	assert.Empty(t, resp.Feedback.Answer)
	assert.Equal(t, 1, resp.State.Attempts)
	assert.Equal(t, models.QuizPhaseAwaitingAnswer, resp.State.Phase)

	w = client.do("POST", "/v1/quiz/reveal", "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Equal(t, models.QuizResultRevealed, resp.Feedback.Result)
	assert.Equal(t, "Respuesta: "+answer, resp.Feedback.Message)
	assert.Equal(t, models.QuizPhaseRevealed, resp.State.Phase)

	next := startQuiz(t, client)
	assert.Equal(t, models.QuizPhaseAwaitingAnswer, next.State.Phase)
	assert.Zero(t, next.State.Attempts)
}

func TestQuizHandler_EmptyAnswerIsIgnored(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))
	started := startQuiz(t, client)

	w := client.do("POST", "/v1/quiz/answer", `{"answer":"   "}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp QuizResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, models.QuizResultIgnored, resp.Feedback.Result)
	assert.Equal(t, started.State, resp.State)
}

func TestQuizHandler_NoActiveQuestion(t *testing.T) {
	client := newTestClient(t, newTestRouter(t, nil))

	for _, path := range []string{"/v1/quiz/reveal", "/v1/quiz/answer"} {
		body := ""
		if path == "/v1/quiz/answer" {
			body = `{"answer":"I speak"}`
		}
		w := client.do("POST", path, body)
		assert.Equal(t, http.StatusConflict, w.Code, path)

		var resp map[string]interface{}
		decodeJSON(t, w, &resp)
		assert.Equal(t, "NO_ACTIVE_QUIZ", resp["code"], path)
	}
}

func TestQuizHandler_SessionsAreIsolated(t *testing.T) {
	router := newTestRouter(t, nil)
	alice := newTestClient(t, router)
	bob := newTestClient(t, router)

	startQuiz(t, alice)

	w := bob.do("POST", "/v1/quiz/reveal", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}
