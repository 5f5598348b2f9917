package handlers

import (
	"encoding/json"

	"verbtrainer/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// QuizStateKey is the session key holding the JSON-encoded quiz state
const QuizStateKey = "quiz_state"

// GetQuizStateFromSession returns the learner's quiz state. A missing or
// unreadable value yields the idle state and false.
func GetQuizStateFromSession(c *gin.Context) (models.QuizState, bool) {
	session := sessions.Default(c)
	raw, ok := session.Get(QuizStateKey).(string)
	if !ok || raw == "" {
		return models.NewQuizState(), false
	}
	var state models.QuizState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return models.NewQuizState(), false
	}
	return state, true
}

// SaveQuizStateToSession replaces the stored quiz state wholesale
func SaveQuizStateToSession(c *gin.Context, state models.QuizState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	session := sessions.Default(c)
	session.Set(QuizStateKey, string(data))
	return session.Save()
}
