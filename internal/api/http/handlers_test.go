package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpath/analytics/internal/nlp"
	"github.com/skillpath/analytics/internal/session"
)

func newTestRouter() (*chi.Mux, *session.Engine) {
	engine := session.NewEngine(session.NewMemoryRegistry())
	analyzer := nlp.NewChained(nil)

	r := chi.NewRouter()
	r.Post("/sessions", StartSessionHandler(engine))
	r.Post("/sessions/{sessionID}/responses", ProcessResponseHandler(engine))
	r.Post("/sessions/{sessionID}/finalize", FinalizeSessionHandler(engine))
	r.Get("/sessions/{sessionID}/analytics", GetAnalyticsHandler(engine))
	r.Post("/nlp/analyze", AnalyzeTextHandler(analyzer))
	r.Post("/nlp/performance", QuizPerformanceHandler(analyzer))
	return r, engine
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, http.MethodPost, "/sessions", map[string]string{
		"user_id": "u1", "language": "JavaScript",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var started struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	require.NotEmpty(t, started.SessionID)

	rec = doJSON(t, r, http.MethodPost, "/sessions/"+started.SessionID+"/responses", map[string]interface{}{
		"question":       "What declares a constant?",
		"user_answer":    "const",
		"correct_answer": "const",
		"skill_area":     "Variables",
		"time_spent":     8.5,
		"difficulty":     0.3,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var analytics session.SkillAnalytics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analytics))
	assert.Equal(t, 53, analytics.BKTScore)

	rec = doJSON(t, r, http.MethodGet, "/sessions/"+started.SessionID+"/analytics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/sessions/"+started.SessionID+"/finalize", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var final session.FinalizeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &final))
	assert.Equal(t, 53, final.FinalScore)
	assert.Equal(t, 1, final.SessionSummary.TotalQuestions)

	// Responses after finalize conflict.
	rec = doJSON(t, r, http.MethodPost, "/sessions/"+started.SessionID+"/responses", map[string]interface{}{
		"user_answer": "x", "correct_answer": "x", "skill_area": "Variables",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUnknownSessionIs404(t *testing.T) {
	r, _ := newTestRouter()
	rec := doJSON(t, r, http.MethodPost, "/sessions/ghost/responses", map[string]interface{}{
		"user_answer": "x", "correct_answer": "x", "skill_area": "Variables",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/sessions/ghost/finalize", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartSessionValidation(t *testing.T) {
	r, _ := newTestRouter()
	rec := doJSON(t, r, http.MethodPost, "/sessions", map[string]string{"user_id": "u1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewBufferString("{"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	rec := doJSON(t, r, http.MethodPost, "/nlp/analyze", map[string]string{
		"text": "this is great and awesome",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var a nlp.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, nlp.SentimentPositive, a.Sentiment)
	assert.Equal(t, 1.0, a.Confidence)

	rec = doJSON(t, r, http.MethodPost, "/nlp/analyze", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizPerformanceEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	rec := doJSON(t, r, http.MethodPost, "/nlp/performance", map[string]interface{}{
		"responses": []string{"awful attempt", "this is terrible"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var insights nlp.PerformanceInsights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insights))
	assert.Equal(t, nlp.SentimentNegative, insights.OverallSentiment)
	assert.NotEmpty(t, insights.Recommendations)
}
