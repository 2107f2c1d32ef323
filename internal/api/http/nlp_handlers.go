package http

import (
	"encoding/json"
	"net/http"

	"github.com/skillpath/analytics/internal/nlp"
)

// AnalyzeTextHandler runs a one-off text analysis (remote when
// configured, local heuristics otherwise).
func AnalyzeTextHandler(analyzer nlp.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nlp.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Text == "" {
			http.Error(w, "text required", http.StatusBadRequest)
			return
		}
		a, err := analyzer.Analyze(r.Context(), req)
		if err != nil {
			// The chained analyzer never fails; a bare remote might.
			http.Error(w, "analysis unavailable", http.StatusBadGateway)
			return
		}
		writeJSON(w, a)
	}
}

// QuizPerformanceHandler summarizes a batch of response texts into
// session-level insights.
func QuizPerformanceHandler(analyzer *nlp.Chained) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Responses []string `json:"responses"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		insights, err := analyzer.AnalyzeQuizPerformance(r.Context(), req.Responses)
		if err != nil {
			http.Error(w, "analysis unavailable", http.StatusBadGateway)
			return
		}
		writeJSON(w, insights)
	}
}
