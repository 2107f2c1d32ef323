// Package session owns assessment sessions: per-skill knowledge
// states, the ordered response log, snapshot analytics, and the
// process-wide registry of in-flight sessions.
package session

import (
	"errors"
	"time"

	"github.com/skillpath/analytics/internal/bkt"
	"github.com/skillpath/analytics/internal/nlp"
)

var (
	// ErrSessionNotFound is returned when an operation references an
	// unknown session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidState is returned when an operation is not allowed in
	// the session's current state (e.g. a response after finalize).
	ErrInvalidState = errors.New("session in invalid state for operation")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusFinalized Status = "finalized"
)

// Session is one assessment attempt for one user and topic. It is
// mutated strictly sequentially by the engine; callers serialize
// per-session operations.
type Session struct {
	ID         string               `json:"session_id"`
	UserID     string               `json:"user_id"`
	Language   string               `json:"language"`
	Status     Status               `json:"status"`
	StartTime  time.Time            `json:"start_time"`
	EndTime    time.Time            `json:"end_time"`
	States     map[string]bkt.State `json:"bkt_states"`
	SkillOrder []string             `json:"-"` // first-seen order of skill areas
	Responses  []bkt.Response       `json:"responses"`
	FinalScore int                  `json:"final_score"`
}

// orderedStates returns the skill states in first-seen order. Reports
// and recommendations depend on this being stable across calls.
func (s *Session) orderedStates() []bkt.State {
	out := make([]bkt.State, 0, len(s.SkillOrder))
	for _, area := range s.SkillOrder {
		out = append(out, s.States[area])
	}
	return out
}

// Input is one answered question as submitted by the caller.
type Input struct {
	Question      string  `json:"question"`
	UserAnswer    string  `json:"user_answer"`
	CorrectAnswer string  `json:"correct_answer"`
	SkillArea     string  `json:"skill_area"`
	TimeSpent     float64 `json:"time_spent"`
	Difficulty    float64 `json:"difficulty"`
}

// SkillAnalytics is a derived snapshot, recomputed fresh on every
// request and never stored.
type SkillAnalytics struct {
	BKTScore         int           `json:"bkt_score"`
	MasteryLevel     bkt.Mastery   `json:"mastery_level"`
	LearningVelocity int           `json:"learning_velocity"`
	RetentionRate    int           `json:"retention_rate"`
	Recommendations  []string      `json:"recommendations"`
	WeakAreas        []string      `json:"weak_areas"`
	StrongAreas      []string      `json:"strong_areas"`
	NLPInsights      *nlp.Analysis `json:"nlp_insights,omitempty"`
}

// SessionSummary reports totals for a finalized session.
type SessionSummary struct {
	DurationMs         int64 `json:"duration_ms"`
	TotalQuestions     int   `json:"total_questions"`
	CorrectAnswers     int   `json:"correct_answers"`
	SkillAreasAssessed int   `json:"skill_areas_assessed"`
}

// FinalizeResult is returned by FinalizeSession.
type FinalizeResult struct {
	FinalScore       int            `json:"final_score"`
	OverallAnalytics SkillAnalytics `json:"overall_analytics"`
	SessionSummary   SessionSummary `json:"session_summary"`
}
