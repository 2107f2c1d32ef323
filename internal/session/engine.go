package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/skillpath/analytics/internal/bkt"
	"github.com/skillpath/analytics/internal/nlp"
)

// Archiver receives finalized session results for durable storage.
// The engine treats archiving as best-effort: a failed write is logged
// and never blocks the finalize result.
type Archiver interface {
	ArchiveSession(ctx context.Context, rec ArchiveRecord) error
}

// ArchiveRecord is the durable tuple handed to the persistence layer.
type ArchiveRecord struct {
	SessionID          string   `json:"session_id"`
	UserID             string   `json:"user_id"`
	Language           string   `json:"language"`
	FinalScore         int      `json:"final_score"`
	TotalQuestions     int      `json:"total_questions"`
	CorrectAnswers     int      `json:"correct_answers"`
	SkillAreasAssessed int      `json:"skill_areas_assessed"`
	WeakAreas          []string `json:"weak_areas"`
	StrongAreas        []string `json:"strong_areas"`
	StartedAt          int64    `json:"started_at"`
	FinishedAt         int64    `json:"finished_at"`
}

// Engine orchestrates session lifecycle and analytics. It is safe for
// concurrent use across different sessions; calls for one session must
// be serialized by the caller.
type Engine struct {
	registry Registry
	analyzer nlp.Analyzer
	archiver Archiver
	params   *bkt.Parameters
}

type Option func(*Engine)

// WithAnalyzer overrides the text analyzer (default: local heuristics).
func WithAnalyzer(a nlp.Analyzer) Option { return func(e *Engine) { e.analyzer = a } }

// WithArchiver enables durable archiving of finalized sessions.
func WithArchiver(a Archiver) Option { return func(e *Engine) { e.archiver = a } }

// WithParameters sets custom BKT parameters for new skill states.
func WithParameters(p bkt.Parameters) Option { return func(e *Engine) { e.params = &p } }

func NewEngine(registry Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		analyzer: nlp.Fallback{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// StartSession allocates a new active session and returns its id.
func (e *Engine) StartSession(userID, language string) (string, error) {
	id := newSessionID()
	s := &Session{
		ID:        id,
		UserID:    userID,
		Language:  language,
		Status:    StatusActive,
		StartTime: time.Now(),
		States:    map[string]bkt.State{},
	}
	if err := e.registry.Put(s); err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	log.WithFields(log.Fields{"session": id, "user": userID, "language": language}).
		Info("session started")
	return id, nil
}

// newSessionID builds a timestamped id with a random suffix, unique
// with overwhelming probability.
func newSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}

// ProcessResponse grades one answer, advances the skill's knowledge
// state, and returns a fresh analytics snapshot. The text analysis
// sub-step is best-effort: on failure the snapshot simply omits
// NLPInsights.
func (e *Engine) ProcessResponse(ctx context.Context, sessionID string, in Input) (SkillAnalytics, error) {
	s, err := e.registry.Get(sessionID)
	if err != nil {
		return SkillAnalytics{}, err
	}
	if s.Status != StatusActive {
		return SkillAnalytics{}, fmt.Errorf("%w: session %s is %s", ErrInvalidState, sessionID, s.Status)
	}

	correct := normalizeAnswer(in.UserAnswer) == normalizeAnswer(in.CorrectAnswer)
	resp := bkt.Response{
		Correct:    correct,
		SkillArea:  in.SkillArea,
		Difficulty: in.Difficulty,
		TimeSpent:  in.TimeSpent,
	}

	state, ok := s.States[in.SkillArea]
	if !ok {
		state = bkt.InitializeSkill(in.SkillArea, e.params)
		s.SkillOrder = append(s.SkillOrder, in.SkillArea)
	}
	state, err = bkt.UpdateKnowledge(state, resp)
	if err != nil {
		// Invariant breach; do not record the response.
		return SkillAnalytics{}, fmt.Errorf("process response for %s: %w", sessionID, err)
	}
	s.States[in.SkillArea] = state
	s.Responses = append(s.Responses, resp)

	var insights *nlp.Analysis
	if a, aerr := e.analyzer.Analyze(ctx, nlp.Request{
		Text:    in.Question + " " + in.UserAnswer,
		Context: "quiz_response",
	}); aerr == nil {
		insights = &a
	} else {
		log.WithError(aerr).WithField("session", sessionID).Debug("text analysis skipped")
	}

	return snapshotAnalytics(s, in.SkillArea, insights), nil
}

// Snapshot returns the session-wide analytics view without mutating
// anything. Works for active and finalized sessions.
func (e *Engine) Snapshot(sessionID string) (SkillAnalytics, error) {
	s, err := e.registry.Get(sessionID)
	if err != nil {
		return SkillAnalytics{}, err
	}
	return overallAnalytics(s), nil
}

// FinalizeSession closes the session and computes the final score and
// summary. Calling it again recomputes the end time and returns an
// equivalent result; the session is logically consumed by the first
// call. Further responses are rejected.
func (e *Engine) FinalizeSession(ctx context.Context, sessionID string) (FinalizeResult, error) {
	s, err := e.registry.Get(sessionID)
	if err != nil {
		return FinalizeResult{}, err
	}

	s.EndTime = time.Now()
	s.Status = StatusFinalized

	states := s.orderedStates()
	finalScore := 0
	if len(states) > 0 {
		sum := 0.0
		for _, st := range states {
			sum += st.KnowledgeProbability
		}
		finalScore = round(sum / float64(len(states)) * 100)
	}
	s.FinalScore = finalScore

	correct := 0
	for _, r := range s.Responses {
		if r.Correct {
			correct++
		}
	}
	result := FinalizeResult{
		FinalScore:       finalScore,
		OverallAnalytics: overallAnalytics(s),
		SessionSummary: SessionSummary{
			DurationMs:         s.EndTime.Sub(s.StartTime).Milliseconds(),
			TotalQuestions:     len(s.Responses),
			CorrectAnswers:     correct,
			SkillAreasAssessed: len(s.States),
		},
	}

	if e.archiver != nil {
		rec := ArchiveRecord{
			SessionID:          s.ID,
			UserID:             s.UserID,
			Language:           s.Language,
			FinalScore:         finalScore,
			TotalQuestions:     result.SessionSummary.TotalQuestions,
			CorrectAnswers:     correct,
			SkillAreasAssessed: result.SessionSummary.SkillAreasAssessed,
			WeakAreas:          result.OverallAnalytics.WeakAreas,
			StrongAreas:        result.OverallAnalytics.StrongAreas,
			StartedAt:          s.StartTime.Unix(),
			FinishedAt:         s.EndTime.Unix(),
		}
		if aerr := e.archiver.ArchiveSession(ctx, rec); aerr != nil {
			log.WithError(aerr).WithField("session", sessionID).Warn("session archive failed")
		}
	}

	log.WithFields(log.Fields{"session": sessionID, "score": finalScore}).Info("session finalized")
	return result, nil
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
