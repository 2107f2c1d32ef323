package session

import (
	"math"

	"github.com/skillpath/analytics/internal/bkt"
	"github.com/skillpath/analytics/internal/nlp"
)

// round matches round-half-up semantics for the integer percentages in
// reports (so -0.5 rounds to 0, not -1).
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// snapshotAnalytics computes the per-response analytics view: the
// current skill's score plus session-wide weak/strong areas and
// recommendations.
func snapshotAnalytics(s *Session, currentSkillArea string, insights *nlp.Analysis) SkillAnalytics {
	state := s.States[currentSkillArea]
	states := s.orderedStates()

	velocity := 0.0
	if state.QuestionCount > 0 {
		velocity = (state.KnowledgeProbability - state.Parameters.PInit) / float64(state.QuestionCount)
	}

	return SkillAnalytics{
		BKTScore:         round(state.KnowledgeProbability * 100),
		MasteryLevel:     bkt.MasteryLevel(state.KnowledgeProbability),
		LearningVelocity: round(velocity * 100),
		RetentionRate:    retentionRate(s.Responses),
		Recommendations:  withNLPHints(bkt.Recommendations(states), insights),
		WeakAreas:        weakAreas(states),
		StrongAreas:      strongAreas(states),
		NLPInsights:      insights,
	}
}

// overallAnalytics folds every skill state into one report, used at
// finalize time and for read-only snapshots.
func overallAnalytics(s *Session) SkillAnalytics {
	states := s.orderedStates()

	meanP := 0.0
	if len(states) > 0 {
		for _, st := range states {
			meanP += st.KnowledgeProbability
		}
		meanP /= float64(len(states))
	}

	return SkillAnalytics{
		BKTScore:         round(meanP * 100),
		MasteryLevel:     bkt.MasteryLevel(meanP),
		LearningVelocity: round(overallVelocity(states)),
		RetentionRate:    round(overallRetention(s.Responses)),
		Recommendations:  bkt.Recommendations(states),
		WeakAreas:        weakAreas(states),
		StrongAreas:      strongAreas(states),
	}
}

// retentionRate looks at the last 5 responses of the whole session.
func retentionRate(responses []bkt.Response) int {
	if len(responses) == 0 {
		return 0
	}
	recent := responses
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	correct := 0
	for _, r := range recent {
		if r.Correct {
			correct++
		}
	}
	return round(float64(correct) / float64(len(recent)) * 100)
}

// overallVelocity is the mean of per-state knowledge gained per
// question, scaled to a percentage-like unit.
func overallVelocity(states []bkt.State) float64 {
	if len(states) == 0 {
		return 0
	}
	sum := 0.0
	for _, st := range states {
		if st.QuestionCount > 0 {
			sum += (st.KnowledgeProbability - st.Parameters.PInit) / float64(st.QuestionCount)
		}
	}
	return sum / float64(len(states)) * 100
}

func overallRetention(responses []bkt.Response) float64 {
	if len(responses) == 0 {
		return 0
	}
	correct := 0
	for _, r := range responses {
		if r.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(responses)) * 100
}

// Thresholds here are deliberately asymmetric with the mastery tiers:
// weak is < 0.5, strong is > 0.7 (both exclusive).
func weakAreas(states []bkt.State) []string {
	var out []string
	for _, st := range states {
		if st.KnowledgeProbability < 0.5 {
			out = append(out, st.SkillArea)
		}
	}
	return out
}

func strongAreas(states []bkt.State) []string {
	var out []string
	for _, st := range states {
		if st.KnowledgeProbability > 0.7 {
			out = append(out, st.SkillArea)
		}
	}
	return out
}

func withNLPHints(recs []string, insights *nlp.Analysis) []string {
	if insights == nil {
		return recs
	}
	if insights.Sentiment == nlp.SentimentNegative {
		recs = append(recs, "Consider taking breaks between difficult questions")
	}
	if insights.Difficulty > 0.8 {
		recs = append(recs, "Try simplifying your approach to complex problems")
	}
	return recs
}
