package bkt

import "fmt"

// Recommendations emits one guidance string per state, in input order.
// The three branches are mutually exclusive; a state with probability
// in [0.3, 0.7) and accuracy >= 0.6 emits nothing (kept for
// compatibility with established report output).
func Recommendations(states []State) []string {
	var recs []string
	for _, s := range states {
		accuracy := 0.0
		if s.QuestionCount > 0 {
			accuracy = float64(s.CorrectCount) / float64(s.QuestionCount)
		}
		switch {
		case s.KnowledgeProbability < 0.3:
			recs = append(recs, fmt.Sprintf("Focus on %s fundamentals - current mastery: %s",
				s.SkillArea, MasteryLevel(s.KnowledgeProbability)))
		case s.KnowledgeProbability < 0.7 && accuracy < 0.6:
			recs = append(recs, fmt.Sprintf("Practice more %s problems to improve consistency", s.SkillArea))
		case s.KnowledgeProbability >= 0.7:
			recs = append(recs, fmt.Sprintf("Excellent progress in %s! Consider advanced topics", s.SkillArea))
		}
	}
	return recs
}
