package bkt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeSkillDefaults(t *testing.T) {
	s := InitializeSkill("Loops", nil)
	assert.Equal(t, "Loops", s.SkillArea)
	assert.Equal(t, 0.1, s.KnowledgeProbability)
	assert.Equal(t, 0, s.QuestionCount)
	assert.Equal(t, 0, s.CorrectCount)
	assert.Equal(t, DefaultParameters(), s.Parameters)
}

func TestInitializeSkillValueEquality(t *testing.T) {
	params := Parameters{PInit: 0.25, PTransit: 0.2, PSlip: 0.05, PGuess: 0.25}
	a := InitializeSkill("Variables", &params)
	b := InitializeSkill("Variables", &params)
	assert.Equal(t, a, b)
	assert.Equal(t, 0.25, a.KnowledgeProbability)

	// Mutating one must not bleed into the other.
	a.QuestionCount = 5
	assert.Equal(t, 0, b.QuestionCount)
}

func TestUpdateKnowledgeSingleCorrect(t *testing.T) {
	s := InitializeSkill("Variables", nil)
	out, err := UpdateKnowledge(s, Response{Correct: true, SkillArea: "Variables"})
	require.NoError(t, err)

	// pObserved = 0.1*0.9 + 0.9*0.2 = 0.27, posterior = 0.09/0.27 = 1/3,
	// newP = 1/3 + 2/3*0.3 = 0.5333...
	assert.InDelta(t, 0.5333, out.KnowledgeProbability, 0.0005)
	assert.Equal(t, 1, out.QuestionCount)
	assert.Equal(t, 1, out.CorrectCount)

	// Input untouched.
	assert.Equal(t, 0.1, s.KnowledgeProbability)
	assert.Equal(t, 0, s.QuestionCount)
}

func TestUpdateKnowledgeIncorrect(t *testing.T) {
	s := InitializeSkill("Variables", nil)
	out, err := UpdateKnowledge(s, Response{Correct: false, SkillArea: "Variables"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.QuestionCount)
	assert.Equal(t, 0, out.CorrectCount)
	// A wrong answer still moves the estimate through the transition
	// term, but the posterior itself shrinks.
	assert.Less(t, out.KnowledgeProbability, 0.5)
	assert.GreaterOrEqual(t, out.KnowledgeProbability, 0.01)
}

func TestClampInvariantLongRuns(t *testing.T) {
	for _, correct := range []bool{true, false} {
		s := InitializeSkill("Recursion", nil)
		for i := 0; i < 200; i++ {
			var err error
			s, err = UpdateKnowledge(s, Response{Correct: correct, SkillArea: "Recursion"})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.KnowledgeProbability, 0.01)
			assert.LessOrEqual(t, s.KnowledgeProbability, 0.99)
		}
		assert.Equal(t, 200, s.QuestionCount)
	}
}

func TestMonotonicCounts(t *testing.T) {
	s := InitializeSkill("Arrays", nil)
	answers := []bool{true, false, true, true, false}
	wantCorrect := 0
	for i, correct := range answers {
		var err error
		s, err = UpdateKnowledge(s, Response{Correct: correct, SkillArea: "Arrays"})
		require.NoError(t, err)
		if correct {
			wantCorrect++
		}
		assert.Equal(t, i+1, s.QuestionCount)
		assert.Equal(t, wantCorrect, s.CorrectCount)
	}
}

func TestUpdateKnowledgeDegenerate(t *testing.T) {
	// Hand-built invalid state: pKnow=0 with pSlip=0 and pGuess=1 makes
	// an incorrect observation impossible. Only reachable by bypassing
	// InitializeSkill and the clamp.
	s := State{
		SkillArea:  "Broken",
		Parameters: Parameters{PInit: 0, PTransit: 0.3, PSlip: 0, PGuess: 1},
	}
	_, err := UpdateKnowledge(s, Response{Correct: false})
	assert.ErrorIs(t, err, ErrDegenerateState)
}

func TestMasteryLevel(t *testing.T) {
	cases := []struct {
		p    float64
		want Mastery
	}{
		{0.95, MasteryExpert},
		{0.75, MasteryAdvanced},
		{0.55, MasteryIntermediate},
		{0.2, MasteryBeginner},
		// Boundary values belong to the higher tier.
		{0.9, MasteryExpert},
		{0.7, MasteryAdvanced},
		{0.5, MasteryIntermediate},
		{0.4999, MasteryBeginner},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MasteryLevel(c.p), "p=%v", c.p)
	}
}

func TestRecommendationsBranches(t *testing.T) {
	states := []State{
		{SkillArea: "Loops", KnowledgeProbability: 0.2, QuestionCount: 4, CorrectCount: 1},
		{SkillArea: "Variables", KnowledgeProbability: 0.5, QuestionCount: 4, CorrectCount: 1},
		{SkillArea: "Functions", KnowledgeProbability: 0.85, QuestionCount: 4, CorrectCount: 4},
	}
	recs := Recommendations(states)
	require.Len(t, recs, 3)
	assert.Contains(t, recs[0], "Focus on Loops fundamentals")
	assert.Contains(t, recs[0], "Beginner")
	assert.Contains(t, recs[1], "Practice more Variables problems")
	assert.Contains(t, recs[2], "Excellent progress in Functions")
}

func TestRecommendationsSilentBand(t *testing.T) {
	// Probability in [0.3, 0.7) with accuracy >= 0.6 emits nothing.
	states := []State{
		{SkillArea: "Objects", KnowledgeProbability: 0.6, QuestionCount: 5, CorrectCount: 4},
	}
	assert.Empty(t, Recommendations(states))
}

func TestRecommendationsZeroQuestions(t *testing.T) {
	// Accuracy counts as 0 when nothing was answered, so the mid band
	// falls into the "practice more" branch.
	states := []State{
		{SkillArea: "Closures", KnowledgeProbability: 0.4},
	}
	recs := Recommendations(states)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Practice more Closures")
}
