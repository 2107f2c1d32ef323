// Package bkt implements Bayesian Knowledge Tracing: a per-skill
// probabilistic estimate of mastery, updated after each observed
// response via Bayes' rule plus a fixed learning-transition term.
package bkt

import "errors"

// ErrDegenerateState signals a Bayes update whose observation
// probability collapsed to zero. The clamp on every prior update makes
// this unreachable for valid states; seeing it means an invariant was
// violated upstream.
var ErrDegenerateState = errors.New("bkt: degenerate observation probability")

// Parameters are the four classic BKT parameters, fixed for the life
// of a skill state.
type Parameters struct {
	PInit    float64 `json:"p_init"`    // prior probability the skill is already known
	PTransit float64 `json:"p_transit"` // probability of learning after each opportunity
	PSlip    float64 `json:"p_slip"`    // known but answered wrong
	PGuess   float64 `json:"p_guess"`   // unknown but answered right
}

// DefaultParameters returns the standard parameter set used when a
// skill area is initialized without custom values.
func DefaultParameters() Parameters {
	return Parameters{
		PInit:    0.1,
		PTransit: 0.3,
		PSlip:    0.1,
		PGuess:   0.2,
	}
}

// State is the tracked knowledge estimate for one skill area.
type State struct {
	SkillArea            string     `json:"skill_area"`
	KnowledgeProbability float64    `json:"knowledge_probability"`
	QuestionCount        int        `json:"question_count"`
	CorrectCount         int        `json:"correct_count"`
	Parameters           Parameters `json:"parameters"`
}

// Response is one answered question as the tracer sees it.
type Response struct {
	Correct    bool    `json:"correct"`
	SkillArea  string  `json:"skill_area"`
	Difficulty float64 `json:"difficulty"`
	TimeSpent  float64 `json:"time_spent"` // seconds
}

// InitializeSkill returns a fresh state seeded at the prior. A nil
// params pointer selects the defaults.
func InitializeSkill(skillArea string, params *Parameters) State {
	p := DefaultParameters()
	if params != nil {
		p = *params
	}
	return State{
		SkillArea:            skillArea,
		KnowledgeProbability: p.PInit,
		Parameters:           p,
	}
}

// UpdateKnowledge applies one BKT step and returns the new state; the
// input state is not mutated. The posterior is clamped into
// [0.01, 0.99] so later updates can never divide by zero.
func UpdateKnowledge(state State, resp Response) (State, error) {
	p := state.Parameters
	pKnow := state.KnowledgeProbability

	var pCorrectGivenKnow, pCorrectGivenNotKnow float64
	if resp.Correct {
		pCorrectGivenKnow = 1 - p.PSlip
		pCorrectGivenNotKnow = p.PGuess
	} else {
		pCorrectGivenKnow = p.PSlip
		pCorrectGivenNotKnow = 1 - p.PGuess
	}

	pObserved := pKnow*pCorrectGivenKnow + (1-pKnow)*pCorrectGivenNotKnow
	if pObserved == 0 {
		return state, ErrDegenerateState
	}

	// Bayes posterior, then the learning transition.
	pKnowGivenObserved := pKnow * pCorrectGivenKnow / pObserved
	newP := pKnowGivenObserved + (1-pKnowGivenObserved)*p.PTransit

	out := state
	out.KnowledgeProbability = clamp(newP, 0.01, 0.99)
	out.QuestionCount++
	if resp.Correct {
		out.CorrectCount++
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
