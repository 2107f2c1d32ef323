package bkt

// Mastery is the four-tier discretization of the knowledge probability.
type Mastery string

const (
	MasteryBeginner     Mastery = "Beginner"
	MasteryIntermediate Mastery = "Intermediate"
	MasteryAdvanced     Mastery = "Advanced"
	MasteryExpert       Mastery = "Expert"
)

// MasteryLevel maps a knowledge probability to its tier. Boundaries are
// inclusive on the lower bound of each tier.
func MasteryLevel(p float64) Mastery {
	switch {
	case p >= 0.9:
		return MasteryExpert
	case p >= 0.7:
		return MasteryAdvanced
	case p >= 0.5:
		return MasteryIntermediate
	default:
		return MasteryBeginner
	}
}
