package nlp

import "context"

// PerformanceInsights summarizes analysis across a whole set of quiz
// responses.
type PerformanceInsights struct {
	OverallSentiment string   `json:"overall_sentiment"`
	LearningPatterns []string `json:"learning_patterns"`
	Recommendations  []string `json:"recommendations"`
}

// AnalyzeQuizPerformance analyzes each response text and folds the
// per-response results into session-level insights.
func (c *Chained) AnalyzeQuizPerformance(ctx context.Context, responses []string) (PerformanceInsights, error) {
	var out PerformanceInsights
	if len(responses) == 0 {
		out.OverallSentiment = SentimentNeutral
		return out, nil
	}

	var pos, neg int
	var difficultySum float64
	for _, text := range responses {
		a, err := c.Analyze(ctx, Request{Text: text, Context: "quiz_response"})
		if err != nil {
			return PerformanceInsights{}, err
		}
		switch a.Sentiment {
		case SentimentPositive:
			pos++
		case SentimentNegative:
			neg++
		}
		difficultySum += a.Difficulty
	}

	switch {
	case pos > neg:
		out.OverallSentiment = SentimentPositive
	case neg > pos:
		out.OverallSentiment = SentimentNegative
	default:
		out.OverallSentiment = SentimentNeutral
	}

	avgDifficulty := difficultySum / float64(len(responses))
	if avgDifficulty > 0.7 {
		out.LearningPatterns = append(out.LearningPatterns,
			"High complexity in responses - may indicate advanced understanding or confusion")
	} else if avgDifficulty < 0.3 {
		out.LearningPatterns = append(out.LearningPatterns,
			"Simple response patterns - may indicate basic understanding or lack of detail")
	}

	switch out.OverallSentiment {
	case SentimentNegative:
		out.Recommendations = append(out.Recommendations,
			"Consider reviewing fundamental concepts",
			"Try breaking down complex problems into smaller steps")
	case SentimentPositive:
		out.Recommendations = append(out.Recommendations,
			"Great progress! Consider exploring advanced topics")
	}
	return out, nil
}
