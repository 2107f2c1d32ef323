// Package nlp provides lightweight text analysis for quiz responses:
// a pure offline heuristic engine plus an optional remote analysis
// client with the same output shape.
package nlp

import (
	"regexp"
	"sort"
	"strings"
)

// Sentiment labels for Analysis.Sentiment.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Analysis is the result shape shared by the local heuristics and the
// remote service.
type Analysis struct {
	Sentiment     string   `json:"sentiment"`
	Confidence    float64  `json:"confidence"`
	KeyPhrases    []string `json:"key_phrases"`
	Topics        []string `json:"topics"`
	Difficulty    float64  `json:"difficulty"`
	Comprehension float64  `json:"comprehension"`
}

// Request is one text to analyze. Context is a free-form hint such as
// "quiz_response" or "feedback".
type Request struct {
	Text     string `json:"text"`
	Context  string `json:"context,omitempty"`
	Language string `json:"language,omitempty"`
}

var (
	nonWord     = regexp.MustCompile(`\W+`)
	sentenceEnd = regexp.MustCompile(`[.!?]+`)

	positiveWords = wordSet("good", "great", "excellent", "love", "like", "awesome", "fantastic", "wonderful")
	negativeWords = wordSet("bad", "terrible", "hate", "dislike", "awful", "horrible", "poor", "worst")

	stopWords = wordSet(
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "is", "are", "was", "were", "be", "been", "have",
		"has", "had", "do", "does", "did", "will", "would", "could", "should",
	)
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Analyze runs the full offline analysis. It never fails and needs no
// external services, which makes it the fallback path when the remote
// analyzer is unreachable or unconfigured.
func Analyze(text string) Analysis {
	sentiment, confidence := sentimentOf(text)
	phrases := keyPhrases(text)
	difficulty := difficultyOf(text)

	topics := phrases
	if len(topics) > 3 {
		topics = topics[:3]
	}
	return Analysis{
		Sentiment:     sentiment,
		Confidence:    confidence,
		KeyPhrases:    phrases,
		Topics:        topics,
		Difficulty:    difficulty,
		Comprehension: 1 - difficulty,
	}
}

// sentimentOf counts hits against the curated positive/negative word
// lists. With no hits at all the text is neutral at 0.5 confidence.
func sentimentOf(text string) (string, float64) {
	var pos, neg int
	for _, w := range nonWord.Split(strings.ToLower(text), -1) {
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}
	total := pos + neg
	if total == 0 {
		return SentimentNeutral, 0.5
	}
	ratio := float64(pos) / float64(total)
	switch {
	case ratio > 0.6:
		return SentimentPositive, ratio
	case ratio < 0.4:
		return SentimentNegative, 1 - ratio
	default:
		return SentimentNeutral, 0.5
	}
}

// keyPhrases returns the 5 most frequent tokens longer than 3 chars
// that are not stop words. Ties keep first-encountered order.
func keyPhrases(text string) []string {
	counts := map[string]int{}
	var order []string
	for _, w := range nonWord.Split(strings.ToLower(text), -1) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

// difficultyOf estimates reading difficulty in [0, 1] from average
// sentence length and average word length.
func difficultyOf(text string) float64 {
	var sentences int
	for _, s := range sentenceEnd.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	var words, chars int
	for _, w := range nonWord.Split(text, -1) {
		if w == "" {
			continue
		}
		words++
		chars += len(w)
	}
	if sentences == 0 || words == 0 {
		return 0
	}
	avgWordsPerSentence := float64(words) / float64(sentences)
	avgWordLength := float64(chars) / float64(words)
	d := (avgWordsPerSentence/20 + avgWordLength/10) / 2
	if d > 1 {
		d = 1
	}
	return d
}
