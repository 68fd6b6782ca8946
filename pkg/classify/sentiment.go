package classify

import "strings"

// SentimentAnalyzer scores French news text with fixed word lists. Scores
// run from -1 (very negative) to 1 (very positive).
type SentimentAnalyzer struct {
	positive []string
	negative []string
}

// NewSentimentAnalyzer creates an analyzer with the standard word lists.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{
		positive: []string{
			"succès", "croissance", "innovation", "excellent", "leader",
			"expansion", "record", "réussite", "performant", "prometteur",
		},
		negative: []string{
			"échec", "problème", "difficulté", "crise", "faillite",
			"licenciement", "perte", "baisse", "retard", "risque",
		},
	}
}

// Analyze scores a set of texts, averaging per-text word-ratio scores and
// clamping the result to [-1, 1]. An empty set scores 0.
func (a *SentimentAnalyzer) Analyze(texts []string) float64 {
	if len(texts) == 0 {
		return 0
	}

	total := 0.0
	for _, text := range texts {
		lower := strings.ToLower(text)

		positives := 0
		for _, word := range a.positive {
			if strings.Contains(lower, word) {
				positives++
			}
		}
		negatives := 0
		for _, word := range a.negative {
			if strings.Contains(lower, word) {
				negatives++
			}
		}

		words := len(strings.Fields(text))
		if words == 0 {
			words = 1
		}
		total += float64(positives-negatives) / float64(words)
	}

	score := total / float64(len(texts)) * 10
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
