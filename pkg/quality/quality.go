// Package quality assigns a completeness-derived data quality score and a
// confidence tier to merged records. Scoring is a pure function of field
// presence on one record; no cross-record comparison is involved.
package quality

import "github.com/fennecworks/dealscope/pkg/record"

// Scoring point values.
const (
	importantFieldPoints = 8  // six fields, 48 points max
	financialFieldPoints = 10 // three fields, 30 points max
	foundersPoints       = 10
	metricsPoints        = 10
	maxScore             = 100
)

// Confidence tier thresholds on the data quality score.
const (
	highThreshold   = 70
	mediumThreshold = 40
)

// Score computes the data quality score for a record, in [0, 100].
func Score(rec record.Record) int {
	score := 0

	important := []string{
		rec.Name, rec.Description, rec.Sector,
		rec.Location, rec.Website, rec.Email,
	}
	for _, field := range important {
		if field != "" {
			score += importantFieldPoints
		}
	}

	if rec.FundingRaised > 0 {
		score += financialFieldPoints
	}
	if rec.Revenue > 0 {
		score += financialFieldPoints
	}
	if rec.Employees > 0 {
		score += financialFieldPoints
	}

	if len(rec.Founders) > 0 {
		score += foundersPoints
	}
	if len(rec.Metrics) > 0 {
		score += metricsPoints
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// Confidence maps a data quality score to its tier: high above 70,
// medium above 40, low otherwise.
func Confidence(score int) record.Confidence {
	switch {
	case score > highThreshold:
		return record.ConfidenceHigh
	case score > mediumThreshold:
		return record.ConfidenceMedium
	default:
		return record.ConfidenceLow
	}
}

// Apply writes the score and confidence tier onto the record.
func Apply(rec *record.Record) {
	rec.DataQualityScore = Score(*rec)
	rec.Confidence = Confidence(rec.DataQualityScore)
}
