// Package predict assigns a 0–100 investability score to cleaned records
// from a weighted combination of quantitative features (funding, team
// size, age) and qualitative signals (media mentions, partnerships,
// government support). It consumes the cleaner's output and writes back
// the predicted_score field; the cleaning core never depends on it.
package predict

import (
	"math"

	"github.com/fennecworks/dealscope/pkg/record"
)

// Feature names used in weights and explanations.
const (
	FeatureFunding      = "funding_amount"
	FeatureTeamSize     = "team_size"
	FeatureCompanyAge   = "founded_years"
	FeatureSectorHot    = "sector_hotness"
	FeatureMediaBuzz    = "media_mentions"
	FeaturePartnerships = "partnerships"
	FeatureGovSupport   = "government_support"
	FeatureRevenue      = "revenue_indicators"
)

// defaultFeatureValue is used when a feature cannot be derived at all.
const defaultFeatureValue = 50.0

// Engine scores records with a fixed weight vector and sector hotness
// table. The zero value is not usable; construct with New.
type Engine struct {
	weights map[string]float64
	hotness map[string]float64
	refYear int
}

// New creates an Engine with the standard weights and sector hotness
// table, using refYear to derive company age.
func New(refYear int) *Engine {
	return &Engine{
		refYear: refYear,
		weights: map[string]float64{
			FeatureFunding:      0.25,
			FeatureTeamSize:     0.15,
			FeatureCompanyAge:   0.10,
			FeatureSectorHot:    0.15,
			FeatureMediaBuzz:    0.10,
			FeaturePartnerships: 0.10,
			FeatureGovSupport:   0.05,
			FeatureRevenue:      0.10,
		},
		hotness: map[string]float64{
			"fintech":    95,
			"ai":         90,
			"healthtech": 85,
			"saas":       85,
			"cleantech":  80,
			"edtech":     75,
			"logistics":  75,
			"ecommerce":  70,
			"proptech":   70,
			"agritech":   65,
			"other":      50,
		},
	}
}

// Score predicts the investability of one record, in [0, 100].
func (e *Engine) Score(rec record.Record) int {
	features := e.features(rec)

	score := 0.0
	for name, weight := range e.weights {
		value, ok := features[name]
		if !ok {
			value = defaultFeatureValue
		}
		score += value * weight
	}

	return int(math.Max(0, math.Min(100, score)))
}

// Apply writes the predicted score onto the record.
func (e *Engine) Apply(rec *record.Record) {
	rec.PredictedScore = e.Score(*rec)
}

// Explanation details each feature's contribution to a score.
type Explanation struct {
	TotalScore int
	Breakdown  map[string]FeatureContribution
}

// FeatureContribution is one feature's value, weight, and weighted share.
type FeatureContribution struct {
	Value        float64
	Weight       float64
	Contribution float64
}

// Explain breaks a record's score down per feature, for transparency.
func (e *Engine) Explain(rec record.Record) Explanation {
	features := e.features(rec)

	explanation := Explanation{
		Breakdown: make(map[string]FeatureContribution, len(e.weights)),
	}

	total := 0.0
	for name, weight := range e.weights {
		value, ok := features[name]
		if !ok {
			value = defaultFeatureValue
		}
		contribution := value * weight
		total += contribution
		explanation.Breakdown[name] = FeatureContribution{
			Value:        value,
			Weight:       weight,
			Contribution: contribution,
		}
	}
	explanation.TotalScore = int(math.Max(0, math.Min(100, total)))

	return explanation
}

// features extracts the normalized feature vector, each in [0, 100].
func (e *Engine) features(rec record.Record) map[string]float64 {
	features := make(map[string]float64, len(e.weights))

	// Funding on a log scale: 10M of funding saturates the feature.
	if rec.FundingRaised > 0 {
		features[FeatureFunding] = math.Min(100,
			math.Log10(float64(rec.FundingRaised)+1)/math.Log10(10_000_000)*100)
	} else {
		features[FeatureFunding] = 0
	}

	// Team size saturates at 100 employees.
	employees := rec.Employees
	if employees == 0 {
		employees = 5
	}
	features[FeatureTeamSize] = math.Min(100, float64(employees))

	// Company age saturates at 10 years.
	if rec.FoundedYear > 0 {
		age := e.refYear - rec.FoundedYear
		features[FeatureCompanyAge] = math.Min(100, float64(age)/10*100)
	} else {
		features[FeatureCompanyAge] = 0
	}

	// Sector hotness from the fixed table.
	if hot, ok := e.hotness[rec.Sector]; ok {
		features[FeatureSectorHot] = hot
	} else {
		features[FeatureSectorHot] = 50
	}

	// Media mentions saturate at 20.
	mentions := extraInt(rec, "media_mentions")
	features[FeatureMediaBuzz] = math.Min(100, float64(mentions)/20*100)

	// Partnerships saturate at 5.
	partnerships := extraLen(rec, "partnerships")
	features[FeaturePartnerships] = math.Min(100, float64(partnerships)/5*100)

	// Government support is a coarse binary signal.
	if record.Truthy(rec.Extra["government_support"]) || record.Truthy(rec.Extra["officially_registered"]) {
		features[FeatureGovSupport] = 80
	} else {
		features[FeatureGovSupport] = 30
	}

	// Revenue on a log scale (5M saturates); without revenue, fall back
	// to funding-stage signals.
	if rec.Revenue > 0 {
		features[FeatureRevenue] = math.Min(100,
			math.Log10(float64(rec.Revenue)+1)/math.Log10(5_000_000)*100)
	} else {
		switch extraString(rec, "stage") {
		case "Series A":
			features[FeatureRevenue] = 60
		case "Seed":
			features[FeatureRevenue] = 40
		default:
			features[FeatureRevenue] = 20
		}
	}

	return features
}

func extraInt(rec record.Record, key string) int {
	switch v := rec.Extra[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func extraLen(rec record.Record, key string) int {
	switch v := rec.Extra[key].(type) {
	case []any:
		return len(v)
	case []string:
		return len(v)
	default:
		return 0
	}
}

func extraString(rec record.Record, key string) string {
	if s, ok := rec.Extra[key].(string); ok {
		return s
	}
	return ""
}
