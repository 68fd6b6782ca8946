// Package record defines the entity record that flows through the cleaning
// pipeline. Collectors hand over loosely-structured maps; the normalizer
// turns them into typed Records with one explicit container for fields the
// vocabulary does not recognize.
package record

// Raw is a loosely-structured entity record as produced by collectors.
// No field is required at this boundary; validity is decided by the
// validator stage.
type Raw = map[string]any

// Recognized field names in the collector vocabulary.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldSector        = "sector"
	FieldLocation      = "location"
	FieldWebsite       = "website"
	FieldEmail         = "email"
	FieldFundingRaised = "funding_raised"
	FieldRevenue       = "revenue"
	FieldEmployees     = "employees"
	FieldFoundedYear   = "founded_year"
	FieldFounders      = "founders"
	FieldMetrics       = "metrics"
	FieldSource        = "source"
	FieldSources       = "sources"
	FieldQualityScore  = "data_quality_score"
	FieldConfidence    = "confidence"
	FieldPredicted     = "predicted_score"
)

// Confidence is the coarse quality bucket derived from the data quality score.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Record is one startup entity, pre- or post-resolution.
// Monetary amounts are non-negative integers in a single currency unit (MAD).
type Record struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Sector      string `json:"sector,omitempty" yaml:"sector,omitempty"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`

	FundingRaised int64 `json:"funding_raised,omitempty" yaml:"funding_raised,omitempty"`
	Revenue       int64 `json:"revenue,omitempty" yaml:"revenue,omitempty"`
	Employees     int   `json:"employees,omitempty" yaml:"employees,omitempty"`
	FoundedYear   int   `json:"founded_year,omitempty" yaml:"founded_year,omitempty"`

	Founders []string       `json:"founders,omitempty" yaml:"founders,omitempty"`
	Metrics  map[string]any `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Source is the provenance tag of the collector that produced this record.
	// Sources accumulates provenance tags across merges and is never overwritten.
	Source  string   `json:"source,omitempty" yaml:"source,omitempty"`
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`

	DataQualityScore int        `json:"data_quality_score,omitempty" yaml:"data_quality_score,omitempty"`
	Confidence       Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	PredictedScore   int        `json:"predicted_score,omitempty" yaml:"predicted_score,omitempty"`

	// Extra carries pass-through fields outside the recognized vocabulary.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Founders != nil {
		out.Founders = append([]string(nil), r.Founders...)
	}
	if r.Sources != nil {
		out.Sources = append([]string(nil), r.Sources...)
	}
	if r.Metrics != nil {
		out.Metrics = make(map[string]any, len(r.Metrics))
		for k, v := range r.Metrics {
			out.Metrics[k] = v
		}
	}
	if r.Extra != nil {
		out.Extra = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// AddSource appends a provenance tag to Sources if not already present.
// Empty tags are ignored.
func (r *Record) AddSource(tag string) {
	if tag == "" {
		return
	}
	for _, existing := range r.Sources {
		if existing == tag {
			return
		}
	}
	r.Sources = append(r.Sources, tag)
}

// HasSource reports whether the provenance set contains the given tag.
func (r Record) HasSource(tag string) bool {
	for _, existing := range r.Sources {
		if existing == tag {
			return true
		}
	}
	return false
}

// Map flattens the record back into the loose collector-shaped form,
// omitting absent fields. Useful for serialization and for re-running a
// record through normalization.
func (r Record) Map() Raw {
	m := make(Raw)
	putString := func(key, v string) {
		if v != "" {
			m[key] = v
		}
	}
	putString(FieldName, r.Name)
	putString(FieldDescription, r.Description)
	putString(FieldSector, r.Sector)
	putString(FieldLocation, r.Location)
	putString(FieldWebsite, r.Website)
	putString(FieldEmail, r.Email)
	putString(FieldSource, r.Source)
	if r.FundingRaised != 0 {
		m[FieldFundingRaised] = r.FundingRaised
	}
	if r.Revenue != 0 {
		m[FieldRevenue] = r.Revenue
	}
	if r.Employees != 0 {
		m[FieldEmployees] = r.Employees
	}
	if r.FoundedYear != 0 {
		m[FieldFoundedYear] = r.FoundedYear
	}
	if len(r.Founders) > 0 {
		m[FieldFounders] = append([]string(nil), r.Founders...)
	}
	if len(r.Metrics) > 0 {
		metrics := make(map[string]any, len(r.Metrics))
		for k, v := range r.Metrics {
			metrics[k] = v
		}
		m[FieldMetrics] = metrics
	}
	if len(r.Sources) > 0 {
		m[FieldSources] = append([]string(nil), r.Sources...)
	}
	if r.DataQualityScore != 0 {
		m[FieldQualityScore] = r.DataQualityScore
	}
	if r.Confidence != "" {
		m[FieldConfidence] = string(r.Confidence)
	}
	if r.PredictedScore != 0 {
		m[FieldPredicted] = r.PredictedScore
	}
	for k, v := range r.Extra {
		if _, taken := m[k]; !taken {
			m[k] = v
		}
	}
	return m
}

// Truthy reports whether a loose value counts as populated: non-empty
// strings, non-zero numbers, non-empty collections, true booleans.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case int:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	case uint:
		return val != 0
	case uint64:
		return val != 0
	case float32:
		return val != 0
	case float64:
		return val != 0
	case []string:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
