// Package dedupe partitions a validated batch into groups of records that
// denote the same real-world entity and merges each group into a single
// record, preserving maximal information.
//
// Resolution is name-only: no other field influences whether two records
// are considered duplicates. This deliberately trades precision for
// simplicity — coincidentally similar names will mis-merge, and the same
// entity under materially different names will not merge.
package dedupe

import (
	"strings"

	"github.com/fennecworks/dealscope/internal/textsim"
	"github.com/fennecworks/dealscope/pkg/record"
)

// DefaultThreshold is the name-similarity ratio at or above which two
// records are treated as the same entity.
const DefaultThreshold = 0.85

// Stats describes what resolution did to a batch.
type Stats struct {
	// Incoming is the number of records handed to the resolver.
	Incoming int
	// Merged is the number of records folded into an accepted record.
	Merged int
	// Unique is the number of distinct entities in the output.
	Unique int
}

// Resolver groups and merges duplicate records within one batch. It holds
// no state across calls; each Resolve works on its own accepted list.
type Resolver struct {
	threshold float64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold overrides the similarity threshold. Values outside (0, 1]
// are ignored.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) {
		if threshold > 0 && threshold <= 1 {
			r.threshold = threshold
		}
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Threshold returns the similarity threshold in use.
func (r *Resolver) Threshold() float64 {
	return r.threshold
}

// Resolve processes the batch in input order. Each record either merges
// into the first accepted record whose name matches exactly
// (case-insensitive) or reaches the similarity threshold — first match
// wins, no global best-match search — or is accepted as a new entity.
// The output preserves the order entities were first seen and contains no
// two records sharing a case-insensitive name.
func (r *Resolver) Resolve(batch []record.Record) ([]record.Record, Stats) {
	stats := Stats{Incoming: len(batch)}

	accepted := make([]record.Record, 0, len(batch))
	byName := make(map[string]int, len(batch))

	for _, rec := range batch {
		key := nameKey(rec.Name)

		if idx, ok := byName[key]; ok {
			Merge(&accepted[idx], rec)
			registerName(byName, accepted[idx].Name, idx)
			stats.Merged++
			continue
		}

		if idx, ok := r.closeMatch(accepted, key); ok {
			Merge(&accepted[idx], rec)
			registerName(byName, accepted[idx].Name, idx)
			registerName(byName, rec.Name, idx)
			stats.Merged++
			continue
		}

		entity := rec.Clone()
		entity.AddSource(entity.Source)
		accepted = append(accepted, entity)
		byName[key] = len(accepted) - 1
	}

	stats.Unique = len(accepted)
	return accepted, stats
}

// closeMatch scans accepted records in order and returns the first whose
// name similarity reaches the threshold.
func (r *Resolver) closeMatch(accepted []record.Record, key string) (int, bool) {
	for i := range accepted {
		if textsim.Ratio(key, nameKey(accepted[i].Name)) >= r.threshold {
			return i, true
		}
	}
	return 0, false
}

// Merge folds src into target field by field: a field the target lacks is
// taken from src; when both are numeric the larger wins; when both are
// strings the longer wins; otherwise the target keeps its value.
// Provenance is additive regardless: src's tags join target's Sources and
// are never overwritten.
func Merge(target *record.Record, src record.Record) {
	mergeString(&target.Name, src.Name)
	mergeString(&target.Description, src.Description)
	mergeString(&target.Sector, src.Sector)
	mergeString(&target.Location, src.Location)
	mergeString(&target.Website, src.Website)
	mergeString(&target.Email, src.Email)
	mergeString(&target.Source, src.Source)

	mergeInt64(&target.FundingRaised, src.FundingRaised)
	mergeInt64(&target.Revenue, src.Revenue)
	mergeInt(&target.Employees, src.Employees)
	mergeInt(&target.FoundedYear, src.FoundedYear)
	mergeInt(&target.DataQualityScore, src.DataQualityScore)
	mergeInt(&target.PredictedScore, src.PredictedScore)

	if len(target.Founders) == 0 && len(src.Founders) > 0 {
		target.Founders = append([]string(nil), src.Founders...)
	}
	if len(target.Metrics) == 0 && len(src.Metrics) > 0 {
		target.Metrics = make(map[string]any, len(src.Metrics))
		for k, v := range src.Metrics {
			target.Metrics[k] = v
		}
	}
	if target.Confidence == "" {
		target.Confidence = src.Confidence
	}

	for key, value := range src.Extra {
		mergeExtra(target, key, value)
	}

	// Provenance bypasses the field-merge rule above.
	target.AddSource(src.Source)
	for _, tag := range src.Sources {
		target.AddSource(tag)
	}
}

func mergeString(target *string, src string) {
	if src == "" {
		return
	}
	if *target == "" || len(src) > len(*target) {
		*target = src
	}
}

func mergeInt64(target *int64, src int64) {
	if src > *target {
		*target = src
	}
}

func mergeInt(target *int, src int) {
	if src > *target {
		*target = src
	}
}

// mergeExtra applies the dynamic merge rule to one pass-through field.
func mergeExtra(target *record.Record, key string, value any) {
	if target.Extra == nil {
		target.Extra = make(map[string]any)
	}

	existing, ok := target.Extra[key]
	if !ok || !record.Truthy(existing) {
		target.Extra[key] = value
		return
	}

	if en, eok := asNumber(existing); eok {
		if vn, vok := asNumber(value); vok && vn > en {
			target.Extra[key] = value
		}
		return
	}

	if es, eok := existing.(string); eok {
		if vs, vok := value.(string); vok && len(vs) > len(es) {
			target.Extra[key] = value
		}
		return
	}

	// Type mismatch or target already holds the better value: keep target.
}

func asNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// nameKey lower-cases and trims a name for comparison.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// registerName points an accepted index at a (possibly merge-updated)
// name so later exact-match lookups see the current spelling.
func registerName(byName map[string]int, name string, idx int) {
	key := nameKey(name)
	if _, taken := byName[key]; !taken {
		byName[key] = idx
	}
}
