// Package pipeline composes the cleaning stages — normalize, validate,
// resolve, score — over one in-memory batch of collector records.
//
// The pipeline is synchronous and pure: it performs no I/O, holds no state
// across invocations, and never fails on malformed input. Processing order
// is input order; callers must treat it as significant, since it decides
// which record becomes the merge target among near-duplicates.
package pipeline

import (
	"context"

	"github.com/fennecworks/dealscope/pkg/dedupe"
	"github.com/fennecworks/dealscope/pkg/logging"
	"github.com/fennecworks/dealscope/pkg/normalize"
	"github.com/fennecworks/dealscope/pkg/quality"
	"github.com/fennecworks/dealscope/pkg/record"
)

// Pipeline cleans batches of loose collector records into merged, scored
// entity records.
type Pipeline struct {
	normalizer *normalize.Normalizer
	resolver   *dedupe.Resolver
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTables substitutes the normalizer lookup tables.
func WithTables(tables normalize.Tables) Option {
	return func(p *Pipeline) {
		p.normalizer = normalize.New(tables)
	}
}

// WithThreshold overrides the resolver's similarity threshold.
func WithThreshold(threshold float64) Option {
	return func(p *Pipeline) {
		p.resolver = dedupe.New(dedupe.WithThreshold(threshold))
	}
}

// New creates a Pipeline with default tables and threshold.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		normalizer: normalize.Default(),
		resolver:   dedupe.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clean runs the full pipeline over one batch and returns a new result;
// the input is not modified. It never returns an error: malformed fields
// degrade to defaults and unusable records are dropped, both reflected in
// the result's stats.
func (p *Pipeline) Clean(ctx context.Context, batch []record.Raw) *Result {
	logger := logging.FromContext(ctx)
	result := newResult()
	result.Stats.Collected = len(batch)

	logger.Info().Int("records", len(batch)).Msg("Cleaning batch")

	// Stage 1: per-record normalization.
	normalized := make([]record.Record, 0, len(batch))
	for _, raw := range batch {
		normalized = append(normalized, p.normalizer.Record(raw))
	}

	// Stage 2: drop records without the minimum to be useful. Dropping is
	// a policy outcome, not an error; garbage collector output is expected.
	valid := make([]record.Record, 0, len(normalized))
	for _, rec := range normalized {
		if normalize.Valid(rec) {
			valid = append(valid, rec)
		}
	}
	result.Stats.Valid = len(valid)
	result.Stats.Dropped = len(normalized) - len(valid)

	logger.Info().
		Int("valid", result.Stats.Valid).
		Int("dropped", result.Stats.Dropped).
		Msg("Validated batch")

	// Stage 3: entity resolution and merge.
	resolved, resolveStats := p.resolver.Resolve(valid)
	result.Stats.Merged = resolveStats.Merged
	result.Stats.Unique = resolveStats.Unique

	logger.Info().
		Int("unique", result.Stats.Unique).
		Int("merged", result.Stats.Merged).
		Msg("Resolved entities")

	// Stage 4: completeness scoring.
	for i := range resolved {
		quality.Apply(&resolved[i])
	}

	result.Records = resolved
	result.finalize()

	logger.Debug().
		Dur("duration", result.Stats.Duration).
		Msg("Batch cleaned")

	return result
}
