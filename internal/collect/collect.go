// Package collect gathers raw startup records from configured sources.
// Collectors return loose maps on purpose: the cleaning pipeline owns all
// normalization, so a collector never reshapes or repairs what it reads.
package collect

import (
	"context"

	"github.com/fennecworks/dealscope/pkg/errors"
	"github.com/fennecworks/dealscope/pkg/logging"
	"github.com/fennecworks/dealscope/pkg/record"
)

// Collector is one source of raw startup records.
type Collector interface {
	// Name identifies the collector in logs and provenance.
	Name() string

	// Collect fetches the source's current records.
	Collect(ctx context.Context) ([]record.Raw, error)
}

// All runs every collector in order and concatenates the results. A failing
// collector is logged and skipped; its records are simply absent from the
// batch. Each record is tagged with its collector's name under "source"
// unless the collector set one itself.
func All(ctx context.Context, collectors ...Collector) ([]record.Raw, error) {
	logger := logging.FromContext(ctx)

	var batch []record.Raw
	var failed int
	for _, c := range collectors {
		if err := ctx.Err(); err != nil {
			return batch, errors.Wrap(err, "collect")
		}

		records, err := c.Collect(ctx)
		if err != nil {
			failed++
			logger.Warn().Err(err).Str("collector", c.Name()).Msg("Collector failed")
			continue
		}
		for _, raw := range records {
			if _, ok := raw[record.FieldSource]; !ok {
				raw[record.FieldSource] = c.Name()
			}
		}
		batch = append(batch, records...)

		logger.Info().
			Str("collector", c.Name()).
			Int("records", len(records)).
			Msg("Collected")
	}

	if failed == len(collectors) && len(collectors) > 0 {
		return nil, errors.Wrap(errors.ErrSourceUnavailable, "collect")
	}
	return batch, nil
}
