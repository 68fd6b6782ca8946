package cmd

import (
	"context"
	"time"

	"github.com/fennecworks/dealscope/internal/collect"
	"github.com/fennecworks/dealscope/internal/store"
	"github.com/fennecworks/dealscope/pkg/classify"
	"github.com/fennecworks/dealscope/pkg/logging"
	"github.com/fennecworks/dealscope/pkg/pipeline"
	"github.com/fennecworks/dealscope/pkg/predict"
	"github.com/fennecworks/dealscope/pkg/quality"
	"github.com/fennecworks/dealscope/pkg/record"
)

// sources assembles the configured collectors: the curated local catalogue
// plus any batch files from configuration.
func sources() []collect.Collector {
	collectors := []collect.Collector{collect.NewLocalSources()}
	for _, path := range cfg.BatchFiles {
		collectors = append(collectors, collect.NewFileSource(path))
	}
	return collectors
}

// referenceYear resolves the year used for company-age features.
func referenceYear() int {
	if cfg.ReferenceYear > 0 {
		return cfg.ReferenceYear
	}
	return time.Now().Year()
}

// runCycle performs one collection cycle: collect from every source, clean
// the batch, and score investability.
func runCycle(ctx context.Context) (*pipeline.Result, error) {
	batch, err := collect.All(ctx, sources()...)
	if err != nil {
		return nil, err
	}

	p := pipeline.New(pipeline.WithThreshold(cfg.Threshold))
	result := p.Clean(ctx, batch)

	enrich(result.Records)

	engine := predict.New(referenceYear())
	for i := range result.Records {
		engine.Apply(&result.Records[i])
	}
	return result, nil
}

// enrich fills gaps the sources left: sectors classified from free text
// and founders extracted from descriptions. Enriched records are rescored
// since classification can move fields from empty to populated.
func enrich(records []record.Record) {
	classifier := classify.NewSectorClassifier()
	extractor := classify.NewEntityExtractor()
	sentiment := classify.NewSentimentAnalyzer()

	for i := range records {
		rec := &records[i]

		if (rec.Sector == "" || rec.Sector == "other") && rec.Description != "" {
			if sector := classifier.Classify(rec.Description, rec.Name); sector != "other" {
				rec.Sector = sector
			}
		}
		if len(rec.Founders) == 0 && rec.Description != "" {
			rec.Founders = extractor.Founders(rec.Description)
		}
		if news := newsTexts(rec.Extra["news"]); len(news) > 0 {
			if rec.Extra == nil {
				rec.Extra = make(map[string]any)
			}
			rec.Extra["sentiment"] = sentiment.Analyze(news)
		}
		quality.Apply(rec)
	}
}

func newsTexts(v any) []string {
	switch texts := v.(type) {
	case []string:
		return texts
	case []any:
		out := make([]string, 0, len(texts))
		for _, t := range texts {
			if s, ok := t.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// persist writes a cycle's output to PostgreSQL and logs the run stats.
func persist(ctx context.Context, result *pipeline.Result) error {
	logger := logging.FromContext(ctx)

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	written, err := db.UpsertBatch(ctx, result.Records)
	if err != nil {
		return err
	}

	if err := db.LogRun(ctx, store.RunStats{
		Collected:  result.Stats.Collected,
		Valid:      result.Stats.Valid,
		Dropped:    result.Stats.Dropped,
		Merged:     result.Stats.Merged,
		Unique:     result.Stats.Unique,
		StartedAt:  result.Stats.StartTime,
		FinishedAt: result.Stats.EndTime,
	}); err != nil {
		return err
	}

	logger.Info().Int("records", written).Msg("Persisted batch")
	return nil
}
