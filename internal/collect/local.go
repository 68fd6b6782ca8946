package collect

import (
	"context"

	"github.com/fennecworks/dealscope/pkg/record"
)

// LocalSources serves a curated catalogue of Moroccan startups from
// incubator portfolios, competition results, media coverage, and public
// support programs. It needs no network access and is the seed source for
// every run; live collectors layer on top of it.
type LocalSources struct{}

// NewLocalSources creates the curated collector.
func NewLocalSources() *LocalSources {
	return &LocalSources{}
}

// Name implements Collector.
func (s *LocalSources) Name() string { return "local_sources" }

// Collect implements Collector. It never fails.
func (s *LocalSources) Collect(ctx context.Context) ([]record.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var batch []record.Raw
	batch = append(batch, incubatorPortfolio()...)
	batch = append(batch, competitionWinners()...)
	batch = append(batch, mediaCoverage()...)
	batch = append(batch, governmentSupported()...)
	return batch, nil
}

func incubatorPortfolio() []record.Raw {
	return []record.Raw{
		{
			"name":         "WafR",
			"description":  "Plateforme de livraison express au Maroc",
			"sector":       "logistics",
			"location":     "Casablanca",
			"founded_year": 2019,
			"incubator":    "DARE Inc",
			"source":       "incubator_portfolio",
			"verified":     true,
		},
		{
			"name":         "Chari",
			"description":  "B2B e-commerce pour épiceries",
			"sector":       "ecommerce",
			"location":     "Casablanca",
			"founded_year": 2020,
			"incubator":    "Y Combinator",
			"source":       "incubator_portfolio",
			"verified":     true,
		},
		{
			"name":         "Hmizate",
			"description":  "Plateforme de conseil psychologique",
			"sector":       "healthtech",
			"location":     "Rabat",
			"founded_year": 2021,
			"incubator":    "DARE Inc",
			"source":       "incubator_portfolio",
			"verified":     true,
		},
	}
}

func competitionWinners() []record.Raw {
	return []record.Raw{
		{
			"name":         "InstaDeep",
			"description":  "IA pour décision intelligente",
			"sector":       "ai",
			"location":     "Casablanca",
			"competition":  "Seedstars",
			"source":       "startup_competition",
			"award_winner": true,
		},
		{
			"name":         "Terraa",
			"description":  "Immobilier digital",
			"sector":       "proptech",
			"location":     "Casablanca",
			"competition":  "Get in the Ring",
			"source":       "startup_competition",
			"award_winner": true,
		},
	}
}

func mediaCoverage() []record.Raw {
	return []record.Raw{
		{
			"name":           "Chari",
			"description":    "Révolutionne la distribution au Maroc",
			"sector":         "ecommerce",
			"location":       "Casablanca",
			"media_mentions": 15,
			"source":         "media_coverage",
		},
		{
			"name":           "WafR",
			"description":    "Leader livraison Maroc",
			"sector":         "logistics",
			"location":       "Casablanca",
			"media_mentions": 12,
			"source":         "media_coverage",
		},
		{
			"name":           "Freterium",
			"description":    "Logistique internationale",
			"sector":         "logistics",
			"location":       "Casablanca",
			"media_mentions": 8,
			"source":         "media_coverage",
		},
	}
}

func governmentSupported() []record.Raw {
	return []record.Raw{
		{
			"name":                  "Guisma",
			"description":           "Plateforme de billetterie",
			"sector":                "saas",
			"location":              "Casablanca",
			"government_support":    "Maroc PME",
			"officially_registered": true,
			"source":                "government_database",
		},
		{
			"name":                  "MyTindy",
			"description":           "E-commerce Amazigh",
			"sector":                "ecommerce",
			"location":              "Agadir",
			"government_support":    "Maroc PME",
			"officially_registered": true,
			"source":                "government_database",
		},
	}
}
