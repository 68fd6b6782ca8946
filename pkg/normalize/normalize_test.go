package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennecworks/dealscope/pkg/record"
)

func TestNameTitleCasing(t *testing.T) {
	n := Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "paymorocco", "Paymorocco"},
		{"uppercase", "PAYMOROCCO", "Paymorocco"},
		{"mixed words", "  atlas   capital ", "Atlas Capital"},
		{"acronym preserved", "atlas AI labs", "Atlas AI Labs"},
		{"acronym upcased from lowercase", "saas factory", "SAAS Factory"},
		{"iot acronym", "iot maroc", "IOT Maroc"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Record(record.Raw{record.FieldName: tt.in})
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestEmailNormalization(t *testing.T) {
	n := Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercased", "TEST@Example.COM", "test@example.com"},
		{"trimmed", "  hello@startup.ma  ", "hello@startup.ma"},
		{"dots and dashes", "first.last@my-startup.ma", "first.last@my-startup.ma"},
		{"missing at", "not-an-email", ""},
		{"missing tld", "x@y", ""},
		{"spaces inside", "a b@c.com", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Record(record.Raw{record.FieldEmail: tt.in})
			assert.Equal(t, tt.want, got.Email)
		})
	}
}

func TestSectorSynonyms(t *testing.T) {
	n := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"fin tech", "fintech"},
		{"Financial Technology", "fintech"},
		{"healthcare", "healthtech"},
		{"health tech", "healthtech"},
		{"machine learning", "ai"},
		{"e-commerce", "ecommerce"},
		{"real estate", "proptech"},
		{"fintech", "fintech"},
		{"AI", "ai"},
		{"unknown-xyz", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := n.Record(record.Raw{record.FieldSector: tt.in})
			assert.Equal(t, tt.want, got.Sector)
		})
	}
}

func TestSectorAbsentStaysAbsent(t *testing.T) {
	n := Default()
	got := n.Record(record.Raw{record.FieldName: "NoSector"})
	assert.Empty(t, got.Sector)
}

func TestLocationAliases(t *testing.T) {
	n := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"casa", "Casablanca"},
		{"Casablanca, Morocco", "Casablanca"},
		{"tangier", "Tanger"},
		{"Tanger", "Tanger"},
		{"fez", "Fès"},
		{"FES", "Fès"},
		{"marrakesh", "Marrakech"},
		{"rabat tech park", "Rabat Tech Park"},
		{"", "Morocco"},
		{"   ", "Morocco"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := n.Record(record.Raw{record.FieldLocation: tt.in})
			assert.Equal(t, tt.want, got.Location)
		})
	}
}

func TestURLNormalization(t *testing.T) {
	n := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"startup.ma", "https://startup.ma"},
		{"startup.ma/", "https://startup.ma"},
		{"http://startup.ma", "http://startup.ma"},
		{"https://startup.ma/about/", "https://startup.ma/about"},
		{"  startup.ma  ", "https://startup.ma"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := n.Record(record.Raw{record.FieldWebsite: tt.in})
			assert.Equal(t, tt.want, got.Website)
		})
	}
}

func TestAmountParsing(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int passthrough", 1500000, 1500000},
		{"int64 passthrough", int64(250000), 250000},
		{"float truncated", 1500000.9, 1500000},
		{"millions suffix", "1.5M MAD", 1500000},
		{"million word", "2 million MAD", 2000000},
		{"thousands suffix", "500K", 500000},
		{"thousands separator", "500,000", 500000},
		{"multiple thousands groups", "12,345,678", 12345678},
		{"both separators", "1,500,000.50", 1500000},
		{"comma as decimal", "2,5", 2},
		{"comma as decimal two digits", "1,23", 1},
		{"unparsable", "n/a", 0},
		{"empty string", "", 0},
		{"negative clamped", -100, 0},
		{"unsupported type", []string{"x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.in))
		})
	}
}

func TestAmountFieldsOnRecord(t *testing.T) {
	n := Default()
	got := n.Record(record.Raw{
		record.FieldFundingRaised: "1.5M MAD",
		record.FieldRevenue:       "500,000",
	})
	assert.Equal(t, int64(1500000), got.FundingRaised)
	assert.Equal(t, int64(500000), got.Revenue)
}

func TestMetricsCoercion(t *testing.T) {
	n := Default()

	got := n.Record(record.Raw{
		record.FieldMetrics: map[string]any{"gmv": 1000000},
	})
	assert.Equal(t, map[string]any{"gmv": 1000000}, got.Metrics)

	// A bare truthy value is kept under "value" instead of being dropped.
	got = n.Record(record.Raw{record.FieldMetrics: "15% MoM growth"})
	assert.Equal(t, map[string]any{"value": "15% MoM growth"}, got.Metrics)

	got = n.Record(record.Raw{record.FieldMetrics: 42})
	assert.Equal(t, map[string]any{"value": 42}, got.Metrics)

	// Falsy or empty metrics stay absent.
	assert.Nil(t, n.Record(record.Raw{record.FieldMetrics: ""}).Metrics)
	assert.Nil(t, n.Record(record.Raw{record.FieldMetrics: false}).Metrics)
	assert.Nil(t, n.Record(record.Raw{record.FieldMetrics: map[string]any{}}).Metrics)
}

func TestPassThroughFields(t *testing.T) {
	n := Default()
	got := n.Record(record.Raw{
		record.FieldName: "chari",
		"stage":          "Series A",
		"media_mentions": 7,
	})

	require.NotNil(t, got.Extra)
	assert.Equal(t, "Series A", got.Extra["stage"])
	assert.Equal(t, 7, got.Extra["media_mentions"])
	assert.NotContains(t, got.Extra, record.FieldName)
}

func TestSourcesAndFounders(t *testing.T) {
	n := Default()
	got := n.Record(record.Raw{
		record.FieldSource:   " crunchbase ",
		record.FieldSources:  []any{"crunchbase", "google_search", "crunchbase"},
		record.FieldFounders: []any{"Ahmed Alami", "Sara Bennani"},
	})

	assert.Equal(t, "crunchbase", got.Source)
	assert.Equal(t, []string{"crunchbase", "google_search"}, got.Sources)
	assert.Equal(t, []string{"Ahmed Alami", "Sara Bennani"}, got.Founders)
}

func TestMalformedFieldsDegradeSilently(t *testing.T) {
	n := Default()
	got := n.Record(record.Raw{
		record.FieldName:        12345,
		record.FieldEmployees:   "not-a-number",
		record.FieldFoundedYear: "2021",
		record.FieldFounders:    42,
	})

	assert.Empty(t, got.Name)
	assert.Zero(t, got.Employees)
	assert.Equal(t, 2021, got.FoundedYear)
	assert.Nil(t, got.Founders)
}

func TestNormalizationIdempotent(t *testing.T) {
	n := Default()

	inputs := []record.Raw{
		{
			record.FieldName:          "paymorocco",
			record.FieldSector:        "fin tech",
			record.FieldLocation:      "casa",
			record.FieldEmail:         "TEAM@PayMorocco.ma",
			record.FieldWebsite:       "paymorocco.ma/",
			record.FieldFundingRaised: "1.5M MAD",
			"stage":                   "Seed",
		},
		{
			record.FieldName:     "atlas AI",
			record.FieldLocation: "",
			record.FieldSector:   "unknown-xyz",
		},
	}

	for _, raw := range inputs {
		once := n.Record(raw)
		twice := n.Record(once.Map())
		assert.Equal(t, once, twice)
	}
}

func TestCustomTables(t *testing.T) {
	tables := DefaultTables()
	tables.CountryFallback = "Tunisia"
	tables.SectorSynonyms["mobility"] = "logistics"
	n := New(tables)

	got := n.Record(record.Raw{
		record.FieldLocation: "",
		record.FieldSector:   "mobility",
	})
	assert.Equal(t, "Tunisia", got.Location)
	assert.Equal(t, "logistics", got.Sector)
}
