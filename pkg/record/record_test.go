package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneIsDeep(t *testing.T) {
	original := Record{
		Name:     "Chari",
		Founders: []string{"Ismael Belkhayat"},
		Sources:  []string{"crunchbase"},
		Metrics:  map[string]any{"gmv": 100},
		Extra:    map[string]any{"stage": "Series A"},
	}

	clone := original.Clone()
	clone.Founders[0] = "changed"
	clone.Sources = append(clone.Sources, "web_scraper")
	clone.Metrics["gmv"] = 0
	clone.Extra["stage"] = "Seed"

	assert.Equal(t, "Ismael Belkhayat", original.Founders[0])
	assert.Equal(t, []string{"crunchbase"}, original.Sources)
	assert.Equal(t, 100, original.Metrics["gmv"])
	assert.Equal(t, "Series A", original.Extra["stage"])
}

func TestAddSource(t *testing.T) {
	var r Record
	r.AddSource("crunchbase")
	r.AddSource("crunchbase")
	r.AddSource("")
	r.AddSource("google_search")

	assert.Equal(t, []string{"crunchbase", "google_search"}, r.Sources)
	assert.True(t, r.HasSource("crunchbase"))
	assert.False(t, r.HasSource("linkedin"))
}

func TestMapOmitsAbsentFields(t *testing.T) {
	r := Record{
		Name:          "WafR",
		Sector:        "logistics",
		FundingRaised: 1500000,
		Sources:       []string{"incubator_portfolio"},
		Extra:         map[string]any{"incubator": "DARE Inc"},
	}

	m := r.Map()
	assert.Equal(t, "WafR", m[FieldName])
	assert.Equal(t, "logistics", m[FieldSector])
	assert.Equal(t, int64(1500000), m[FieldFundingRaised])
	assert.Equal(t, "DARE Inc", m["incubator"])
	assert.NotContains(t, m, FieldDescription)
	assert.NotContains(t, m, FieldRevenue)
	assert.NotContains(t, m, FieldConfidence)
}

func TestMapRecognizedKeysWinOverExtra(t *testing.T) {
	r := Record{
		Name:  "Hmizate",
		Extra: map[string]any{FieldName: "shadowed"},
	}
	assert.Equal(t, "Hmizate", r.Map()[FieldName])
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"string", "casablanca", true},
		{"zero int", 0, false},
		{"int", 42, true},
		{"zero int64", int64(0), false},
		{"int64", int64(9), true},
		{"zero float", 0.0, false},
		{"float", 1.5, true},
		{"false", false, false},
		{"true", true, true},
		{"empty slice", []any{}, false},
		{"slice", []any{"x"}, true},
		{"empty string slice", []string{}, false},
		{"empty map", map[string]any{}, false},
		{"map", map[string]any{"k": 1}, true},
		{"opaque value", struct{}{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy(tt.in))
		})
	}
}
