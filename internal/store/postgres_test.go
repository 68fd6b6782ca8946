package store

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennecworks/dealscope/pkg/record"
)

// fakeRow replays a fixed column tuple through scanRecord.
type fakeRow struct {
	values []any
}

func (r *fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: want %d columns, got %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *sql.NullString:
			if s, ok := v.(string); ok {
				*d = sql.NullString{String: s, Valid: true}
			} else {
				*d = sql.NullString{}
			}
		case *sql.NullInt64:
			if n, ok := v.(int64); ok {
				*d = sql.NullInt64{Int64: n, Valid: true}
			} else {
				*d = sql.NullInt64{}
			}
		case *int:
			*d = v.(int)
		case *int64:
			*d = v.(int64)
		case *[]byte:
			if b, ok := v.([]byte); ok {
				*d = b
			} else {
				*d = nil
			}
		case *pq.StringArray:
			if arr, ok := v.(pq.StringArray); ok {
				*d = arr
			} else {
				*d = nil
			}
		default:
			return fmt.Errorf("scan: unsupported dest %T", d)
		}
	}
	return nil
}

func TestScanRecord(t *testing.T) {
	row := &fakeRow{values: []any{
		"Chari",                              // name
		"B2B e-commerce pour épiceries",      // description
		"ecommerce",                          // sector
		"Casablanca",                         // location
		"https://chari.ma",                   // website
		"team@chari.ma",                      // email
		int64(5_000_000),                     // funding_raised
		int64(0),                             // revenue
		40,                                   // employees
		int64(2020),                          // founded_year
		pq.StringArray{"Ismael Belkhayat"},   // founders
		[]byte(`{"gmv": 1000000}`),           // metrics
		[]byte(`{"incubator": "DARE Inc"}`),  // extra
		pq.StringArray{"incubator_portfolio", "media_coverage"}, // sources
		82,     // data_quality_score
		"high", // confidence
		64,     // predicted_score
	}}

	rec, err := scanRecord(row)
	require.NoError(t, err)

	assert.Equal(t, "Chari", rec.Name)
	assert.Equal(t, "Casablanca", rec.Location)
	assert.Equal(t, int64(5_000_000), rec.FundingRaised)
	assert.Equal(t, 2020, rec.FoundedYear)
	assert.Equal(t, []string{"Ismael Belkhayat"}, rec.Founders)
	assert.Equal(t, float64(1_000_000), rec.Metrics["gmv"])
	assert.Equal(t, "DARE Inc", rec.Extra["incubator"])
	assert.Equal(t, record.ConfidenceHigh, rec.Confidence)
	assert.True(t, rec.HasSource("media_coverage"))
	assert.Equal(t, 82, rec.DataQualityScore)
}

func TestScanRecordNullColumns(t *testing.T) {
	row := &fakeRow{values: []any{
		"Ghost", nil, nil, nil, nil, nil,
		int64(0), int64(0), 0, nil,
		nil, nil, nil,
		nil, 0, nil, 0,
	}}

	rec, err := scanRecord(row)
	require.NoError(t, err)
	assert.Equal(t, "Ghost", rec.Name)
	assert.Empty(t, rec.Description)
	assert.Zero(t, rec.FoundedYear)
	assert.Empty(t, rec.Founders)
	assert.Nil(t, rec.Metrics)
}

func TestMarshalJSONB(t *testing.T) {
	b, err := marshalJSONB(nil)
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = marshalJSONB(map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"k": "v"}`, string(b))
}

func TestNullableInt(t *testing.T) {
	assert.Nil(t, nullableInt(0))
	assert.Equal(t, 2020, nullableInt(2020))
}
