package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennecworks/dealscope/pkg/pipeline"
	"github.com/fennecworks/dealscope/pkg/record"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Records: []record.Record{
			{
				Name: "Chari", Sector: "ecommerce", Location: "Casablanca",
				DataQualityScore: 82, Confidence: record.ConfidenceHigh,
			},
			{
				Name: "WafR", Sector: "logistics",
				DataQualityScore: 35, Confidence: record.ConfidenceLow,
			},
		},
		Stats: pipeline.Stats{Collected: 3, Valid: 3, Unique: 2, Merged: 1},
	}
}

func TestEmitJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, emit(&buf, sampleResult(), "json"))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Chari", out[0]["name"])
	assert.Equal(t, "high", out[0]["confidence"])
}

func TestEmitYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, emit(&buf, sampleResult(), "yaml"))

	assert.Contains(t, buf.String(), "name: Chari")
	assert.Contains(t, buf.String(), "sector: logistics")
}

func TestEmitSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, emit(&buf, sampleResult(), "summary"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "2 unique")
	assert.Contains(t, lines[1], "Chari")
}

func TestEmitUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, emit(&buf, sampleResult(), "xml"))
}
