package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck // nil ctx fallback is part of the contract
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	got := FromContext(ctx)

	got.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestWithSourceAddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	ctx = WithSource(ctx, "local_sources")

	FromContext(ctx).Info().Msg("collected")

	out := buf.String()
	assert.True(t, strings.Contains(out, "local_sources"), "expected source field in %q", out)
}
