package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("startup", "PayMorocco")
	assert.Equal(t, `startup "PayMorocco" not found`, err.Error())
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrInvalidInput))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "", "must be at least 2 characters")
	assert.Equal(t, "validation failed for field name: must be at least 2 characters", err.Error())
	assert.True(t, Is(err, ErrInvalidInput))

	noField := &ValidationError{Message: "empty batch"}
	assert.Equal(t, "validation failed: empty batch", noField.Error())
}

func TestStoreError(t *testing.T) {
	cause := New("connection refused")
	err := &StoreError{Operation: "upsert", Entity: "Chari", Err: cause}

	assert.Contains(t, err.Error(), "upsert")
	assert.Contains(t, err.Error(), "Chari")
	assert.True(t, Is(err, ErrStoreUnavailable))

	var storeErr *StoreError
	require.True(t, As(fmt.Errorf("run failed: %w", err), &storeErr))
	assert.Equal(t, cause, storeErr.Unwrap())
}

func TestCollectError(t *testing.T) {
	cause := New("timeout")
	err := &CollectError{Source: "local_sources", Err: cause}

	assert.Equal(t, "collect from local_sources failed: timeout", err.Error())
	assert.True(t, Is(err, ErrSourceUnavailable))
	assert.Equal(t, cause, err.Unwrap())
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
	assert.NoError(t, Wrapf(nil, "context %d", 1))

	base := New("boom")
	wrapped := Wrap(base, "loading config")
	assert.Equal(t, "loading config: boom", wrapped.Error())
	assert.True(t, Is(wrapped, base))

	wrappedf := Wrapf(base, "run %d", 7)
	assert.Equal(t, "run 7: boom", wrappedf.Error())
	assert.True(t, Is(wrappedf, base))
}
