package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennecworks/dealscope/pkg/errors"
)

func TestStartRejectsBadSpec(t *testing.T) {
	s := New("not a cron spec", func(context.Context) error { return nil })

	err := s.Start(context.Background())
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestStartAndStop(t *testing.T) {
	s := New("@every 1h", func(context.Context) error { return nil })

	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}

func TestRunNow(t *testing.T) {
	var runs atomic.Int32
	s := New("@every 1h", func(context.Context) error {
		runs.Add(1)
		return nil
	})

	require.NoError(t, s.RunNow(context.Background()))
	require.NoError(t, s.RunNow(context.Background()))
	assert.Equal(t, int32(2), runs.Load())
}

func TestRunNowRefusesOverlap(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s := New("@every 1h", func(context.Context) error {
		close(started)
		<-release
		return nil
	})

	go func() {
		_ = s.RunNow(context.Background())
	}()
	<-started

	err := s.RunNow(context.Background())
	assert.ErrorIs(t, err, errors.ErrCanceled)

	close(release)
}

func TestRunNowPropagatesError(t *testing.T) {
	boom := errors.New("collector down")
	s := New("@every 1h", func(context.Context) error { return boom })

	assert.ErrorIs(t, s.RunNow(context.Background()), boom)
}

func TestScheduledRunFires(t *testing.T) {
	var runs atomic.Int32
	s := New("@every 100ms", func(context.Context) error {
		runs.Add(1)
		return nil
	})

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)
}
