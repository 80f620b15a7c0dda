package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deusflow/briefing/internal/logger"
)

func TestNewRejectsBadSpec(t *testing.T) {
	_, err := New("not a cron spec", func(context.Context) error { return nil }, logger.Discard())
	require.Error(t, err)
}

func TestRunOnceSkipsOverlap(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var runs atomic.Int32

	s, err := New("@daily", func(context.Context) error {
		runs.Add(1)
		close(started)
		<-release
		return nil
	}, logger.Discard())
	require.NoError(t, err)

	done := make(chan bool)
	go func() { done <- s.RunOnce(context.Background()) }()
	<-started

	require.False(t, s.RunOnce(context.Background()))
	close(release)
	require.True(t, <-done)
	require.Equal(t, int32(1), runs.Load())
}

func TestRunOnceReportsJobErrors(t *testing.T) {
	s, err := New("@daily", func(context.Context) error { return errors.New("render failed") }, logger.Discard())
	require.NoError(t, err)
	require.True(t, s.RunOnce(context.Background()))
}

func TestRunFiresAndStopsOnCancel(t *testing.T) {
	var runs atomic.Int32
	s, err := New("@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	}, logger.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	require.GreaterOrEqual(t, runs.Load(), int32(1))
}
