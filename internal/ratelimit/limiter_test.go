package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilLimiterNeverBlocks(t *testing.T) {
	var l *Limiter
	require.NoError(t, l.Wait(context.Background()))
}

func TestWaitAdmitsBurst(t *testing.T) {
	l := New("TMDB", 4)
	assert.Equal(t, "TMDB", l.Name())

	for i := 0; i < 4; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
}

func TestWaitHonoursCancelledContext(t *testing.T) {
	l := NewWithBurst("TMDB", 1, 1)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait for TMDB")
}
