package ratelimit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_ProviderCap(t *testing.T) {
	l := New(0, 0)
	l.SetLimit("gemini", 2)
	ctx := context.Background()

	require.NoError(t, l.Use(ctx, "gemini"))
	require.NoError(t, l.Use(ctx, "gemini"))
	assert.False(t, l.CanUse("gemini"))

	err := l.Use(ctx, "gemini")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	// Other providers are unaffected.
	assert.True(t, l.CanUse("google"))
	require.NoError(t, l.Use(ctx, "google"))
}

func TestLimiter_TotalCap(t *testing.T) {
	l := New(2, 0)
	ctx := context.Background()

	require.NoError(t, l.Use(ctx, "google"))
	require.NoError(t, l.Use(ctx, "openai"))
	assert.ErrorIs(t, l.Use(ctx, "gemini"), ErrQuotaExceeded)

	stats := l.Stats()
	assert.Equal(t, 2, stats["total"])
	assert.Equal(t, 1, stats["denied"])
	assert.Equal(t, 1, stats["google"])
}

func TestLimiter_PacerHonoursContext(t *testing.T) {
	l := New(0, 0.001)
	ctx, cancel := context.WithCancel(context.Background())

	// First request consumes the single burst token.
	require.NoError(t, l.Use(ctx, "google"))

	cancel()
	assert.Error(t, l.Use(ctx, "google"))
}
