package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/clock"
)

func newStoreLimiter(t *testing.T) (*StoreLimiter, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&WindowHit{}))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewStoreLimiter(db, clk), clk
}

func TestStoreLimiterWindow(t *testing.T) {
	limiter, clk := newStoreLimiter(t)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Still inside the window.
	clk.Advance(23 * time.Hour)
	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Window elapsed; the slot opens again exactly once.
	clk.Advance(2 * time.Hour)
	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestStoreLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newStoreLimiter(t)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "10.0.0.2:abcdef")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestKeyDerivation(t *testing.T) {
	assert.Equal(t, "10.0.0.1", Key("10.0.0.1", ""))
	assert.Equal(t, "10.0.0.1:tok", Key("10.0.0.1", "tok"))
}
