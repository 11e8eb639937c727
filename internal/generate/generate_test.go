package generate

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neverTaken(ctx context.Context, candidate string) (bool, error) {
	return false, nil
}

func TestOrgIDFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		id, err := OrgID(context.Background(), neverTaken)
		require.NoError(t, err)
		assert.Len(t, id, 7)

		n, err := strconv.Atoi(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000000)
		assert.LessOrEqual(t, n, 9999999)
	}
}

func TestEventCodeFormat(t *testing.T) {
	code, err := EventCode(context.Background(), neverTaken)
	require.NoError(t, err)
	assert.Len(t, code, 12)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(eventCodeAlphabet, r), "unexpected rune %q", r)
	}
}

func TestFeedbackTokenFormat(t *testing.T) {
	token, err := FeedbackToken(context.Background(), neverTaken)
	require.NoError(t, err)
	assert.Len(t, token, 48)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
}

func TestExhaustsAfterBoundedAttempts(t *testing.T) {
	attempts := 0
	alwaysTaken := func(ctx context.Context, candidate string) (bool, error) {
		attempts++
		return true, nil
	}

	_, err := OrgID(context.Background(), alwaysTaken)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, maxAttempts, attempts)
}

func TestRetriesUntilFree(t *testing.T) {
	calls := 0
	takenTwice := func(ctx context.Context, candidate string) (bool, error) {
		calls++
		return calls <= 2, nil
	}

	code, err := EventCode(context.Background(), takenTwice)
	require.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 3, calls)
}
