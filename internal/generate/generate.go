// Package generate produces collision-free public identifiers by probing
// storage for each candidate. Retries are bounded so a pathological random
// source cannot recurse forever.
package generate

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
)

const (
	maxAttempts = 10

	eventCodeLength   = 12
	eventCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	feedbackTokenBytes = 24
)

// ErrExhausted is returned when every candidate within the retry budget
// collided with an existing value.
var ErrExhausted = errors.New("identifier generation exhausted retries")

// ExistsFunc reports whether a candidate identifier is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// OrgID returns a free 7-digit numeric org id.
func OrgID(ctx context.Context, exists ExistsFunc) (string, error) {
	return unique(ctx, exists, randomOrgID)
}

// EventCode returns a free 12-character alphanumeric event code.
func EventCode(ctx context.Context, exists ExistsFunc) (string, error) {
	return unique(ctx, exists, randomEventCode)
}

// FeedbackToken returns a free 24-byte hex submission token.
func FeedbackToken(ctx context.Context, exists ExistsFunc) (string, error) {
	return unique(ctx, exists, randomFeedbackToken)
}

func unique(ctx context.Context, exists ExistsFunc, candidate func() (string, error)) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		value, err := candidate()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, value)
		if err != nil {
			return "", err
		}
		if !taken {
			return value, nil
		}
	}
	return "", ErrExhausted
}

func randomOrgID() (string, error) {
	// 1000000..9999999
	n, err := rand.Int(rand.Reader, big.NewInt(9000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000000), nil
}

func randomEventCode() (string, error) {
	code := make([]byte, eventCodeLength)
	max := big.NewInt(int64(len(eventCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = eventCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

func randomFeedbackToken() (string, error) {
	buf := make([]byte, feedbackTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
