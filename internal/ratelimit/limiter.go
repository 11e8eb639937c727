// Package ratelimit enforces the submission quota: one request per client
// identity key per 24-hour window. The key combines client IP with the
// feedback token cookie when one exists, so a returning client keeps the
// same allowance across address changes within a session.
package ratelimit

import "context"

// Window is the quota period for feedback submissions.
const windowHours = 24

// Limiter consumes one unit of quota for key and reports whether the
// request is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Key derives the composite rate-limit key from client IP and the opaque
// session cookie value. Falls back to IP alone for first-time clients.
func Key(ip, cookieToken string) string {
	if cookieToken == "" {
		return ip
	}
	return ip + ":" + cookieToken
}
