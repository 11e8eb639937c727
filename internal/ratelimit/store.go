package ratelimit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/clock"
	"github.com/feedbackpod/feedbackpod/pkg/db"
)

// WindowHit records the last accepted submission per rate-limit key.
type WindowHit struct {
	Key        string    `gorm:"primaryKey;column:key;type:text"`
	AcceptedAt time.Time `gorm:"column:accepted_at;not null"`
}

// TableName sets the database table name.
func (WindowHit) TableName() string { return "rate_limit_hits" }

// StoreLimiter is the single-node fallback used when Redis is not
// configured. The window lives in the identity store so a restart or a
// second process observes the same state.
type StoreLimiter struct {
	db     *gorm.DB
	clk    clock.Clock
	window time.Duration
}

func NewStoreLimiter(conn *gorm.DB, clk clock.Clock) *StoreLimiter {
	return &StoreLimiter{
		db:     conn,
		clk:    clk,
		window: windowHours * time.Hour,
	}
}

func (l *StoreLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.clk.Now()

	// Fresh key: the primary-key constraint closes the race between two
	// first-time requests for the same key.
	err := l.db.WithContext(ctx).Create(&WindowHit{Key: key, AcceptedAt: now}).Error
	if err == nil {
		return true, nil
	}
	if !db.IsDuplicateKeyErr(err) {
		return false, err
	}

	// Existing key: take the slot only if the previous hit fell out of the
	// window. RowsAffected==0 means another request holds the window.
	cutoff := now.Add(-l.window)
	tx := l.db.WithContext(ctx).Model(&WindowHit{}).
		Where("key = ? AND accepted_at < ?", key, cutoff).
		Update("accepted_at", now)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
