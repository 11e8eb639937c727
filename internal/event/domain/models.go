// Package domain contains persistence models for events.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

var (
	ErrNotFound       = errors.New("event not found")
	ErrInvalidRequest = errors.New("invalid event request")
)

// Event is a tenant-scoped happening that collects feedback. EventCode is
// the only externally exposed handle for submissions.
type Event struct {
	ID            snowflake.ID   `gorm:"primaryKey" json:"id"`
	EventCode     string         `gorm:"column:event_code;type:text;not null;uniqueIndex" json:"event_code"`
	Name          string         `gorm:"type:text;not null" json:"name"`
	StartDate     string         `gorm:"column:start_date;type:text" json:"start_date"`
	EndDate       string         `gorm:"column:end_date;type:text" json:"end_date"`
	DailySchedule datatypes.JSON `gorm:"column:daily_schedule" json:"daily_schedule"`
	Status        int            `gorm:"not null;default:1" json:"status"`
	FeedbackURL   string         `gorm:"column:feedback_url;type:text" json:"feedback_url"`
	OrgID         string         `gorm:"column:org_id;type:text;not null;index" json:"org_id"`
	Owner         snowflake.ID   `gorm:"column:owner" json:"owner"`
	CreatedAt     time.Time      `gorm:"column:created_at;not null" json:"created_at"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "events" }
