// Package domain contains persistence models for feedback submissions.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound            = errors.New("feedback not found")
	ErrInvalidResponse     = errors.New("invalid feedback response")
	ErrInvalidRequest      = errors.New("invalid feedback request")
	ErrDuplicateSubmission = errors.New("duplicate feedback submission")
	ErrRateLimited         = errors.New("feedback rate limit exceeded")
)

// Valid values for Feedback.Response.
const (
	ResponseGood    = "Good"
	ResponseNeutral = "Neutral"
	ResponseBad     = "Bad"
)

// Feedback is one submission against an event. SubmitHash carries a unique
// index so concurrent duplicates fail at the storage layer rather than in
// application code.
type Feedback struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	EventCode   string        `gorm:"column:event_code;type:text;not null;index" json:"event_code"`
	TenantOrgID string        `gorm:"column:tenant_org_id;type:text;not null;index" json:"tenant_org_id"`
	Owner       *snowflake.ID `gorm:"column:owner" json:"owner,omitempty"`
	Response    string        `gorm:"type:text;not null" json:"response"`
	Rating      int           `gorm:"not null;default:0" json:"rating"`
	Reason      string        `gorm:"type:text" json:"reason"`
	Keywords    string        `gorm:"type:text" json:"keywords"`
	Browser     string        `gorm:"type:text" json:"browser"`
	OS          string        `gorm:"column:os;type:text" json:"os"`
	Location    string        `gorm:"type:text" json:"location"`
	IP          string        `gorm:"column:ipaddr;type:text" json:"ip"`
	SubmitHash  string        `gorm:"column:submit_hash;type:text;not null;uniqueIndex" json:"-"`
	Token       string        `gorm:"column:feedback_token;type:text;uniqueIndex" json:"-"`
	CreatedAt   time.Time     `gorm:"column:created_at;not null" json:"created_at"`
}

// TableName sets the database table name.
func (Feedback) TableName() string { return "feedback" }

// ValidResponse reports whether r is one of the accepted response values.
func ValidResponse(r string) bool {
	switch r {
	case ResponseGood, ResponseNeutral, ResponseBad:
		return true
	}
	return false
}
