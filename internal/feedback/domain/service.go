package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// SubmitRequest carries one public feedback submission together with the
// client details the handler extracted from the request.
type SubmitRequest struct {
	OrgID       string
	EventCode   string
	Response    string
	Rating      int
	Reason      string
	Owner       *snowflake.ID
	IP          string
	UserAgent   string
	CookieToken string
}

// SubmitResult is the stored row plus the opaque token the handler should
// hand back to the client as a long-lived cookie.
type SubmitResult struct {
	Feedback *Feedback
	Token    string
}

// UpdateRequest carries the manager-side edits. Nil fields are untouched.
// Keywords are re-derived whenever the reason changes.
type UpdateRequest struct {
	Response *string `json:"response"`
	Rating   *int    `json:"rating"`
	Reason   *string `json:"reason"`
}

// Service runs the submission pipeline and the manager-side queries.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
	ListAll(ctx context.Context) ([]Feedback, error)
	ListByEvent(ctx context.Context, orgID, eventCode string) ([]Feedback, error)
	ListByOrg(ctx context.Context, orgID string) ([]Feedback, error)
	GetByID(ctx context.Context, id int64) (*Feedback, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Feedback, error)
	Delete(ctx context.Context, orgID string, id int64) error
}
