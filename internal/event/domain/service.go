package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// CreateRequest carries the caller-provided fields for a new event. The
// event code and feedback URL are generated server side.
type CreateRequest struct {
	Name          string `json:"name" binding:"required"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	DailySchedule any    `json:"daily_schedule"`
	OrgID         string `json:"-"`
	Owner         snowflake.ID
}

// UpdateRequest holds optional fields for an event update. Nil pointers are
// left untouched.
type UpdateRequest struct {
	Name          *string `json:"name"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	DailySchedule any     `json:"daily_schedule"`
	Status        *int    `json:"status"`
}

// Service manages event lifecycle within a tenant.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Event, error)
	GetByCode(ctx context.Context, orgID, code string) (*Event, error)
	ListByOrg(ctx context.Context, orgID string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, orgID, code string, req UpdateRequest) (*Event, error)
	Delete(ctx context.Context, orgID, code string) error
}
