package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feedbackpod/feedbackpod/internal/clock"
	"github.com/feedbackpod/feedbackpod/internal/event/domain"
	"github.com/feedbackpod/feedbackpod/internal/generate"
)

type service struct {
	repo   domain.Repository
	node   *snowflake.Node
	clk    clock.Clock
	logger *zap.Logger
}

// NewService wires the event service.
func NewService(repo domain.Repository, node *snowflake.Node, clk clock.Clock) domain.Service {
	return &service{
		repo:   repo,
		node:   node,
		clk:    clk,
		logger: zap.L().Named("event.service"),
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Event, error) {
	if req.Name == "" || req.OrgID == "" {
		return nil, domain.ErrInvalidRequest
	}

	code, err := generate.EventCode(ctx, func(ctx context.Context, candidate string) (bool, error) {
		return s.repo.CodeExists(ctx, candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("generate event code: %w", err)
	}

	schedule, err := marshalSchedule(req.DailySchedule)
	if err != nil {
		return nil, domain.ErrInvalidRequest
	}

	ev := &domain.Event{
		ID:            s.node.Generate(),
		EventCode:     code,
		Name:          req.Name,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DailySchedule: schedule,
		Status:        1,
		FeedbackURL:   fmt.Sprintf("/feedback/o/%s/%s", req.OrgID, code),
		OrgID:         req.OrgID,
		Owner:         req.Owner,
		CreatedAt:     s.clk.Now(),
	}
	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}

	s.logger.Info("event created",
		zap.String("event_code", ev.EventCode),
		zap.String("org_id", ev.OrgID),
	)
	return ev, nil
}

func (s *service) GetByCode(ctx context.Context, orgID, code string) (*domain.Event, error) {
	return s.repo.FindByCode(ctx, orgID, code)
}

func (s *service) ListByOrg(ctx context.Context, orgID string) ([]domain.Event, error) {
	return s.repo.ListByOrg(ctx, orgID)
}

func (s *service) ListAll(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, orgID, code string, req domain.UpdateRequest) (*domain.Event, error) {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["end_date"] = *req.EndDate
	}
	if req.DailySchedule != nil {
		schedule, err := marshalSchedule(req.DailySchedule)
		if err != nil {
			return nil, domain.ErrInvalidRequest
		}
		fields["daily_schedule"] = schedule
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	if err := s.repo.UpdateFields(ctx, orgID, code, fields); err != nil {
		return nil, err
	}
	return s.repo.FindByCode(ctx, orgID, code)
}

func (s *service) Delete(ctx context.Context, orgID, code string) error {
	if err := s.repo.Delete(ctx, orgID, code); err != nil {
		return err
	}
	s.logger.Info("event deleted",
		zap.String("event_code", code),
		zap.String("org_id", orgID),
	)
	return nil
}

func marshalSchedule(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
