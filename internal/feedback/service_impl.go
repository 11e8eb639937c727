package feedback

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/feedbackpod/feedbackpod/internal/clock"
	eventdomain "github.com/feedbackpod/feedbackpod/internal/event/domain"
	"github.com/feedbackpod/feedbackpod/internal/feedback/domain"
	"github.com/feedbackpod/feedbackpod/internal/generate"
	"github.com/feedbackpod/feedbackpod/internal/ratelimit"
)

type service struct {
	repo    domain.Repository
	events  eventdomain.Repository
	limiter ratelimit.Limiter
	node    *snowflake.Node
	clk     clock.Clock
	logger  *zap.Logger
}

// NewService wires the feedback service.
func NewService(
	repo domain.Repository,
	events eventdomain.Repository,
	limiter ratelimit.Limiter,
	node *snowflake.Node,
	clk clock.Clock,
) domain.Service {
	return &service{
		repo:    repo,
		events:  events,
		limiter: limiter,
		node:    node,
		clk:     clk,
		logger:  zap.L().Named("feedback.service"),
	}
}

// Submit runs the anti-abuse pipeline in order: event lookup, rate limit,
// then the hash-backed insert. The unique constraint on submit_hash is the
// final arbiter under concurrency; the earlier checks only fail fast.
func (s *service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.SubmitResult, error) {
	if !domain.ValidResponse(req.Response) {
		return nil, domain.ErrInvalidResponse
	}

	ev, err := s.events.FindByCode(ctx, req.OrgID, req.EventCode)
	if err != nil {
		return nil, err
	}
	if ev.Status != 1 {
		return nil, eventdomain.ErrNotFound
	}

	allowed, err := s.limiter.Allow(ctx, ratelimit.Key(req.IP, req.CookieToken))
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if !allowed {
		s.logger.Warn("submission rate limited",
			zap.String("event_code", req.EventCode),
			zap.String("ip", req.IP),
		)
		return nil, domain.ErrRateLimited
	}

	token, err := generate.FeedbackToken(ctx, s.repo.TokenExists)
	if err != nil {
		return nil, fmt.Errorf("generate feedback token: %w", err)
	}

	info := ParseUserAgent(req.UserAgent)
	fb := &domain.Feedback{
		ID:          s.node.Generate(),
		EventCode:   req.EventCode,
		TenantOrgID: req.OrgID,
		Owner:       req.Owner,
		Response:    req.Response,
		Rating:      req.Rating,
		Reason:      req.Reason,
		Keywords:    ExtractKeywords(req.Reason),
		Browser:     info.Browser,
		OS:          info.OS,
		Location:    "Unknown",
		IP:          req.IP,
		SubmitHash:  SubmitHash(req.EventCode, req.OrgID, req.Response, req.Owner),
		Token:       token,
		CreatedAt:   s.clk.Now(),
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	s.logger.Info("feedback submitted",
		zap.String("event_code", fb.EventCode),
		zap.String("org_id", fb.TenantOrgID),
		zap.String("response", fb.Response),
	)
	return &domain.SubmitResult{Feedback: fb, Token: token}, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	return s.repo.List(ctx)
}

func (s *service) ListByEvent(ctx context.Context, orgID, eventCode string) ([]domain.Feedback, error) {
	return s.repo.ListByEvent(ctx, orgID, eventCode)
}

func (s *service) ListByOrg(ctx context.Context, orgID string) ([]domain.Feedback, error) {
	return s.repo.ListByOrg(ctx, orgID)
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	return s.repo.FindByID(ctx, id)
}

// Update edits the manager-visible fields. The dedup fingerprint is left as
// recorded at submission time.
func (s *service) Update(ctx context.Context, id int64, req domain.UpdateRequest) (*domain.Feedback, error) {
	fields := map[string]any{}
	if req.Response != nil {
		if !domain.ValidResponse(*req.Response) {
			return nil, domain.ErrInvalidResponse
		}
		fields["response"] = *req.Response
	}
	if req.Rating != nil {
		fields["rating"] = *req.Rating
	}
	if req.Reason != nil {
		fields["reason"] = *req.Reason
		fields["keywords"] = ExtractKeywords(*req.Reason)
	}
	if len(fields) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, orgID string, id int64) error {
	return s.repo.Delete(ctx, orgID, id)
}
