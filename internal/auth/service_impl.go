package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/auth/domain"
	"github.com/feedbackpod/feedbackpod/internal/auth/password"
	"github.com/feedbackpod/feedbackpod/internal/clock"
	"github.com/feedbackpod/feedbackpod/internal/config"
	"github.com/feedbackpod/feedbackpod/internal/generate"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
	tokendomain "github.com/feedbackpod/feedbackpod/internal/token/domain"
)

type Service struct {
	log       *zap.Logger
	db        *gorm.DB
	users     identitydomain.UserRepository
	tenants   identitydomain.TenantRepository
	tokensvc  tokendomain.Service
	genID     *snowflake.Node
	clk       clock.Clock
	rootOrgID string
}

func New(log *zap.Logger, cfg config.Config, db *gorm.DB, users identitydomain.UserRepository, tenants identitydomain.TenantRepository, tokensvc tokendomain.Service, genID *snowflake.Node, clk clock.Clock) domain.Service {
	return &Service{
		log:       log.Named("auth.service"),
		db:        db,
		users:     users,
		tenants:   tenants,
		tokensvc:  tokensvc,
		genID:     genID,
		clk:       clk,
		rootOrgID: cfg.RootOrgID,
	}
}

func (s *Service) CreateRootAdmin(ctx context.Context, callerRole string, authenticated bool, req domain.CreateRootAdminRequest) (*identitydomain.User, error) {
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrPasswordRequired
	}

	existing, err := s.users.FindRootAdmin(ctx)
	if err != nil && !errors.Is(err, identitydomain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		if !authenticated {
			return nil, domain.ErrRootAdminExists
		}
		if callerRole != identitydomain.RoleRootAdmin {
			return nil, domain.ErrRootAdminExists
		}
	}

	digest, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &identitydomain.User{
		ID:           s.genID.Generate(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		TenantOrgID:  s.rootOrgID,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: digest,
		Role:         identitydomain.RoleRootAdmin,
		CreatedDate:  s.clk.Now(),
		Status:       identitydomain.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("root admin created", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrPasswordRequired
	}

	tenantName := strings.TrimSpace(req.TenantName)
	role := strings.TrimSpace(req.Role)

	tenant, err := s.tenants.FindByName(ctx, tenantName)
	if err != nil && !errors.Is(err, identitydomain.ErrTenantNotFound) {
		return nil, err
	}

	switch {
	case tenant == nil && role == identitydomain.RoleOwner:
		return s.registerOwner(ctx, tenantName, req)
	case tenant != nil && role != identitydomain.RoleOwner:
		return s.registerMember(ctx, tenant, req)
	default:
		return nil, domain.ErrOwnerRequired
	}
}

// registerOwner creates the tenant, the owner user, and the back-reference
// from tenant to owner as a single transaction. Partial creation (tenant
// without owner) must not be observable.
func (s *Service) registerOwner(ctx context.Context, tenantName string, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	orgID, err := generate.OrgID(ctx, s.tenants.OrgIDExists)
	if err != nil {
		return nil, err
	}

	digest, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	tenant := &identitydomain.Tenant{
		ID:              s.genID.Generate(),
		Name:            tenantName,
		CustomPrefixURL: fmt.Sprintf("/tenants/o/%s/%s", orgID, slug.Make(tenantName)),
		UUID:            uuid.NewString(),
		OrgID:           orgID,
		Owner:           nil,
		CreationDate:    now,
		Status:          identitydomain.StatusActive,
	}
	user := &identitydomain.User{
		ID:           s.genID.Generate(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		TenantOrgID:  orgID,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: digest,
		Role:         identitydomain.RoleOwner,
		CreatedDate:  now,
		Status:       identitydomain.StatusActive,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenants := s.tenants.WithTx(tx)
		users := s.users.WithTx(tx)

		if err := tenants.Create(ctx, tenant); err != nil {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return tenants.SetOwner(ctx, orgID, user.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("tenant registered",
		zap.String("org_id", orgID),
		zap.String("tenant", tenantName),
		zap.String("owner_id", user.ID.String()),
	)

	return &domain.RegisterResult{
		UserID:        user.ID.String(),
		TenantID:      tenant.ID.String(),
		OrgID:         orgID,
		TenantCreated: true,
	}, nil
}

func (s *Service) registerMember(ctx context.Context, tenant *identitydomain.Tenant, req domain.RegisterRequest) (*domain.RegisterResult, error) {
	digest, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &identitydomain.User{
		ID:           s.genID.Generate(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		TenantOrgID:  tenant.OrgID,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: digest,
		Role:         strings.TrimSpace(req.Role),
		CreatedDate:  s.clk.Now(),
		Status:       identitydomain.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &domain.RegisterResult{
		UserID:        user.ID.String(),
		TenantID:      tenant.ID.String(),
		OrgID:         tenant.OrgID,
		TenantCreated: false,
	}, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*tokendomain.Pair, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	orgID := strings.TrimSpace(req.OrgID)
	var user *identitydomain.User
	var err error
	if orgID == "" {
		// Root login: no org in the request, lookup scoped to the reserved org.
		user, err = s.users.FindByUsername(ctx, s.rootOrgID, username)
		if err == nil && user.Role != identitydomain.RoleRootAdmin {
			return nil, domain.ErrInvalidCredentials
		}
	} else {
		user, err = s.users.FindByUsername(ctx, orgID, username)
	}
	if err != nil {
		if errors.Is(err, identitydomain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.tokensvc.Issue(ctx, user)
}

func (s *Service) ListUsers(ctx context.Context) ([]identitydomain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) GetUsersByUsername(ctx context.Context, username string) ([]identitydomain.User, error) {
	return s.users.ListByUsername(ctx, username)
}
