package auth

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/auth/domain"
	"github.com/feedbackpod/feedbackpod/internal/clock"
	"github.com/feedbackpod/feedbackpod/internal/config"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
	identityrepo "github.com/feedbackpod/feedbackpod/internal/identity/repository"
	"github.com/feedbackpod/feedbackpod/internal/token"
)

const testRootOrgID = "1000001"

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identitydomain.User{},
		&identitydomain.Tenant{},
		&identitydomain.RefreshToken{},
		&identitydomain.BlacklistedToken{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		JWTSecret:        "test-secret",
		AccessTokenHours: 24,
		RefreshTokenDays: 30,
		RootOrgID:        testRootOrgID,
	}
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	users := identityrepo.NewUserRepository(db)
	tenants := identityrepo.NewTenantRepository(db)
	tokens := identityrepo.NewTokenRepository(db)
	tokensvc := token.New(zap.NewNop(), cfg, users, tokens, node, clk)

	return New(zap.NewNop(), cfg, db, users, tenants, tokensvc, node, clk), db
}

func TestCreateRootAdminBootstrap(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateRootAdmin(ctx, "", false, domain.CreateRootAdminRequest{
		Username: "root",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, identitydomain.RoleRootAdmin, user.Role)
	assert.Equal(t, testRootOrgID, user.TenantOrgID)
}

func TestCreateRootAdminLockedAfterFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateRootAdmin(ctx, "", false, domain.CreateRootAdminRequest{
		Username: "root",
		Password: "secret",
	})
	require.NoError(t, err)

	// Unauthenticated caller cannot create a second one.
	_, err = svc.CreateRootAdmin(ctx, "", false, domain.CreateRootAdminRequest{
		Username: "root2",
		Password: "secret",
	})
	assert.ErrorIs(t, err, domain.ErrRootAdminExists)

	// Nor can an authenticated owner.
	_, err = svc.CreateRootAdmin(ctx, identitydomain.RoleOwner, true, domain.CreateRootAdminRequest{
		Username: "root2",
		Password: "secret",
	})
	assert.ErrorIs(t, err, domain.ErrRootAdminExists)

	// An authenticated rootadm can mint a successor.
	_, err = svc.CreateRootAdmin(ctx, identitydomain.RoleRootAdmin, true, domain.CreateRootAdminRequest{
		Username: "root2",
		Password: "secret",
	})
	assert.NoError(t, err)
}

func TestCreateRootAdminRequiresPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateRootAdmin(context.Background(), "", false, domain.CreateRootAdminRequest{
		Username: "root",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordRequired)
}

func TestRegisterOwnerCreatesTenantAtomically(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, domain.RegisterRequest{
		TenantName: "Acme Events",
		Username:   "alice",
		Password:   "secret",
		Role:       identitydomain.RoleOwner,
	})
	require.NoError(t, err)
	assert.True(t, result.TenantCreated)
	assert.Len(t, result.OrgID, 7)

	var tenant identitydomain.Tenant
	require.NoError(t, db.Where("org_id = ?", result.OrgID).First(&tenant).Error)
	require.NotNil(t, tenant.Owner)
	assert.Equal(t, result.UserID, tenant.Owner.String())
	assert.Contains(t, tenant.CustomPrefixURL, "/tenants/o/"+result.OrgID+"/acme-events")
}

func TestRegisterJoinsExistingTenant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	owner, err := svc.Register(ctx, domain.RegisterRequest{
		TenantName: "Acme Events",
		Username:   "alice",
		Password:   "secret",
		Role:       identitydomain.RoleOwner,
	})
	require.NoError(t, err)

	member, err := svc.Register(ctx, domain.RegisterRequest{
		TenantName: "Acme Events",
		Username:   "bob",
		Password:   "secret2",
		Role:       identitydomain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.False(t, member.TenantCreated)
	assert.Equal(t, owner.OrgID, member.OrgID)
}

func TestRegisterRejectsOwnerForExistingTenant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		TenantName: "Acme Events",
		Username:   "alice",
		Password:   "secret",
		Role:       identitydomain.RoleOwner,
	})
	require.NoError(t, err)

	// A second owner for the same tenant is refused, as is a non-owner
	// role for a tenant that does not exist yet.
	_, err = svc.Register(ctx, domain.RegisterRequest{
		TenantName: "Acme Events",
		Username:   "mallory",
		Password:   "secret",
		Role:       identitydomain.RoleOwner,
	})
	assert.ErrorIs(t, err, domain.ErrOwnerRequired)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		TenantName: "No Such Tenant",
		Username:   "carol",
		Password:   "secret",
		Role:       identitydomain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrOwnerRequired)
}

func TestLoginFlows(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, domain.RegisterRequest{
		TenantName: "Acme Events",
		Username:   "alice",
		Password:   "secret",
		Role:       identitydomain.RoleOwner,
	})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, domain.LoginRequest{
		OrgID:    result.OrgID,
		Username: "alice",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	_, err = svc.Login(ctx, domain.LoginRequest{
		OrgID:    result.OrgID,
		Username: "alice",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Tenant users cannot use the root login path.
	_, err = svc.Login(ctx, domain.LoginRequest{
		Username: "alice",
		Password: "secret",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRootLoginPath(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateRootAdmin(ctx, "", false, domain.CreateRootAdminRequest{
		Username: "root",
		Password: "secret",
	})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, domain.LoginRequest{
		Username: "root",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}
