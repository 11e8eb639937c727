package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feedbackpod/feedbackpod/internal/clock"
	eventdomain "github.com/feedbackpod/feedbackpod/internal/event/domain"
	eventrepo "github.com/feedbackpod/feedbackpod/internal/event/repository"
	"github.com/feedbackpod/feedbackpod/internal/feedback/domain"
	"github.com/feedbackpod/feedbackpod/internal/feedback/repository"
	"github.com/feedbackpod/feedbackpod/internal/ratelimit"
)

const (
	testOrgID     = "2345678"
	testEventCode = "AbCdEf123456"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&eventdomain.Event{},
		&domain.Feedback{},
		&ratelimit.WindowHit{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	events := eventrepo.New(db)
	require.NoError(t, events.Create(context.Background(), &eventdomain.Event{
		ID:        node.Generate(),
		EventCode: testEventCode,
		Name:      "Cloud Security Pod",
		Status:    1,
		OrgID:     testOrgID,
		CreatedAt: clk.Now(),
	}))

	limiter := ratelimit.NewStoreLimiter(db, clk)
	svc := NewService(repository.New(db), events, limiter, node, clk)
	return svc, clk, db
}

func submitReq(ip, response string) domain.SubmitRequest {
	return domain.SubmitRequest{
		OrgID:     testOrgID,
		EventCode: testEventCode,
		Response:  response,
		Reason:    "great talks",
		IP:        ip,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) Firefox/121.0",
	}
}

func TestSubmitStoresEnrichedRow(t *testing.T) {
	svc, _, _ := newTestService(t)

	result, err := svc.Submit(context.Background(), submitReq("10.0.0.1", domain.ResponseGood))
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	fb := result.Feedback
	assert.Equal(t, testEventCode, fb.EventCode)
	assert.Equal(t, testOrgID, fb.TenantOrgID)
	assert.Equal(t, domain.ResponseGood, fb.Response)
	assert.Equal(t, "great, talks", fb.Keywords)
	assert.Equal(t, "Firefox", fb.Browser)
	assert.Equal(t, "Linux", fb.OS)
	assert.Equal(t, "Unknown", fb.Location)
	assert.Len(t, fb.SubmitHash, 64)
}

func TestSubmitRejectsInvalidResponse(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), submitReq("10.0.0.1", "Amazing"))
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestSubmitUnknownEvent(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := submitReq("10.0.0.1", domain.ResponseGood)
	req.EventCode = "ZZZZZZZZZZZZ"
	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, eventdomain.ErrNotFound)
}

func TestSubmitRateLimitedInsideWindow(t *testing.T) {
	svc, clk, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, submitReq("10.0.0.1", domain.ResponseGood))
	require.NoError(t, err)

	// Same client, same day: blocked before the insert is attempted.
	_, err = svc.Submit(ctx, submitReq("10.0.0.1", domain.ResponseBad))
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	clk.Advance(25 * time.Hour)
	_, err = svc.Submit(ctx, submitReq("10.0.0.1", domain.ResponseBad))
	assert.NoError(t, err)
}

func TestSubmitDuplicateFingerprint(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	owner := snowflake.ID(42)

	req := submitReq("10.0.0.1", domain.ResponseGood)
	req.Owner = &owner
	_, err := svc.Submit(ctx, req)
	require.NoError(t, err)

	// Same owner from a different address: the rate limiter cannot see it,
	// the unique submit_hash still refuses the row.
	dup := submitReq("10.0.0.2", domain.ResponseGood)
	dup.Owner = &owner
	_, err = svc.Submit(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateSubmission)
}

func TestSubmitHashIsDeterministic(t *testing.T) {
	owner := snowflake.ID(42)
	a := SubmitHash("code", "org", "Good", &owner)
	b := SubmitHash("code", "org", "Good", &owner)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, SubmitHash("code", "org", "Bad", &owner))
	assert.NotEqual(t, a, SubmitHash("code", "org", "Good", nil))
}

func TestManagerUpdateRederivesKeywords(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Submit(ctx, submitReq("10.0.0.1", domain.ResponseGood))
	require.NoError(t, err)

	reason := "terrible queue at registration"
	updated, err := svc.Update(ctx, int64(res.Feedback.ID), domain.UpdateRequest{
		Response: ptr(domain.ResponseBad),
		Reason:   &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResponseBad, updated.Response)
	assert.Equal(t, "terrible, queue, registration", updated.Keywords)
	// The fingerprint stays as recorded at submission time.
	assert.Equal(t, res.Feedback.SubmitHash, updated.SubmitHash)

	_, err = svc.Update(ctx, int64(res.Feedback.ID), domain.UpdateRequest{
		Response: ptr("Terrible"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)

	_, err = svc.Update(ctx, 999999, domain.UpdateRequest{Reason: &reason})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestManagerGetAndListAll(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Submit(ctx, submitReq("10.0.0.1", domain.ResponseGood))
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, int64(res.Feedback.ID))
	require.NoError(t, err)
	assert.Equal(t, testEventCode, got.EventCode)

	_, err = svc.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rows, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func ptr(s string) *string { return &s }
