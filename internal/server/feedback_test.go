package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/feedbackpod/feedbackpod/internal/config"
	feedbackdomain "github.com/feedbackpod/feedbackpod/internal/feedback/domain"
)

type fakeFeedbackService struct {
	result    *feedbackdomain.SubmitResult
	submitErr error
	lastReq   feedbackdomain.SubmitRequest
}

func (f *fakeFeedbackService) Submit(ctx context.Context, req feedbackdomain.SubmitRequest) (*feedbackdomain.SubmitResult, error) {
	f.lastReq = req
	_ = ctx
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.result, nil
}

func (f *fakeFeedbackService) ListAll(ctx context.Context) ([]feedbackdomain.Feedback, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeFeedbackService) ListByEvent(ctx context.Context, orgID, eventCode string) ([]feedbackdomain.Feedback, error) {
	_ = ctx
	_ = orgID
	_ = eventCode
	return nil, nil
}

func (f *fakeFeedbackService) ListByOrg(ctx context.Context, orgID string) ([]feedbackdomain.Feedback, error) {
	_ = ctx
	_ = orgID
	return nil, nil
}

func (f *fakeFeedbackService) GetByID(ctx context.Context, id int64) (*feedbackdomain.Feedback, error) {
	_ = ctx
	_ = id
	return nil, feedbackdomain.ErrNotFound
}

func (f *fakeFeedbackService) Update(ctx context.Context, id int64, req feedbackdomain.UpdateRequest) (*feedbackdomain.Feedback, error) {
	_ = ctx
	_ = id
	_ = req
	return nil, feedbackdomain.ErrNotFound
}

func (f *fakeFeedbackService) Delete(ctx context.Context, orgID string, id int64) error {
	_ = ctx
	_ = orgID
	_ = id
	return nil
}

func newSubmitRouter(svc *fakeFeedbackService) *gin.Engine {
	srv := &Server{
		cfg:         config.Config{AuthCookieSecure: true},
		tokensvc:    &fakeTokenService{verifyErr: nil},
		feedbacksvc: svc,
	}
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/feedback/o/:orgId/:eventCode", srv.SubmitFeedback)
	return router
}

func TestSubmitFeedbackSetsCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeFeedbackService{result: &feedbackdomain.SubmitResult{
		Feedback: &feedbackdomain.Feedback{EventCode: "AbCdEf123456"},
		Token:    "tok-123",
	}}
	router := newSubmitRouter(svc)

	body := bytes.NewBufferString(`{"response":"Good","reason":"great talks"}`)
	req := httptest.NewRequest(http.MethodPost, "/feedback/o/2345678/AbCdEf123456", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastReq.OrgID != "2345678" || svc.lastReq.EventCode != "AbCdEf123456" {
		t.Fatalf("route params not forwarded: %+v", svc.lastReq)
	}

	cookies := resp.Result().Cookies()
	found := map[string]string{}
	for _, c := range cookies {
		found[c.Name] = c.Value
		if !c.HttpOnly {
			t.Fatalf("cookie %s must be httpOnly", c.Name)
		}
	}
	if found[cookieFeedbackToken] != "tok-123" {
		t.Fatalf("feedbackToken cookie missing, got %v", found)
	}
	if found[cookieFeedbackPOD] != "AbCdEf123456" {
		t.Fatalf("feedbackPOD cookie missing, got %v", found)
	}
	if found[cookieFeedbackSubmitted] != "true" {
		t.Fatalf("feedbackSubmitted cookie missing, got %v", found)
	}
}

func TestSubmitFeedbackDuplicateMapsTo409(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeFeedbackService{submitErr: feedbackdomain.ErrDuplicateSubmission}
	router := newSubmitRouter(svc)

	body := bytes.NewBufferString(`{"response":"Good"}`)
	req := httptest.NewRequest(http.MethodPost, "/feedback/o/2345678/AbCdEf123456", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "duplicate_submission") {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestSubmitFeedbackRateLimitedMapsTo429(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeFeedbackService{submitErr: feedbackdomain.ErrRateLimited}
	router := newSubmitRouter(svc)

	body := bytes.NewBufferString(`{"response":"Good"}`)
	req := httptest.NewRequest(http.MethodPost, "/feedback/o/2345678/AbCdEf123456", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", resp.Code)
	}
}

func TestSubmitFeedbackForwardsCookieToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeFeedbackService{result: &feedbackdomain.SubmitResult{
		Feedback: &feedbackdomain.Feedback{EventCode: "AbCdEf123456"},
		Token:    "tok-456",
	}}
	router := newSubmitRouter(svc)

	body := bytes.NewBufferString(`{"response":"Bad"}`)
	req := httptest.NewRequest(http.MethodPost, "/feedback/o/2345678/AbCdEf123456", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: cookieFeedbackToken, Value: "tok-old"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if svc.lastReq.CookieToken != "tok-old" {
		t.Fatalf("expected cookie token forwarded, got %q", svc.lastReq.CookieToken)
	}
}
