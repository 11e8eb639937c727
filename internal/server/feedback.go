package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	feedbackdomain "github.com/feedbackpod/feedbackpod/internal/feedback/domain"
)

type submitFeedbackRequest struct {
	Response string `json:"response"`
	Rating   int    `json:"rating"`
	Reason   string `json:"reason"`
}

// SubmitFeedback is the public submission endpoint. No auth; the dedup
// engine and rate limiter decide whether the write lands. A valid bearer
// token, when present, attributes the submission to the caller.
func (s *Server) SubmitFeedback(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var owner *snowflake.ID
	if raw := bearerToken(c); raw != "" {
		if claims, err := s.tokensvc.Verify(raw); err == nil {
			if revoked, err := s.tokensvc.IsRevoked(c.Request.Context(), raw); err == nil && !revoked {
				if id, err := snowflake.ParseString(claims.UserID); err == nil {
					owner = &id
				}
			}
		}
	}

	cookieToken, _ := c.Cookie(cookieFeedbackToken)

	result, err := s.feedbacksvc.Submit(c.Request.Context(), feedbackdomain.SubmitRequest{
		OrgID:       c.Param("orgId"),
		EventCode:   c.Param("eventCode"),
		Response:    req.Response,
		Rating:      req.Rating,
		Reason:      req.Reason,
		Owner:       owner,
		IP:          c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		CookieToken: cookieToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, feedbackdomain.ErrDuplicateSubmission):
			s.metrics.ObserveSubmission("duplicate")
		case errors.Is(err, feedbackdomain.ErrRateLimited):
			s.metrics.ObserveSubmission("rate_limited")
		default:
			s.metrics.ObserveSubmission("rejected")
		}
		AbortWithError(c, err)
		return
	}

	s.metrics.ObserveSubmission("accepted")
	s.setFeedbackCookies(c, result.Token, result.Feedback.EventCode)
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Feedback submitted successfully.",
		"feedbackId": result.Feedback.ID,
	})
}

func (s *Server) ListAllFeedback(c *gin.Context) {
	rows, err := s.feedbacksvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) ListOrgFeedback(c *gin.Context) {
	orgID := c.Param("orgId")
	if !s.requireOrgAccess(c, orgID) {
		return
	}

	rows, err := s.feedbacksvc.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) ListEventFeedback(c *gin.Context) {
	orgID := c.Param("orgId")
	if !s.requireOrgAccess(c, orgID) {
		return
	}

	rows, err := s.feedbacksvc.ListByEvent(c.Request.Context(), orgID, c.Param("eventCode"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// feedbackByID resolves the :feedbackId param and checks that the caller may
// manage the row's tenant. Returns nil after writing the error response.
func (s *Server) feedbackByID(c *gin.Context) *feedbackdomain.Feedback {
	id, err := strconv.ParseInt(c.Param("feedbackId"), 10, 64)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return nil
	}

	fb, err := s.feedbacksvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return nil
	}
	if !s.requireOrgAccess(c, fb.TenantOrgID) {
		return nil
	}
	return fb
}

func (s *Server) GetFeedback(c *gin.Context) {
	fb := s.feedbackByID(c)
	if fb == nil {
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (s *Server) UpdateFeedback(c *gin.Context) {
	fb := s.feedbackByID(c)
	if fb == nil {
		return
	}

	var req feedbackdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	updated, err := s.feedbacksvc.Update(c.Request.Context(), int64(fb.ID), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteFeedback(c *gin.Context) {
	fb := s.feedbackByID(c)
	if fb == nil {
		return
	}

	if err := s.feedbacksvc.Delete(c.Request.Context(), fb.TenantOrgID, int64(fb.ID)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
