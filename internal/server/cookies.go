package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	cookieFeedbackToken     = "feedbackToken"
	cookieFeedbackPOD       = "feedbackPOD"
	cookieFeedbackSubmitted = "feedbackSubmitted"

	feedbackCookieMaxAge = 24 * 60 * 60
)

// setFeedbackCookies hands the client its long-lived identity token plus
// the submitted markers. SameSite=None because the submission form is
// embedded on tenant sites.
func (s *Server) setFeedbackCookies(c *gin.Context, token, eventCode string) {
	secure := s.cfg.AuthCookieSecure
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(cookieFeedbackToken, token, feedbackCookieMaxAge, "/", "", secure, true)
	c.SetCookie(cookieFeedbackPOD, eventCode, feedbackCookieMaxAge, "/", "", secure, true)
	c.SetCookie(cookieFeedbackSubmitted, "true", feedbackCookieMaxAge, "/", "", secure, true)
}
