package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	eventdomain "github.com/feedbackpod/feedbackpod/internal/event/domain"
)

// CreateEvent creates an event inside the caller's own tenant. The org comes
// from the token, not the request body.
func (s *Server) CreateEvent(c *gin.Context) {
	var req eventdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	claims := claimsFrom(c)
	req.OrgID = claims.OrgID
	if owner, err := snowflake.ParseString(claims.UserID); err == nil {
		req.Owner = owner
	}

	ev, err := s.eventsvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (s *Server) ListAllEvents(c *gin.Context) {
	events, err := s.eventsvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) ListEvents(c *gin.Context) {
	orgID := c.Param("orgId")
	if !s.requireOrgAccess(c, orgID) {
		return
	}

	events, err := s.eventsvc.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) GetEvent(c *gin.Context) {
	orgID := c.Param("orgId")
	if !s.requireOrgAccess(c, orgID) {
		return
	}

	ev, err := s.eventsvc.GetByCode(c.Request.Context(), orgID, c.Param("eventCode"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) UpdateEvent(c *gin.Context) {
	orgID := c.Param("orgId")
	if !s.requireOrgAccess(c, orgID) {
		return
	}

	var req eventdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ev, err := s.eventsvc.Update(c.Request.Context(), orgID, c.Param("eventCode"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (s *Server) DeleteEvent(c *gin.Context) {
	orgID := c.Param("orgId")
	if !s.requireOrgAccess(c, orgID) {
		return
	}

	if err := s.eventsvc.Delete(c.Request.Context(), orgID, c.Param("eventCode")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
