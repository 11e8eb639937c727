package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/feedbackpod/feedbackpod/internal/auth/domain"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// CreateRootAdmin bootstraps the singleton rootadm. Open until the first
// rootadm exists; afterwards only an authenticated rootadm may call it.
func (s *Server) CreateRootAdmin(c *gin.Context) {
	var req authdomain.CreateRootAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	claims := claimsFrom(c)
	callerRole := ""
	if claims != nil {
		callerRole = claims.Role
	}

	user, err := s.authsvc.CreateRootAdmin(c.Request.Context(), callerRole, claims != nil, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Root admin created successfully",
		"userId":   user.ID.String(),
		"username": user.Username,
	})
}

func (s *Server) Register(c *gin.Context) {
	var req authdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.TenantName = strings.TrimSpace(req.TenantName)
	if req.Username == "" || req.TenantName == "" || req.Password == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authsvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "User registered successfully",
		"userId":        result.UserID,
		"orgId":         result.OrgID,
		"tenantCreated": result.TenantCreated,
	})
}

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	pair, err := s.authsvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ObserveTokenIssued()
	c.JSON(http.StatusOK, pair)
}

// Logout blacklists the presented access token and deletes the refresh
// token. Safe to repeat; a second call fails verification upstream.
func (s *Server) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.tokensvc.Revoke(c.Request.Context(), bearerToken(c), req.RefreshToken); err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ObserveTokenRevoked()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	access, err := s.tokensvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": access})
}

func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.authsvc.ListUsers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) GetUsersByUsername(c *gin.Context) {
	username := c.Param("username")
	users, err := s.authsvc.GetUsersByUsername(c.Request.Context(), username)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if len(users) == 0 {
		AbortWithError(c, identitydomain.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, users)
}
