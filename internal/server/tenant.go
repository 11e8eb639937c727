package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/feedbackpod/feedbackpod/internal/generate"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
)

type createTenantRequest struct {
	Name  string `json:"name" binding:"required"`
	Owner string `json:"owner"`
}

type updateTenantRequest struct {
	Name            *string `json:"name"`
	CustomPrefixURL *string `json:"custom_prefix_url"`
	Status          *int    `json:"status"`
}

// CreateTenant provisions a tenant outside the register flow. The owner
// defaults to the caller; rootadm may assign another user.
func (s *Server) CreateTenant(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	claims := claimsFrom(c)
	ownerRaw := claims.UserID
	if req.Owner != "" && claims.Role == identitydomain.RoleRootAdmin {
		ownerRaw = req.Owner
	}
	owner, err := snowflake.ParseString(ownerRaw)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	orgID, err := generate.OrgID(ctx, s.tenants.OrgIDExists)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	tenant := &identitydomain.Tenant{
		ID:              s.node.Generate(),
		Name:            name,
		CustomPrefixURL: fmt.Sprintf("/tenants/o/%s/%s", orgID, slug.Make(name)),
		UUID:            uuid.NewString(),
		OrgID:           orgID,
		Owner:           &owner,
		CreationDate:    s.clk.Now(),
		Status:          identitydomain.StatusActive,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Tenant created successfully.",
		"tenantId": tenant.ID,
		"orgId":    orgID,
	})
}

func (s *Server) ListTenants(c *gin.Context) {
	tenants, err := s.tenants.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

func (s *Server) GetTenant(c *gin.Context) {
	orgID := c.Param("orgId")
	if !s.requireOrgAccess(c, orgID) {
		return
	}

	tenant, err := s.tenants.FindByOrgID(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// UpdateTenant changes the mutable tenant fields. OrgID itself is immutable
// once assigned.
func (s *Server) UpdateTenant(c *gin.Context) {
	orgID := c.Param("orgId")
	if !s.requireOrgAccess(c, orgID) {
		return
	}

	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	fields := map[string]any{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.CustomPrefixURL != nil {
		fields["custom_prefix_url"] = *req.CustomPrefixURL
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.tenants.UpdateFields(c.Request.Context(), orgID, fields); err != nil {
		AbortWithError(c, err)
		return
	}

	tenant, err := s.tenants.FindByOrgID(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// DeleteTenant removes a tenant. The reserved root org is not deletable.
func (s *Server) DeleteTenant(c *gin.Context) {
	orgID := c.Param("orgId")
	if orgID == s.cfg.RootOrgID {
		AbortWithError(c, ErrForbidden)
		return
	}

	if err := s.tenants.Delete(c.Request.Context(), orgID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted successfully"})
}
