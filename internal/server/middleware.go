package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
	tokendomain "github.com/feedbackpod/feedbackpod/internal/token/domain"
)

const contextClaimsKey = "auth_claims"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthRequired verifies the bearer token and rejects blacklisted ones.
// Verification is stateless; the blacklist lookup hits the identity store
// on every request so a logout takes effect immediately.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			AbortWithError(c, ErrAuthRequired)
			return
		}

		claims, err := s.tokensvc.Verify(raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		revoked, err := s.tokensvc.IsRevoked(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if revoked {
			AbortWithError(c, ErrTokenRevoked)
			return
		}

		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth populates claims when a valid bearer token is present but
// lets anonymous requests through. Used by the root-setup route, which is
// open only until the first rootadm exists.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}
		claims, err := s.tokensvc.Verify(raw)
		if err != nil {
			c.Next()
			return
		}
		revoked, err := s.tokensvc.IsRevoked(c.Request.Context(), raw)
		if err != nil || revoked {
			c.Next()
			return
		}
		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// RequireRole allows only the listed roles. There is no role hierarchy;
// every route names the exact set it accepts.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil {
			AbortWithError(c, ErrAuthRequired)
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

func claimsFrom(c *gin.Context) *tokendomain.Claims {
	v, ok := c.Get(contextClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*tokendomain.Claims)
	if !ok {
		return nil
	}
	return claims
}

// requireOrgAccess re-checks per request that the caller may act on orgID.
// rootadm passes everywhere; everyone else is confined to their own org.
// Ownership is read from the tenant row, not the token, so a transferred
// tenant locks out the old owner without waiting for token expiry.
func (s *Server) requireOrgAccess(c *gin.Context, orgID string) bool {
	claims := claimsFrom(c)
	if claims == nil {
		AbortWithError(c, ErrAuthRequired)
		return false
	}
	if claims.Role == identitydomain.RoleRootAdmin {
		return true
	}
	if claims.OrgID != orgID {
		AbortWithError(c, ErrForbidden)
		return false
	}
	if claims.Role == identitydomain.RoleOwner {
		tenant, err := s.tenants.FindByOrgID(c.Request.Context(), orgID)
		if err != nil {
			AbortWithError(c, err)
			return false
		}
		if tenant.Owner == nil || tenant.Owner.String() != claims.UserID {
			AbortWithError(c, ErrForbidden)
			return false
		}
	}
	return true
}
