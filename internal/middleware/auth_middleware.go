package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tinkerlab/labtrack/internal/app/auth"
	"github.com/tinkerlab/labtrack/internal/app/models"
	"github.com/tinkerlab/labtrack/internal/app/models/dto"
	"github.com/tinkerlab/labtrack/internal/pkg/apperrors"
	jwtauth "github.com/tinkerlab/labtrack/internal/pkg/auth"
	"github.com/tinkerlab/labtrack/internal/pkg/logger"
	"github.com/tinkerlab/labtrack/internal/pkg/revocation"
)

// Context keys set by JWTAuth
const (
	ContextUserID    = "userID"
	ContextEmail     = "email"
	ContextRole      = "role"
	ContextPrincipal = "principal"
	ContextTokenID   = "tokenID"
	ContextTokenExp  = "tokenExpiresAt"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *jwtauth.JWTService
	revoked    revocation.Store
	authz      *auth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *jwtauth.JWTService, revoked revocation.Store, authz *auth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		revoked:    revoked,
		authz:      authz,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		revoked, err := m.revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Error().Err(err).Str("tokenID", claims.ID).Msg("Failed to check token revocation")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error"))
			return
		}
		if revoked {
			abortUnauthorized(c, dto.ErrorCodeRevokedToken, "Token has been revoked")
			return
		}

		c.Set(ContextUserID, principal.UserID)
		c.Set(ContextEmail, principal.Email)
		c.Set(ContextRole, string(principal.Role))
		c.Set(ContextPrincipal, principal)
		c.Set(ContextTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// tokenFromRequest reads the bearer token from the Authorization header and
// falls back to the authorization/token query parameters. Browser WebSocket
// clients cannot set headers, so /ws relies on the query form.
func tokenFromRequest(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		return jwtauth.ExtractBearerToken(header)
	}

	for _, key := range []string{"authorization", "Authorization", "token"} {
		queryToken := strings.TrimSpace(c.Query(key))
		if queryToken == "" {
			continue
		}
		// Accept both "Bearer <jwt>" and a bare token
		if token, err := jwtauth.ExtractBearerToken(queryToken); err == nil {
			return token, nil
		}
		if strings.Contains(queryToken, " ") {
			return "", jwtauth.ErrInvalidFormat
		}
		return queryToken, nil
	}

	return "", jwtauth.ErrInvalidFormat
}

// RequirePermission rejects callers whose role may not invoke op
func (m *AuthMiddleware) RequirePermission(op auth.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		if err := m.authz.Authorize(principal, op); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrorCodeForbidden, "insufficient permissions"))
			return
		}

		c.Next()
	}
}

// PrincipalFrom returns the caller identity stored by JWTAuth
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(ContextPrincipal)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := v.(models.Principal)
	return principal, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
