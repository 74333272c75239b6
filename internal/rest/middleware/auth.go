package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/engagehq/engage-api/internal/api/dto"
	"github.com/engagehq/engage-api/internal/auth"
	"github.com/engagehq/engage-api/internal/config"
	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/engagehq/engage-api/internal/types"
	"github.com/gin-gonic/gin"
)

// GuestMiddleware admits unauthenticated requests on the public surface.
// It sets the default tenant so downstream queries stay tenant-scoped.
func GuestMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// AuthenticateMiddleware authenticates staff requests via a JWT bearer token.
// On first sight of a subject it provisions the staff user record, so the
// serial user id is available to handlers that scope by assignment.
func AuthenticateMiddleware(
	cfg *config.Configuration,
	userService service.UserService,
	logger *logger.Logger,
) gin.HandlerFunc {
	authProvider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authProvider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Errorw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims == nil || claims.ExternalID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		tenantID := claims.TenantID
		if tenantID == 0 {
			tenantID = types.DefaultTenantID
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, claims.ExternalID)
		ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
		ctx = context.WithValue(ctx, types.CtxRoles, claims.Roles)

		// Provision or refresh the staff user behind the token so handlers
		// can resolve the caller's serial id.
		if claims.Email != "" {
			staffUser, err := userService.CreateOrUpdateUser(ctx, dto.CreateUserRequest{
				ExternalID: claims.ExternalID,
				FirstName:  claims.FirstName,
				LastName:   claims.LastName,
				Email:      claims.Email,
			})
			if err != nil {
				logger.Errorw("failed to provision staff user",
					"external_id", claims.ExternalID,
					"error", err)
			} else {
				ctx = context.WithValue(ctx, types.CtxStaffUserID, staffUser.ID)
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
