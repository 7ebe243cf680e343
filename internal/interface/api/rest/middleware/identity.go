package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-accounts-api/internal/application/ports"
	"user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/infrastructure/jwt"
)

const ctxIdentity = "identity"

// CurrentUser returns the identity attached by the Identity middleware.
// Handlers behind Authorize can rely on ok being true.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, exists := c.Get(ctxIdentity)
	if !exists {
		return nil, false
	}
	u, ok := v.(*user.User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

func setCurrentUser(c *gin.Context, u *user.User) {
	c.Set(ctxIdentity, u)
}

// Identity resolves a bearer token into the current user record and attaches
// it to the request context. It never rejects a request: a missing header,
// an invalid token, or a vanished user all just leave the request
// unauthenticated for Authorize to deal with.
//
// The record is re-fetched by the token's login claim on every request; the
// token's own is_admin claim is ignored, so a stale token cannot assert
// privileges the user no longer holds.
func Identity(jwtService *jwt.Service, userService ports.UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			logger.Warn("malformed Authorization header")
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			logger.Warn("token validation failed", zap.Error(err))
			c.Next()
			return
		}

		u, err := userService.FindByLogin(c.Request.Context(), claims.Login)
		if err != nil {
			logger.Error("identity lookup failed",
				zap.String("login", claims.Login),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if u == nil {
			logger.Warn("token subject no longer exists", zap.String("login", claims.Login))
			c.Next()
			return
		}

		setCurrentUser(c, u)

		c.Next()
	}
}
