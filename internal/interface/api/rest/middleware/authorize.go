package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authorize guards a route. No attached identity is a 401. A non-admin on
// an admin-only route is a 405 - method not allowed for this caller, not
// forbidden - which is the API's long-standing convention. It never touches
// the store; Identity has already resolved everything it needs.
func Authorize(adminOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "unauthorized"},
			)
			return
		}

		if adminOnly && !u.Admin {
			c.AbortWithStatusJSON(
				http.StatusMethodNotAllowed,
				gin.H{"error": "method not allowed"},
			)
			return
		}

		c.Next()
	}
}
