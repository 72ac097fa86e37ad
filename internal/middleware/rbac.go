package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shelter-adoption-api/internal/models"
	appErrors "github.com/noah-isme/shelter-adoption-api/pkg/errors"
	"github.com/noah-isme/shelter-adoption-api/pkg/response"
)

// RequireRoles admits only callers whose role is listed. Ownership checks live in the
// services, so routes open to owners list every role that may own a record.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
