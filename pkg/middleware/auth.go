package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/models"
	"github.com/madr-project/madr/pkg/metrics"
)

// userKey is the Gin context key holding the resolved account.
const userKey = "user"

// Resolver is the minimal interface the middleware depends on: it maps a raw
// bearer token to the live account it identifies.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (*models.User, error)
}

// Auth returns a Gin middleware that verifies Bearer tokens using the
// provided resolver and stores the resolved account in the request context.
func Auth(res Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			abortUnauthorized(c, "missing")
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			abortUnauthorized(c, "malformed")
			return
		}

		user, err := res.Resolve(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "rejected")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, reason string) {
	metrics.AuthFailures.WithLabelValues(reason).Inc()
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": apperr.ErrUnauthenticated.Error()})
}

// CurrentUser returns the account stored by Auth, or false when the request
// did not pass through the middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
