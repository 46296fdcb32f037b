package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simpleapi/simpleapi/pkg/problem"
)

// Verifier validates a raw bearer token and returns its embedded claims.
type Verifier interface {
	Verify(ctx context.Context, raw string) (map[string]interface{}, error)
}

// RequireToken enforces the must-be-authenticated policy: endpoints not
// registered behind it are the anonymous-allowed exceptions. On success the
// token claims are stored in the gin context under "claims".
func RequireToken(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			unauthorized(c, "missing Authorization header")
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			unauthorized(c, "invalid Authorization header")
			return
		}

		claims, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	problem.Problem{
		Title:  "Unauthorized",
		Detail: detail,
		Status: http.StatusUnauthorized,
		Type:   "InvalidToken",
	}.Abort(c, false)
}
