package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spacekitchen/burgerhub/internal/auth"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyHeader(header string) auth.Verdict
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

const ctxUserIDKey = "auth.userID"

// RequireAuth maps the verification verdict onto the wire contract:
// absent -> 401 "You should be authorised", unparseable -> 403
// "jwt malformed", past expiry -> 403 "jwt expired". The messages are
// asserted verbatim by callers.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := m.jwt.VerifyHeader(c.GetHeader("Authorization"))

		switch v.Kind {
		case auth.VerdictAbsent:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "You should be authorised",
			})
			return

		case auth.VerdictMalformed:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "jwt malformed",
			})
			return

		case auth.VerdictExpired:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "jwt expired",
			})
			return
		}

		c.Set(ctxUserIDKey, v.UserID)

		c.Next()
	}
}

// UserIDFromContext spares handlers from knowing the magic key.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
