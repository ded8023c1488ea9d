package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"driveu/internal/domain"
	"driveu/internal/session"
)

const sessionKey = "driveu.session"

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's session in the context.
func RequireAuth(issuer *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "missing Authorization header", Code: "unauthorized"})
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "invalid Authorization header", Code: "unauthorized"})
			return
		}

		sess, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "invalid or expired token", Code: "unauthorized"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireRole lets only callers with role through. It must run after
// RequireAuth.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "authentication required", Code: "unauthorized"})
			return
		}
		if sess.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{Error: "only " + string(role) + "s may do this", Code: "forbidden"})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session stored by RequireAuth.
func SessionFrom(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}
