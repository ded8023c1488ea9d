package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NewRelicSession tags the request's New Relic transaction with the caller.
// It is a no-op when the agent is disabled or no session is present.
func NewRelicSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		txn := nrgin.Transaction(c)
		if txn != nil {
			if sess, ok := SessionFrom(c); ok {
				txn.AddAttribute("user.id", sess.UserID)
				txn.AddAttribute("user.role", string(sess.Role))
			}
		}

		c.Next()

		if txn != nil {
			for _, err := range c.Errors {
				txn.NoticeError(err.Err)
			}
		}
	}
}
