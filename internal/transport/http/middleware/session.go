package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docchat/internal/pkg/sessiontoken"
)

const ContextSessionIDKey = "session_id"

// Session binds each browser to a session id carried in a signed cookie.
// A missing, invalid, or expired token starts a fresh session.
func Session(secret, cookieName string, ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl.Seconds())
	return func(c *gin.Context) {
		var sessionID string

		if raw, err := c.Cookie(cookieName); err == nil && raw != "" {
			if sid, err := sessiontoken.Parse(secret, raw); err == nil {
				sessionID = sid
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := sessiontoken.Sign(secret, sessionID, ttl)
			if err == nil {
				c.SetCookie(cookieName, token, maxAge, "/", "", false, true)
			}
		}

		c.Set(ContextSessionIDKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id the middleware attached to the request.
func SessionID(c *gin.Context) string {
	if v, ok := c.Get(ContextSessionIDKey); ok {
		if sid, ok := v.(string); ok {
			return sid
		}
	}
	return ""
}
