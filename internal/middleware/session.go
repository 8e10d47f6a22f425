package middleware

import (
	"strings"

	"brandlink/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	CtxSession = "session"
	CtxUserID  = "user_id"
	CtxRole    = "role"
	CtxToken   = "session_token"
)

type SessionValidator interface {
	Validate(token string) (*jwt.Session, error)
}

// Session decodes the session token from the cookie or the Authorization
// header. An invalid or expired token is treated as no session; the request
// always continues and the access gate decides what to do with it.
func Session(validator SessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c, cookieName)
		if token != "" {
			if sess, err := validator.Validate(token); err == nil {
				c.Set(CtxSession, sess)
				c.Set(CtxUserID, sess.UserID)
				c.Set(CtxRole, sess.Role)
				c.Set(CtxToken, token)
			}
		}
		c.Next()
	}
}

// TokenFromRequest prefers an explicit bearer token over the cookie.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}

// CurrentSession returns the validated session or nil.
func CurrentSession(c *gin.Context) *jwt.Session {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*jwt.Session)
	return sess
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(CtxToken)
}
