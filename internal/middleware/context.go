package middleware

import (
	"github.com/Hanjarang/news/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "auth.session"

func setSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionContextKey, sess)
}

// CurrentSession returns the session the gate attached to this request,
// if any. Absence means the caller is anonymous.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// CurrentUserID returns the authenticated user's id, or false for
// anonymous callers.
func CurrentUserID(c *gin.Context) (int64, bool) {
	sess, ok := CurrentSession(c)
	if !ok {
		return 0, false
	}
	return sess.UserID, true
}
