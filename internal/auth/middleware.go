package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
)

const actorKey = "actor"

// SessionCookie is the cookie the session token travels in when not sent
// as a bearer header.
const SessionCookie = "session"

// Middleware reads the session token from the cookie or the Authorization
// header and stores the actor in the gin context. Requests without a valid
// token pass through unauthenticated; RequireAuth gates the protected
// routes.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			token = cookie
		} else if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			c.Next()
			return
		}
		actor, err := ParseToken(secret, token)
		if err != nil {
			// Expired or garbage cookie: clear it so the client stops
			// sending it.
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
			c.Next()
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAuth aborts with 401 when no actor is present.
func RequireAuth(c *gin.Context) {
	if _, ok := c.Get(actorKey); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Next()
}

// RequireStaff aborts with 403 unless the actor is an admin or agent.
func RequireStaff(c *gin.Context) {
	actor, ok := ActorFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if !actor.IsStaff() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "support staff access required"})
		return
	}
	c.Next()
}

// ActorFrom extracts the authenticated actor from the gin context.
func ActorFrom(c *gin.Context) (policy.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return policy.Actor{}, false
	}
	actor, ok := v.(policy.Actor)
	return actor, ok
}
