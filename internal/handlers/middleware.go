package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baguskharisma/pos-system-sub000/internal/auth"
	"github.com/baguskharisma/pos-system-sub000/internal/ratelimit"
)

// actorRoleHeader names the header carrying the authenticated actor's
// role. Authentication itself happens upstream (API gateway authorizer);
// handlers only consume the explicit role value.
const actorRoleHeader = "X-Actor-Role"

// requirePermission resolves the actor role from the request and gates the
// route on a single permission tag.
func requirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := auth.ParseRole(c.GetHeader(actorRoleHeader))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown_role"})
			return
		}
		if !auth.Can(role, perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission_denied"})
			return
		}
		c.Next()
	}
}

// rateLimitMiddleware rejects clients exceeding the limiter's window,
// keyed by client IP.
func rateLimitMiddleware(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
			return
		}
		c.Next()
	}
}
