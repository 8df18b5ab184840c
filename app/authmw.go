package app

import (
	"net/http"

	"sipinjam/db"
	"sipinjam/policy"
	"sipinjam/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

const callerKey = "caller"

// AuthRequired resolves the session cookie to an identity, loads its role
// memberships once, and puts the policy.Caller into the gin context.
func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		ident, err := repo.FindIdentityByID(c.Request.Context(), as.IdentityID)
		if err != nil || !ident.IsActive {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		roles, err := repo.RolesOf(c.Request.Context(), ident.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, H{"error": "role lookup failed"})
			return
		}

		c.Set(callerKey, policy.Caller{IdentityID: ident.ID, Roles: roles})
		c.Next()
	}
}

// CallerFrom returns the authenticated caller set by AuthRequired.
func CallerFrom(c *gin.Context) policy.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(policy.Caller); ok {
			return caller
		}
	}
	return policy.Caller{}
}

// StaffOnly gates approval-side routes on admin or guru membership.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerFrom(c).IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
