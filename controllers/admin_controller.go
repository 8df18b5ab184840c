package controllers

import (
	"net/http"
	"strconv"

	"sipinjam/app"
	"sipinjam/policy"

	"github.com/gin-gonic/gin"
)

type AdminController struct{ *Srv }

func NewAdminController(s *Srv) *AdminController { return &AdminController{Srv: s} }

type roleInput struct {
	IdentityID string `json:"identityId" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

func (ad *AdminController) GrantRole(c *gin.Context) {
	if !policy.CanManageRoles(app.CallerFrom(c)) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}
	var in roleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := ad.Repo.GrantRole(c.Request.Context(), in.IdentityID, in.Role); err != nil {
		ad.writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"ok": true})
}

func (ad *AdminController) RevokeRole(c *gin.Context) {
	if !policy.CanManageRoles(app.CallerFrom(c)) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}
	var in roleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := ad.Repo.RevokeRole(c.Request.Context(), in.IdentityID, in.Role); err != nil {
		ad.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (ad *AdminController) ListRoles(c *gin.Context) {
	ms, err := ad.Repo.ListMemberships(c.Request.Context(), c.Query("identityId"))
	if err != nil {
		ad.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"memberships": ms})
}

func (ad *AdminController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	res, err := ad.Repo.ListProfiles(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		ad.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteUser removes the identity, its profile and roles, and revokes
// every live session. Ledger rows stay: the audit trail survives.
func (ad *AdminController) DeleteUser(c *gin.Context) {
	if !policy.CanDeleteIdentity(app.CallerFrom(c)) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}
	id := c.Param("id")
	if err := ad.Repo.DeleteIdentity(c.Request.Context(), id); err != nil {
		ad.writeErr(c, err)
		return
	}
	if err := ad.Sessions.RevokeAllForUser(c.Request.Context(), id); err != nil {
		ad.Log.Warnw("revoke sessions", "identity", id, "error", err)
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
