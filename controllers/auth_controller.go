package controllers

import (
	"errors"
	"net/http"
	"strings"

	"sipinjam/app"
	"sipinjam/db"
	"sipinjam/models"
	"sipinjam/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName"`
}

// Register creates the identity and publishes identity.created; the
// profile handler picks the event up and provisions the profile row.
func (ac *AuthController) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	ident := &models.Identity{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := ac.Repo.CreateIdentity(c.Request.Context(), ident); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, app.H{"error": "email already registered"})
			return
		}
		ac.writeErr(c, err)
		return
	}

	ac.Notifier.Publish(c.Request.Context(), notify.TopicIdentityCreated, ident.ID, map[string]string{
		"email":    ident.Email,
		"fullName": in.FullName,
	})
	c.JSON(http.StatusCreated, app.H{"id": ident.ID, "email": ident.Email})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	ident, err := ac.Repo.FindIdentityByEmail(c.Request.Context(), in.Email)
	if err != nil || !ident.IsActive ||
		bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	sid := uuid.NewString()
	if err := ac.Sessions.Create(c.Request.Context(), sid, ident.ID); err != nil {
		ac.writeErr(c, err)
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(ac.Cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(ac.Cfg.WebOrigin, "https://"),
	})

	roles, _ := ac.Repo.RolesOf(c.Request.Context(), ident.ID)
	c.JSON(http.StatusOK, app.H{"id": ident.ID, "email": ident.Email, "roles": roles})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.Sessions.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(ac.Cfg.WebOrigin, "https://"),
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// Me returns the caller's identity, roles, and profile if it exists yet.
func (ac *AuthController) Me(c *gin.Context) {
	caller := app.CallerFrom(c)
	ident, err := ac.Repo.FindIdentityByID(c.Request.Context(), caller.IdentityID)
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	out := app.H{"id": ident.ID, "email": ident.Email, "roles": caller.Roles}
	if p, err := ac.Repo.FindProfile(c.Request.Context(), caller.IdentityID); err == nil {
		out["profile"] = p
	} else if !errors.Is(err, db.ErrNotFound) {
		ac.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
