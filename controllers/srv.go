package controllers

import (
	"errors"
	"net/http"

	"sipinjam/app"
	"sipinjam/db"
	"sipinjam/notify"
	"sipinjam/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Srv bundles what every controller needs.
type Srv struct {
	Repo     *db.Repo
	Sessions *session.AppSessionStore
	Notifier *notify.Notifier
	Cfg      app.Config
	Log      *zap.SugaredLogger
}

func NewSrv(a *app.App) *Srv {
	return &Srv{
		Repo:     a.Repo,
		Sessions: a.Sessions(),
		Notifier: a.Notifier,
		Cfg:      a.Config,
		Log:      a.Log,
	}
}

// writeErr maps the workflow error taxonomy onto HTTP statuses.
func (s *Srv) writeErr(c *gin.Context, err error) {
	var ve *db.ValidationError
	var ce *db.ConflictError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, app.H{"error": ve.Error(), "field": ve.Field})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, app.H{"error": ce.Error(), "state": ce.State})
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	default:
		s.Log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": "internal error"})
	}
}
