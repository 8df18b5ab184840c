package controllers

import (
	"net/http"

	"sipinjam/app"
	"sipinjam/db"
	"sipinjam/models"
	"sipinjam/notify"
	"sipinjam/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssetController struct{ *Srv }

func NewAssetController(s *Srv) *AssetController { return &AssetController{Srv: s} }

type createAssetInput struct {
	Name           string `json:"name" binding:"required"`
	Kind           string `json:"kind" binding:"required"`
	Location       string `json:"location"`
	ConditionNotes string `json:"conditionNotes"`
}

func (ac *AssetController) Create(c *gin.Context) {
	if !policy.CanWriteAsset(app.CallerFrom(c)) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}
	var in createAssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a := &models.Asset{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Kind:           in.Kind,
		Location:       in.Location,
		Status:         models.AssetAvailable,
		ConditionNotes: in.ConditionNotes,
	}
	if err := ac.Repo.CreateAsset(c.Request.Context(), a); err != nil {
		ac.writeErr(c, err)
		return
	}
	ac.Notifier.Publish(c.Request.Context(), notify.TopicAssetChanged, a.ID, map[string]string{"event": "created"})
	c.JSON(http.StatusCreated, a)
}

func (ac *AssetController) List(c *gin.Context) {
	assets, err := ac.Repo.ListAssets(c.Request.Context(), c.Query("kind"), c.Query("status"))
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"assets": assets})
}

func (ac *AssetController) Get(c *gin.Context) {
	a, err := ac.Repo.FindAssetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type updateAssetInput struct {
	Name           *string `json:"name"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	ConditionNotes *string `json:"conditionNotes"`
}

func (ac *AssetController) Update(c *gin.Context) {
	if !policy.CanWriteAsset(app.CallerFrom(c)) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}
	var in updateAssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a, err := ac.Repo.UpdateAsset(c.Request.Context(), c.Param("id"), db.AssetUpdate{
		Name:           in.Name,
		Location:       in.Location,
		Status:         in.Status,
		ConditionNotes: in.ConditionNotes,
	})
	if err != nil {
		ac.writeErr(c, err)
		return
	}
	ac.Notifier.Publish(c.Request.Context(), notify.TopicAssetChanged, a.ID, map[string]string{"event": "updated"})
	c.JSON(http.StatusOK, a)
}
