package controllers

import (
	"net/http"
	"strconv"
	"time"

	"sipinjam/app"
	"sipinjam/db"
	"sipinjam/models"
	"sipinjam/notify"
	"sipinjam/policy"

	"github.com/gin-gonic/gin"
)

type RequestController struct{ *Srv }

func NewRequestController(s *Srv) *RequestController { return &RequestController{Srv: s} }

type createRequestInput struct {
	AssetID    string    `json:"assetId" binding:"required"`
	BorrowerID string    `json:"borrowerId"`
	Purpose    string    `json:"purpose" binding:"required"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
}

// Create opens a pending request. The borrower is always the caller:
// naming someone else is denied before anything is written.
func (rc *RequestController) Create(c *gin.Context) {
	var in createRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	caller := app.CallerFrom(c)
	borrower := in.BorrowerID
	if borrower == "" {
		borrower = caller.IdentityID
	}
	if !policy.CanCreateRequest(caller, borrower) {
		c.JSON(http.StatusForbidden, app.H{"error": "requests can only be created for yourself"})
		return
	}

	req, err := rc.Repo.CreateRequest(c.Request.Context(), borrower, db.CreateRequestInput{
		AssetID:   in.AssetID,
		Purpose:   in.Purpose,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	})
	if err != nil {
		rc.writeErr(c, err)
		return
	}
	rc.Notifier.Publish(c.Request.Context(), notify.TopicRequestChanged, req.ID, map[string]string{"event": models.ActionRequest})
	rc.Notifier.Publish(c.Request.Context(), notify.TopicActivityLogged, req.ID, map[string]string{"action": models.ActionRequest})
	c.JSON(http.StatusCreated, req)
}

// List shows staff everything; other callers only their own requests.
func (rc *RequestController) List(c *gin.Context) {
	caller := app.CallerFrom(c)
	q := db.ListRequestsQuery{
		AssetID: c.Query("assetId"),
		Status:  c.Query("status"),
	}
	if caller.IsStaff() {
		q.BorrowerID = c.Query("borrowerId")
	} else {
		q.BorrowerID = caller.IdentityID
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := rc.Repo.ListRequests(c.Request.Context(), q)
	if err != nil {
		rc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (rc *RequestController) Get(c *gin.Context) {
	req, err := rc.Repo.FindRequestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		rc.writeErr(c, err)
		return
	}
	if !policy.CanReadRequest(app.CallerFrom(c), req.BorrowerID) {
		// Same shape as a miss so strangers learn nothing.
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"request": req,
		"overdue": req.IsOverdue(time.Now().UTC()),
	})
}

type decisionInput struct {
	Notes string `json:"notes"`
}

func (rc *RequestController) Approve(c *gin.Context) {
	var in decisionInput
	_ = c.ShouldBindJSON(&in)
	caller := app.CallerFrom(c)
	if !policy.CanDecideRequest(caller) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	req, err := rc.Repo.Approve(c.Request.Context(), c.Param("id"), caller.IdentityID, in.Notes)
	if err != nil {
		rc.writeErr(c, err)
		return
	}
	rc.Notifier.Publish(c.Request.Context(), notify.TopicRequestChanged, req.ID, map[string]string{"event": models.ActionApprove})
	rc.Notifier.Publish(c.Request.Context(), notify.TopicAssetChanged, req.AssetID, map[string]string{"event": "loaned"})
	rc.Notifier.Publish(c.Request.Context(), notify.TopicActivityLogged, req.ID, map[string]string{"action": models.ActionApprove})
	rc.Notifier.Publish(c.Request.Context(), notify.TopicActivityLogged, req.ID, map[string]string{"action": models.ActionBorrow})
	c.JSON(http.StatusOK, req)
}

func (rc *RequestController) Reject(c *gin.Context) {
	var in decisionInput
	_ = c.ShouldBindJSON(&in)
	caller := app.CallerFrom(c)
	if !policy.CanDecideRequest(caller) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	req, err := rc.Repo.Reject(c.Request.Context(), c.Param("id"), caller.IdentityID, in.Notes)
	if err != nil {
		rc.writeErr(c, err)
		return
	}
	rc.Notifier.Publish(c.Request.Context(), notify.TopicRequestChanged, req.ID, map[string]string{"event": models.ActionReject})
	rc.Notifier.Publish(c.Request.Context(), notify.TopicActivityLogged, req.ID, map[string]string{"action": models.ActionReject})
	c.JSON(http.StatusOK, req)
}

type returnInput struct {
	Condition string `json:"condition"`
	Damaged   bool   `json:"damaged"`
}

func (rc *RequestController) Return(c *gin.Context) {
	var in returnInput
	_ = c.ShouldBindJSON(&in)
	caller := app.CallerFrom(c)
	if !policy.CanDecideRequest(caller) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	req, err := rc.Repo.Return(c.Request.Context(), c.Param("id"), caller.IdentityID, db.ReturnInput{
		Condition: in.Condition,
		Damaged:   in.Damaged,
	})
	if err != nil {
		rc.writeErr(c, err)
		return
	}
	rc.Notifier.Publish(c.Request.Context(), notify.TopicRequestChanged, req.ID, map[string]string{"event": models.ActionReturn})
	rc.Notifier.Publish(c.Request.Context(), notify.TopicAssetChanged, req.AssetID, map[string]string{"event": "returned"})
	rc.Notifier.Publish(c.Request.Context(), notify.TopicActivityLogged, req.ID, map[string]string{"action": models.ActionReturn})
	c.JSON(http.StatusOK, req)
}
