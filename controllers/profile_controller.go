package controllers

import (
	"net/http"
	"strconv"

	"sipinjam/app"
	"sipinjam/db"
	"sipinjam/policy"

	"github.com/gin-gonic/gin"
)

type ProfileController struct{ *Srv }

func NewProfileController(s *Srv) *ProfileController { return &ProfileController{Srv: s} }

// Profiles are public to read for authenticated users.
func (pc *ProfileController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	res, err := pc.Repo.ListProfiles(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		pc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (pc *ProfileController) Get(c *gin.Context) {
	p, err := pc.Repo.FindProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		pc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type profileUpdateInput struct {
	FullName   *string `json:"fullName"`
	IDNumber   *string `json:"idNumber"`
	Department *string `json:"department"`
	ClassLabel *string `json:"classLabel"`
	CohortYear *int    `json:"cohortYear"`
}

// Update writes a profile: the owner may edit their own, admins anyone's.
func (pc *ProfileController) Update(c *gin.Context) {
	targetID := c.Param("id")
	if targetID == "" {
		targetID = app.CallerFrom(c).IdentityID
	}
	if !policy.CanWriteProfile(app.CallerFrom(c), targetID) {
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
		return
	}

	var in profileUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	p, err := pc.Repo.UpdateProfile(c.Request.Context(), targetID, db.ProfileUpdate{
		FullName:   in.FullName,
		IDNumber:   in.IDNumber,
		Department: in.Department,
		ClassLabel: in.ClassLabel,
		CohortYear: in.CohortYear,
	})
	if err != nil {
		pc.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
