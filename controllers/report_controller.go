package controllers

import (
	"net/http"
	"strconv"
	"time"

	"sipinjam/app"
	"sipinjam/db"

	"github.com/gin-gonic/gin"
)

type ReportController struct{ *Srv }

func NewReportController(s *Srv) *ReportController { return &ReportController{Srv: s} }

// Reads degrade to empty results with a warning so a broken aggregate
// never takes the dashboard down.

func (rp *ReportController) Summary(c *gin.Context) {
	sum, err := rp.Repo.Summary(c.Request.Context(), time.Now().UTC())
	if err != nil {
		rp.Log.Warnw("summary report", "error", err)
		c.JSON(http.StatusOK, &db.SummaryReport{ByStatus: map[string]int64{}, Assets: map[string]int64{}})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (rp *ReportController) AssetTotals(c *gin.Context) {
	rows, err := rp.Repo.AssetLoanTotals(c.Request.Context())
	if err != nil {
		rp.Log.Warnw("asset totals report", "error", err)
		c.JSON(http.StatusOK, app.H{"assets": []db.AssetLoanRow{}})
		return
	}
	c.JSON(http.StatusOK, app.H{"assets": rows})
}

func (rp *ReportController) Departments(c *gin.Context) {
	rows, err := rp.Repo.DepartmentStats(c.Request.Context())
	if err != nil {
		rp.Log.Warnw("department report", "error", err)
		c.JSON(http.StatusOK, app.H{"departments": []db.DepartmentRow{}})
		return
	}
	c.JSON(http.StatusOK, app.H{"departments": rows})
}

func (rp *ReportController) Activity(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	feed, err := rp.Repo.RecentActivity(c.Request.Context(), page, size)
	if err != nil {
		rp.Log.Warnw("activity feed", "error", err)
		c.JSON(http.StatusOK, &db.ActivityFeed{Entries: []db.ActivityRow{}})
		return
	}
	c.JSON(http.StatusOK, feed)
}
