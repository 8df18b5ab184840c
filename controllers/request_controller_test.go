package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sipinjam/app"
	"sipinjam/policy"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Handler-level checks that fail before any storage access: binding
// validation and the borrower-must-be-caller rule.

func testRouter(t *testing.T, caller policy.Caller, register func(r *gin.Engine, s *Srv)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("caller", caller)
		c.Next()
	})
	register(r, &Srv{Log: zap.NewNop().Sugar()})
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRequestRejectsForeignBorrower(t *testing.T) {
	siswa := policy.Caller{IdentityID: "id-siswa", Roles: []string{"siswa"}}
	r := testRouter(t, siswa, func(r *gin.Engine, s *Srv) {
		r.POST("/requests", NewRequestController(s).Create)
	})

	w := postJSON(t, r, "/requests", gin.H{
		"assetId":    "11111111-1111-1111-1111-111111111111",
		"borrowerId": "id-someone-else",
		"purpose":    "praktikum",
		"startTime":  "2025-01-10T08:00:00Z",
		"endTime":    "2025-01-10T10:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateRequestRequiresFields(t *testing.T) {
	siswa := policy.Caller{IdentityID: "id-siswa"}
	r := testRouter(t, siswa, func(r *gin.Engine, s *Srv) {
		r.POST("/requests", NewRequestController(s).Create)
	})

	t.Run("missing purpose", func(t *testing.T) {
		w := postJSON(t, r, "/requests", gin.H{
			"assetId":   "11111111-1111-1111-1111-111111111111",
			"startTime": "2025-01-10T08:00:00Z",
			"endTime":   "2025-01-10T10:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing window", func(t *testing.T) {
		w := postJSON(t, r, "/requests", gin.H{
			"assetId": "11111111-1111-1111-1111-111111111111",
			"purpose": "praktikum",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStaffOnlyBlocksStudents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	siswa := policy.Caller{IdentityID: "id-siswa", Roles: []string{"siswa"}}
	r.Use(func(c *gin.Context) {
		c.Set("caller", siswa)
		c.Next()
	})
	hit := false
	r.POST("/requests/:id/approve", app.StaffOnly(), func(c *gin.Context) { hit = true })

	w := postJSON(t, r, "/requests/abc/approve", gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, hit, "handler must not run for a student caller")
}

func TestApproveDeniedForStudentCaller(t *testing.T) {
	// Even with the route middleware out of the picture, the handler's
	// own capability check refuses a non-staff approver.
	siswa := policy.Caller{IdentityID: "id-siswa", Roles: []string{"siswa"}}
	r := testRouter(t, siswa, func(r *gin.Engine, s *Srv) {
		rc := NewRequestController(s)
		r.POST("/requests/:id/approve", rc.Approve)
		r.POST("/requests/:id/reject", rc.Reject)
		r.POST("/requests/:id/return", rc.Return)
	})

	for _, path := range []string{
		"/requests/abc/approve",
		"/requests/abc/reject",
		"/requests/abc/return",
	} {
		w := postJSON(t, r, path, gin.H{})
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestRegisterValidatesEmail(t *testing.T) {
	r := testRouter(t, policy.Caller{}, func(r *gin.Engine, s *Srv) {
		r.POST("/auth/register", NewAuthController(s).Register)
	})

	w := postJSON(t, r, "/auth/register", gin.H{"email": "not-an-email", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
