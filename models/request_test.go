package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOverdue(t *testing.T) {
	end := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	before := end.Add(-time.Hour)
	after := end.Add(time.Hour)
	returned := after

	t.Run("approved past end is overdue", func(t *testing.T) {
		r := &BorrowRequest{Status: RequestApproved, EndTime: end}
		assert.True(t, r.IsOverdue(after))
	})

	t.Run("approved within window is not overdue", func(t *testing.T) {
		r := &BorrowRequest{Status: RequestApproved, EndTime: end}
		assert.False(t, r.IsOverdue(before))
	})

	t.Run("exactly at end is not overdue", func(t *testing.T) {
		r := &BorrowRequest{Status: RequestApproved, EndTime: end}
		assert.False(t, r.IsOverdue(end))
	})

	t.Run("pending never goes overdue", func(t *testing.T) {
		r := &BorrowRequest{Status: RequestPending, EndTime: end}
		assert.False(t, r.IsOverdue(after))
	})

	t.Run("returned loan is not overdue even past end", func(t *testing.T) {
		r := &BorrowRequest{Status: RequestReturned, EndTime: end, ReturnedAt: &returned}
		assert.False(t, r.IsOverdue(after))
	})

	t.Run("approved but already returned_at is not overdue", func(t *testing.T) {
		r := &BorrowRequest{Status: RequestApproved, EndTime: end, ReturnedAt: &returned}
		assert.False(t, r.IsOverdue(after))
	})
}

func TestActive(t *testing.T) {
	assert.True(t, (&BorrowRequest{Status: RequestPending}).Active())
	assert.True(t, (&BorrowRequest{Status: RequestApproved}).Active())
	assert.False(t, (&BorrowRequest{Status: RequestRejected}).Active())
	assert.False(t, (&BorrowRequest{Status: RequestReturned}).Active())
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, HasRole([]string{RoleSiswa, RoleGuru}, RoleGuru))
	assert.False(t, HasRole([]string{RoleSiswa}, RoleAdmin))
	assert.False(t, HasRole(nil, RoleAdmin))

	assert.True(t, IsStaff([]string{RoleGuru}))
	assert.True(t, IsStaff([]string{RoleAdmin}))
	assert.False(t, IsStaff([]string{RoleSiswa}))

	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("kepala_sekolah"))
}
