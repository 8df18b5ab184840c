package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"sipinjam/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Workflow tests against a real Postgres instance. Set TEST_DATABASE_URL
// to run them; without it they skip so the pure-guard tests still run
// anywhere. Fixtures use fresh uuids so a shared database is fine.

func testRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedAsset(t *testing.T, r *Repo) *models.Asset {
	t.Helper()
	a := &models.Asset{
		ID:   uuid.NewString(),
		Name: "Kunci Lab " + uuid.NewString()[:8],
		Kind: models.KindKey,
	}
	require.NoError(t, r.CreateAsset(context.Background(), a))
	return a
}

func openRequest(t *testing.T, r *Repo, assetID, borrowerID string, start, end time.Time) *models.BorrowRequest {
	t.Helper()
	req, err := r.CreateRequest(context.Background(), borrowerID, CreateRequestInput{
		AssetID:   assetID,
		Purpose:   "praktikum jaringan",
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	return req
}

func countLogs(t *testing.T, r *Repo, requestID, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.DB.Model(&models.ActivityLog{}).
		Where("request_id = ? AND action = ?", requestID, action).
		Count(&n).Error)
	return n
}

func TestCreateRequestRoundTrip(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r)
	borrower := uuid.NewString()

	start := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	req := openRequest(t, r, asset.ID, borrower, start, end)

	got, err := r.FindRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, got.Status)
	assert.Equal(t, asset.ID, got.AssetID)
	assert.Equal(t, borrower, got.BorrowerID)
	assert.Equal(t, "praktikum jaringan", got.Purpose)
	assert.True(t, got.StartTime.Equal(start), "start time survives the round trip")
	assert.True(t, got.EndTime.Equal(end), "end time survives the round trip")
	assert.Nil(t, got.ApproverID)
	assert.Nil(t, got.ApprovedAt)
	assert.Nil(t, got.ReturnedAt)
	assert.EqualValues(t, 1, countLogs(t, r, req.ID, models.ActionRequest))
}

func TestApproveTransition(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r)
	approver := uuid.NewString()

	start := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	first := openRequest(t, r, asset.ID, uuid.NewString(), start, end)
	second := openRequest(t, r, asset.ID, uuid.NewString(), start, end)

	t.Run("approves an available asset", func(t *testing.T) {
		got, err := r.Approve(ctx, first.ID, approver, "oke")
		require.NoError(t, err)
		assert.Equal(t, models.RequestApproved, got.Status)
		require.NotNil(t, got.ApproverID)
		assert.Equal(t, approver, *got.ApproverID)
		assert.NotNil(t, got.ApprovedAt)

		a, err := r.FindAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AssetLoaned, a.Status)
		assert.EqualValues(t, 1, countLogs(t, r, first.ID, models.ActionApprove))
		assert.EqualValues(t, 1, countLogs(t, r, first.ID, models.ActionBorrow))
	})

	t.Run("conflicts when the asset is already loaned and touches nothing", func(t *testing.T) {
		_, err := r.Approve(ctx, second.ID, approver, "")
		var ce *ConflictError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, models.AssetLoaned, ce.State)

		got, err := r.FindRequestByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RequestPending, got.Status)
		assert.Nil(t, got.ApproverID)
		assert.Nil(t, got.ApprovedAt)

		a, err := r.FindAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AssetLoaned, a.Status)
		assert.EqualValues(t, 0, countLogs(t, r, second.ID, models.ActionApprove))
	})
}

func TestSweepOverdueRunsOnce(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	asset := seedAsset(t, r)
	borrower := uuid.NewString()

	now := time.Now().UTC()
	req := openRequest(t, r, asset.ID, borrower, now.Add(-3*time.Hour), now.Add(-1*time.Hour))
	_, err := r.Approve(ctx, req.ID, uuid.NewString(), "")
	require.NoError(t, err)

	res, err := r.SweepOverdue(ctx, now)
	require.NoError(t, err)
	assert.Contains(t, res.Marked, req.ID)

	res, err = r.SweepOverdue(ctx, now)
	require.NoError(t, err)
	assert.NotContains(t, res.Marked, req.ID)

	assert.EqualValues(t, 1, countLogs(t, r, req.ID, models.ActionOverdue))
	a, err := r.FindAssetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssetOverdue, a.Status)

	got, err := r.FindRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, got.Status, "overdue stays derived, never stored")
}

func TestReturnReleasesAsset(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	start := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	staff := uuid.NewString()

	t.Run("clean return frees the asset", func(t *testing.T) {
		asset := seedAsset(t, r)
		req := openRequest(t, r, asset.ID, uuid.NewString(), start, end)
		_, err := r.Approve(ctx, req.ID, staff, "")
		require.NoError(t, err)

		got, err := r.Return(ctx, req.ID, staff, ReturnInput{Condition: "baik"})
		require.NoError(t, err)
		assert.Equal(t, models.RequestReturned, got.Status)
		assert.NotNil(t, got.ReturnedAt)

		a, err := r.FindAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AssetAvailable, a.Status)
		assert.EqualValues(t, 1, countLogs(t, r, req.ID, models.ActionReturn))
	})

	t.Run("damaged return retires the asset", func(t *testing.T) {
		asset := seedAsset(t, r)
		req := openRequest(t, r, asset.ID, uuid.NewString(), start, end)
		_, err := r.Approve(ctx, req.ID, staff, "")
		require.NoError(t, err)

		_, err = r.Return(ctx, req.ID, staff, ReturnInput{Condition: "lensa retak", Damaged: true})
		require.NoError(t, err)

		a, err := r.FindAssetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AssetDamaged, a.Status)
	})
}

func TestIdentityEmailUnique(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	email := fmt.Sprintf("dup-%s@sekolah.sch.id", uuid.NewString()[:8])

	require.NoError(t, r.CreateIdentity(ctx, &models.Identity{
		ID: uuid.NewString(), Email: email, PasswordHash: "x", IsActive: true,
	}))
	err := r.CreateIdentity(ctx, &models.Identity{
		ID: uuid.NewString(), Email: email, PasswordHash: "x", IsActive: true,
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
