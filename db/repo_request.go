package db

import (
	"context"
	"time"

	"sipinjam/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func lockForUpdate() clause.Expression {
	return clause.Locking{Strength: "UPDATE"}
}

func appendLog(tx *gorm.DB, requestID, action, actorID, notes string) error {
	return tx.Create(&models.ActivityLog{
		RequestID:   requestID,
		Action:      action,
		PerformedBy: actorID,
		Notes:       notes,
	}).Error
}

type CreateRequestInput struct {
	AssetID   string
	Purpose   string
	StartTime time.Time
	EndTime   time.Time
}

// CreateRequest opens a pending request for the caller and writes the
// request activity row in the same transaction.
func (r *Repo) CreateRequest(ctx context.Context, borrowerID string, in CreateRequestInput) (*models.BorrowRequest, error) {
	if err := CheckCreate(in.Purpose, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	var req *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, "id = ?", in.AssetID).Error; err != nil {
			return notFound(err)
		}
		now := time.Now().UTC()
		q := &models.BorrowRequest{
			ID:          uuid.NewString(),
			AssetID:     asset.ID,
			BorrowerID:  borrowerID,
			Purpose:     in.Purpose,
			RequestedAt: now,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Status:      models.RequestPending,
		}
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		if err := appendLog(tx, q.ID, models.ActionRequest, borrowerID, in.Purpose); err != nil {
			return err
		}
		req = q
		return nil
	})
	return req, err
}

// Approve moves pending → approved and the asset tersedia → dipinjam as
// one transaction: both rows are locked, the guards re-run under the
// locks, and a partial update can never land. The asset is resolved
// strictly by the request's asset id.
func (r *Repo) Approve(ctx context.Context, requestID, approverID, notes string) (*models.BorrowRequest, error) {
	var out *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.BorrowRequest
		if err := tx.Clauses(lockForUpdate()).First(&req, "id = ?", requestID).Error; err != nil {
			return notFound(err)
		}
		var asset models.Asset
		if err := tx.Clauses(lockForUpdate()).First(&asset, "id = ?", req.AssetID).Error; err != nil {
			return notFound(err)
		}
		if err := CheckApprove(&req, &asset); err != nil {
			return err
		}

		now := time.Now().UTC()
		req.Status = models.RequestApproved
		req.ApproverID = &approverID
		req.ApprovedAt = &now
		req.ApprovalNotes = notes
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Asset{}).
			Where("id = ? AND status = ?", asset.ID, models.AssetAvailable).
			Update("status", models.AssetLoaned).Error; err != nil {
			return err
		}
		if err := appendLog(tx, req.ID, models.ActionApprove, approverID, notes); err != nil {
			return err
		}
		if err := appendLog(tx, req.ID, models.ActionBorrow, req.BorrowerID, ""); err != nil {
			return err
		}
		out = &req
		return nil
	})
	return out, err
}

// Reject moves pending → rejected. The asset is untouched.
func (r *Repo) Reject(ctx context.Context, requestID, approverID, notes string) (*models.BorrowRequest, error) {
	var out *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.BorrowRequest
		if err := tx.Clauses(lockForUpdate()).First(&req, "id = ?", requestID).Error; err != nil {
			return notFound(err)
		}
		if err := CheckReject(&req); err != nil {
			return err
		}
		now := time.Now().UTC()
		req.Status = models.RequestRejected
		req.ApproverID = &approverID
		req.ApprovedAt = &now
		req.ApprovalNotes = notes
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		if err := appendLog(tx, req.ID, models.ActionReject, approverID, notes); err != nil {
			return err
		}
		out = &req
		return nil
	})
	return out, err
}

type ReturnInput struct {
	Condition string
	Damaged   bool
}

// Return moves approved → returned and releases the asset to tersedia or
// rusak depending on the recorded condition, atomically with the log row.
func (r *Repo) Return(ctx context.Context, requestID, actorID string, in ReturnInput) (*models.BorrowRequest, error) {
	var out *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.BorrowRequest
		if err := tx.Clauses(lockForUpdate()).First(&req, "id = ?", requestID).Error; err != nil {
			return notFound(err)
		}
		if err := CheckReturn(&req); err != nil {
			return err
		}
		now := time.Now().UTC()
		req.Status = models.RequestReturned
		req.ReturnedAt = &now
		req.ReturnCondition = in.Condition
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Asset{}).
			Where("id = ?", req.AssetID).
			Update("status", AssetStatusOnReturn(in.Damaged)).Error; err != nil {
			return err
		}
		if err := appendLog(tx, req.ID, models.ActionReturn, actorID, in.Condition); err != nil {
			return err
		}
		out = &req
		return nil
	})
	return out, err
}

func (r *Repo) FindRequestByID(ctx context.Context, id string) (*models.BorrowRequest, error) {
	var req models.BorrowRequest
	if err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

type ListRequestsQuery struct {
	BorrowerID string
	AssetID    string
	Status     string // pending/approved/rejected/returned/overdue
	Page       int
	Size       int
}

type ListRequestsResult struct {
	Requests []models.BorrowRequest `json:"requests"`
	Total    int64                  `json:"total"`
}

func (r *Repo) ListRequests(ctx context.Context, q ListRequestsQuery) (ListRequestsResult, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.BorrowRequest{})
	if q.BorrowerID != "" {
		tx = tx.Where("borrower_id = ?", q.BorrowerID)
	}
	if q.AssetID != "" {
		tx = tx.Where("asset_id = ?", q.AssetID)
	}
	switch q.Status {
	case "":
		// all
	case "overdue":
		tx = tx.Where(models.OverdueConds, time.Now().UTC())
	default:
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListRequestsResult{}, err
	}
	var reqs []models.BorrowRequest
	if err := tx.
		Order("requested_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&reqs).Error; err != nil {
		return ListRequestsResult{}, err
	}
	return ListRequestsResult{Requests: reqs, Total: total}, nil
}
