package db

import (
	"context"
	"time"

	"sipinjam/models"

	"gorm.io/gorm"
)

// SweepResult reports what one sweep pass touched.
type SweepResult struct {
	Marked []string // request ids newly flagged overdue
}

// SweepOverdue flags assets whose governing approved request has run past
// its window: the asset goes dipinjam → overdue and one overdue activity
// row is written for the request. The request row itself is not mutated;
// overdue stays a derived read-time state.
//
// The pass is idempotent: the activity insert is guarded by an existence
// check inside the same transaction, so re-running at any interval never
// duplicates a log entry.
func (r *Repo) SweepOverdue(ctx context.Context, now time.Time) (*SweepResult, error) {
	res := &SweepResult{}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var due []models.BorrowRequest
		if err := tx.Clauses(lockForUpdate()).
			Where(models.OverdueConds, now).
			Find(&due).Error; err != nil {
			return err
		}
		for i := range due {
			req := &due[i]

			if err := tx.Model(&models.Asset{}).
				Where("id = ? AND status = ?", req.AssetID, models.AssetLoaned).
				Update("status", models.AssetOverdue).Error; err != nil {
				return err
			}

			var logged int64
			if err := tx.Model(&models.ActivityLog{}).
				Where("request_id = ? AND action = ?", req.ID, models.ActionOverdue).
				Count(&logged).Error; err != nil {
				return err
			}
			if logged > 0 {
				continue
			}
			if err := appendLog(tx, req.ID, models.ActionOverdue, req.BorrowerID, "loan window elapsed"); err != nil {
				return err
			}
			res.Marked = append(res.Marked, req.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
