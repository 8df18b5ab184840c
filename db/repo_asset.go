package db

import (
	"context"
	"strings"

	"sipinjam/models"

	"gorm.io/gorm"
)

// Assets

func (r *Repo) CreateAsset(ctx context.Context, a *models.Asset) error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !models.ValidAssetKind(a.Kind) {
		return &ValidationError{Field: "kind", Reason: "must be key or projector"}
	}
	if a.Status == "" {
		a.Status = models.AssetAvailable
	}
	if !models.ValidAssetStatus(a.Status) {
		return &ValidationError{Field: "status", Reason: "unknown status"}
	}
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Repo) FindAssetByID(ctx context.Context, id string) (*models.Asset, error) {
	var a models.Asset
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *Repo) ListAssets(ctx context.Context, kind, status string) ([]models.Asset, error) {
	tx := r.DB.WithContext(ctx).Order("created_at DESC")
	if kind != "" {
		tx = tx.Where("kind = ?", kind)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var assets []models.Asset
	err := tx.Find(&assets).Error
	return assets, err
}

type AssetUpdate struct {
	Name           *string
	Location       *string
	Status         *string
	ConditionNotes *string
}

// UpdateAsset edits catalog fields. Status is workflow-controlled: a
// direct status edit is refused while an active request binds the asset.
func (r *Repo) UpdateAsset(ctx context.Context, id string, in AssetUpdate) (*models.Asset, error) {
	var out models.Asset
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Asset
		if err := tx.Clauses(lockForUpdate()).First(&a, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return &ValidationError{Field: "name", Reason: "must not be empty"}
			}
			a.Name = *in.Name
		}
		if in.Location != nil {
			a.Location = *in.Location
		}
		if in.ConditionNotes != nil {
			a.ConditionNotes = *in.ConditionNotes
		}
		if in.Status != nil && *in.Status != a.Status {
			if !models.ValidAssetStatus(*in.Status) {
				return &ValidationError{Field: "status", Reason: "unknown status"}
			}
			var active int64
			if err := tx.Model(&models.BorrowRequest{}).
				Where("asset_id = ? AND status IN ('pending', 'approved')", a.ID).
				Count(&active).Error; err != nil {
				return err
			}
			if active > 0 {
				return &ConflictError{State: a.Status, Reason: "asset has an active request; status follows the workflow"}
			}
			a.Status = *in.Status
		}
		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
