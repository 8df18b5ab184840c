package db

import (
	"context"
	"errors"
	"strings"

	"sipinjam/models"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Identities

func (r *Repo) CreateIdentity(ctx context.Context, id *models.Identity) error {
	id.Email = strings.ToLower(strings.TrimSpace(id.Email))
	return r.DB.WithContext(ctx).Create(id).Error
}

func (r *Repo) FindIdentityByID(ctx context.Context, id string) (*models.Identity, error) {
	var ident models.Identity
	if err := r.DB.WithContext(ctx).First(&ident, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ident, nil
}

func (r *Repo) FindIdentityByEmail(ctx context.Context, email string) (*models.Identity, error) {
	var ident models.Identity
	err := r.DB.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&ident).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &ident, nil
}

// DeleteIdentity removes the identity and everything hanging off it.
// The borrow ledger and activity log keep their rows: the audit trail
// outlives the account.
func (r *Repo) DeleteIdentity(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identity_id = ?", id).Delete(&models.RoleMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("identity_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Identity{ID: id})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Profiles

// EnsureProfile creates the default profile for a fresh identity. It is
// the identity-created event handler's write and must be idempotent:
// re-delivered events find the row and leave it alone.
func (r *Repo) EnsureProfile(ctx context.Context, identityID, fullName, email string) (*models.Profile, error) {
	var p models.Profile
	err := r.DB.WithContext(ctx).Where("identity_id = ?", identityID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.Profile{
			IdentityID: identityID,
			FullName:   fullName,
			Email:      strings.ToLower(strings.TrimSpace(email)),
		}
		if err := r.DB.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	return &p, err
}

func (r *Repo) FindProfile(ctx context.Context, identityID string) (*models.Profile, error) {
	var p models.Profile
	if err := r.DB.WithContext(ctx).First(&p, "identity_id = ?", identityID).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

type ProfileUpdate struct {
	FullName   *string
	IDNumber   *string
	Department *string
	ClassLabel *string
	CohortYear *int
}

func (r *Repo) UpdateProfile(ctx context.Context, identityID string, in ProfileUpdate) (*models.Profile, error) {
	if in.Department != nil && *in.Department != "" && !models.ValidDepartment(*in.Department) {
		return nil, &ValidationError{Field: "department", Reason: "unknown department"}
	}
	updates := map[string]any{}
	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return nil, &ValidationError{Field: "fullName", Reason: "must not be empty"}
		}
		updates["full_name"] = *in.FullName
	}
	if in.IDNumber != nil {
		updates["id_number"] = *in.IDNumber
	}
	if in.Department != nil {
		updates["department"] = *in.Department
	}
	if in.ClassLabel != nil {
		updates["class_label"] = *in.ClassLabel
	}
	if in.CohortYear != nil {
		updates["cohort_year"] = *in.CohortYear
	}
	if len(updates) > 0 {
		res := r.DB.WithContext(ctx).Model(&models.Profile{}).
			Where("identity_id = ?", identityID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.FindProfile(ctx, identityID)
}

type ListProfilesResult struct {
	Profiles []models.Profile `json:"profiles"`
	Total    int64            `json:"total"`
}

func (r *Repo) ListProfiles(ctx context.Context, q string, page, size int) (ListProfilesResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Profile{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR id_number LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListProfilesResult{}, err
	}

	var profiles []models.Profile
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&profiles).Error; err != nil {
		return ListProfilesResult{}, err
	}
	return ListProfilesResult{Profiles: profiles, Total: total}, nil
}
