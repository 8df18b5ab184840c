package db

import (
	"context"

	"sipinjam/models"

	"gorm.io/gorm/clause"
)

// Role membership. HasRole is the has_role(identity, role) predicate the
// policy layer evaluates; the (identity_id, role) unique index makes it a
// single lookup with no side effects.

func (r *Repo) HasRole(ctx context.Context, identityID, role string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.RoleMembership{}).
		Where("identity_id = ? AND role = ?", identityID, role).
		Count(&n).Error
	return n > 0, err
}

func (r *Repo) RolesOf(ctx context.Context, identityID string) ([]string, error) {
	var roles []string
	err := r.DB.WithContext(ctx).Model(&models.RoleMembership{}).
		Where("identity_id = ?", identityID).
		Order("role").
		Pluck("role", &roles).Error
	return roles, err
}

func (r *Repo) GrantRole(ctx context.Context, identityID, role string) error {
	if !models.ValidRole(role) {
		return &ValidationError{Field: "role", Reason: "unknown role"}
	}
	if _, err := r.FindIdentityByID(ctx, identityID); err != nil {
		return err
	}
	m := models.RoleMembership{IdentityID: identityID, Role: role}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m).Error
}

func (r *Repo) RevokeRole(ctx context.Context, identityID, role string) error {
	res := r.DB.WithContext(ctx).
		Where("identity_id = ? AND role = ?", identityID, role).
		Delete(&models.RoleMembership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ListMemberships(ctx context.Context, identityID string) ([]models.RoleMembership, error) {
	var ms []models.RoleMembership
	tx := r.DB.WithContext(ctx).Order("identity_id, role")
	if identityID != "" {
		tx = tx.Where("identity_id = ?", identityID)
	}
	if err := tx.Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}
