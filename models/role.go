package models

import "time"

const RoleMemberTable = "sip_role_members"

const (
	RoleAdmin = "admin"
	RoleGuru  = "guru"  // staff
	RoleSiswa = "siswa" // student
)

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleGuru, RoleSiswa:
		return true
	}
	return false
}

// RoleMembership grants one role to one identity. A profile may hold
// several roles; the (identity, role) pair is unique and indexed so
// has_role checks are a single lookup.
type RoleMembership struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IdentityID string    `gorm:"type:uuid;not null;uniqueIndex:idx_sip_identity_role" json:"identityId"`
	Role       string    `gorm:"size:20;not null;uniqueIndex:idx_sip_identity_role" json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (RoleMembership) TableName() string { return RoleMemberTable }

// HasRole reports whether role is present in roles.
func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether roles carry approval authority (admin or guru).
func IsStaff(roles []string) bool {
	return HasRole(roles, RoleAdmin) || HasRole(roles, RoleGuru)
}
