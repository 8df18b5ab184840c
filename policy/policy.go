// Package policy is the explicit authorization layer: every handler asks
// it before touching a row, instead of leaning on storage-side rules.
// Decisions are pure functions of the caller's identity, roles, and the
// row's owner, so they are side-effect free and safe to evaluate anywhere.
package policy

import "sipinjam/models"

// Caller is the authenticated principal as resolved by the auth
// middleware: a stable identity id plus its role memberships.
type Caller struct {
	IdentityID string
	Roles      []string
}

func (c Caller) IsAdmin() bool { return models.HasRole(c.Roles, models.RoleAdmin) }
func (c Caller) IsStaff() bool { return models.IsStaff(c.Roles) }

// Profiles are public to read; writes are self or admin.
func CanWriteProfile(c Caller, ownerID string) bool {
	return c.IdentityID == ownerID || c.IsAdmin()
}

// Role memberships are public to read; only admins grant or revoke.
func CanManageRoles(c Caller) bool { return c.IsAdmin() }

// Assets are public to read; admin or guru maintain the catalog.
func CanWriteAsset(c Caller) bool { return c.IsStaff() }

// A request is visible to its borrower and to staff.
func CanReadRequest(c Caller, borrowerID string) bool {
	return c.IdentityID == borrowerID || c.IsStaff()
}

// A request may only be created on the caller's own behalf.
func CanCreateRequest(c Caller, borrowerID string) bool {
	return c.IdentityID != "" && c.IdentityID == borrowerID
}

// Approve/reject/return are staff decisions regardless of ownership.
func CanDecideRequest(c Caller) bool { return c.IsStaff() }

// Account deletion is admin only.
func CanDeleteIdentity(c Caller) bool { return c.IsAdmin() }
