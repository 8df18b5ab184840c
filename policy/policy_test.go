package policy

import (
	"testing"

	"sipinjam/models"

	"github.com/stretchr/testify/assert"
)

var (
	admin   = Caller{IdentityID: "id-admin", Roles: []string{models.RoleAdmin}}
	guru    = Caller{IdentityID: "id-guru", Roles: []string{models.RoleGuru}}
	siswa   = Caller{IdentityID: "id-siswa", Roles: []string{models.RoleSiswa}}
	nobody  = Caller{IdentityID: "id-plain"} // authenticated, no roles
	anonish = Caller{}
)

func TestCanDecideRequest(t *testing.T) {
	assert.True(t, CanDecideRequest(admin))
	assert.True(t, CanDecideRequest(guru))

	// A student may never approve, regardless of ownership.
	assert.False(t, CanDecideRequest(siswa))
	assert.False(t, CanDecideRequest(nobody))
}

func TestCanCreateRequest(t *testing.T) {
	assert.True(t, CanCreateRequest(siswa, "id-siswa"))

	// Naming someone else as borrower is denied.
	assert.False(t, CanCreateRequest(siswa, "id-guru"))
	// Staff privileges don't bypass the own-identity rule.
	assert.False(t, CanCreateRequest(admin, "id-siswa"))
	assert.False(t, CanCreateRequest(anonish, ""))
}

func TestCanReadRequest(t *testing.T) {
	assert.True(t, CanReadRequest(siswa, "id-siswa"), "owner reads own")
	assert.False(t, CanReadRequest(siswa, "id-other"), "stranger denied")
	assert.True(t, CanReadRequest(guru, "id-other"))
	assert.True(t, CanReadRequest(admin, "id-other"))
}

func TestCanWriteAsset(t *testing.T) {
	assert.True(t, CanWriteAsset(admin))
	assert.True(t, CanWriteAsset(guru))
	assert.False(t, CanWriteAsset(siswa))
}

func TestCanWriteProfile(t *testing.T) {
	assert.True(t, CanWriteProfile(siswa, "id-siswa"), "self edit")
	assert.False(t, CanWriteProfile(siswa, "id-other"))
	assert.False(t, CanWriteProfile(guru, "id-other"), "guru is not admin")
	assert.True(t, CanWriteProfile(admin, "id-other"))
}

func TestAdminOnlyCapabilities(t *testing.T) {
	assert.True(t, CanManageRoles(admin))
	assert.False(t, CanManageRoles(guru))
	assert.False(t, CanManageRoles(siswa))

	assert.True(t, CanDeleteIdentity(admin))
	assert.False(t, CanDeleteIdentity(guru))
}
