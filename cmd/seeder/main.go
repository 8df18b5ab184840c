// Seeder provisions demo identities, profiles, roles, and a starter
// catalog. Every write is keyed on a natural key, so re-running after a
// partial failure is safe.
package main

import (
	"context"

	"sipinjam/app"
	"sipinjam/db"
	"sipinjam/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	Email      string
	Password   string
	FullName   string
	Roles      []string
	IDNumber   string
	Department string
	ClassLabel string
	CohortYear int
}

var demoUsers = []demoUser{
	{Email: "admin@sekolah.sch.id", Password: "admin123", FullName: "Administrator Sarpras", Roles: []string{models.RoleAdmin}},
	{Email: "guru.budi@sekolah.sch.id", Password: "guru1234", FullName: "Budi Santoso", Roles: []string{models.RoleGuru}, IDNumber: "19780312"},
	{Email: "guru.sri@sekolah.sch.id", Password: "guru1234", FullName: "Sri Lestari", Roles: []string{models.RoleGuru}, IDNumber: "19810525"},
	{Email: "siswa.andi@sekolah.sch.id", Password: "siswa123", FullName: "Andi Wijaya", Roles: []string{models.RoleSiswa}, IDNumber: "221001", Department: models.DeptTRKJ, ClassLabel: "XII TRKJ 1", CohortYear: 2022},
	{Email: "siswa.dewi@sekolah.sch.id", Password: "siswa123", FullName: "Dewi Anggraini", Roles: []string{models.RoleSiswa}, IDNumber: "231002", Department: models.DeptTI, ClassLabel: "XI TI 2", CohortYear: 2023},
	{Email: "siswa.rizky@sekolah.sch.id", Password: "siswa123", FullName: "Rizky Pratama", Roles: []string{models.RoleSiswa}, IDNumber: "241003", Department: models.DeptTRMM, ClassLabel: "X TRMM 1", CohortYear: 2024},
}

type demoAsset struct {
	Name     string
	Kind     string
	Location string
}

var demoAssets = []demoAsset{
	{Name: "Kunci Lab Komputer 1", Kind: models.KindKey, Location: "Gedung A Lt. 2"},
	{Name: "Kunci Lab Komputer 2", Kind: models.KindKey, Location: "Gedung A Lt. 2"},
	{Name: "Kunci Ruang Multimedia", Kind: models.KindKey, Location: "Gedung B Lt. 1"},
	{Name: "Proyektor Epson EB-X500", Kind: models.KindProjector, Location: "Ruang Sarpras"},
	{Name: "Proyektor BenQ MS560", Kind: models.KindProjector, Location: "Ruang Sarpras"},
}

func main() {
	_ = godotenv.Load()
	lg := app.NewLogger()
	defer lg.Sync()

	conn, err := db.ConnectDB()
	if err != nil {
		lg.Fatalw("database", "error", err)
	}
	repo := db.NewRepo(conn)
	ctx := context.Background()

	for _, u := range demoUsers {
		ident, err := repo.FindIdentityByEmail(ctx, u.Email)
		if err != nil {
			hash, herr := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if herr != nil {
				lg.Fatalw("hash password", "error", herr)
			}
			ident = &models.Identity{
				ID:           uuid.NewString(),
				Email:        u.Email,
				PasswordHash: string(hash),
				IsActive:     true,
			}
			if err := repo.CreateIdentity(ctx, ident); err != nil {
				lg.Fatalw("create identity", "email", u.Email, "error", err)
			}
		}

		if _, err := repo.EnsureProfile(ctx, ident.ID, u.FullName, u.Email); err != nil {
			lg.Fatalw("ensure profile", "email", u.Email, "error", err)
		}
		upd := db.ProfileUpdate{FullName: &u.FullName}
		if u.IDNumber != "" {
			upd.IDNumber = &u.IDNumber
		}
		if u.Department != "" {
			upd.Department = &u.Department
		}
		if u.ClassLabel != "" {
			upd.ClassLabel = &u.ClassLabel
		}
		if u.CohortYear != 0 {
			upd.CohortYear = &u.CohortYear
		}
		if _, err := repo.UpdateProfile(ctx, ident.ID, upd); err != nil {
			lg.Fatalw("update profile", "email", u.Email, "error", err)
		}

		for _, role := range u.Roles {
			if err := repo.GrantRole(ctx, ident.ID, role); err != nil {
				lg.Fatalw("grant role", "email", u.Email, "role", role, "error", err)
			}
		}
		lg.Infow("seeded user", "email", u.Email, "roles", u.Roles)
	}

	for _, a := range demoAssets {
		existing, err := repo.ListAssets(ctx, a.Kind, "")
		if err != nil {
			lg.Fatalw("list assets", "error", err)
		}
		found := false
		for _, e := range existing {
			if e.Name == a.Name {
				found = true
				break
			}
		}
		if found {
			continue
		}
		asset := &models.Asset{
			ID:       uuid.NewString(),
			Name:     a.Name,
			Kind:     a.Kind,
			Location: a.Location,
			Status:   models.AssetAvailable,
		}
		if err := repo.CreateAsset(ctx, asset); err != nil {
			lg.Fatalw("create asset", "name", a.Name, "error", err)
		}
		lg.Infow("seeded asset", "name", a.Name, "kind", a.Kind)
	}

	lg.Infow("seed complete")
}
