package db

import (
	"fmt"
	"os"

	"sipinjam/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Identity{},
		&models.Profile{},
		&models.RoleMembership{},
		&models.Asset{},
		&models.BorrowRequest{},
		&models.ActivityLog{},
	); err != nil {
		return err
	}

	// At most one approved loan per asset. Pending requests may pile up;
	// approval resolves the race under the asset row lock.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_approved_per_asset
	  ON %s (asset_id)
	  WHERE status = 'approved';
	`, models.RequestTable, models.RequestTable)).Error; err != nil {
		return err
	}

	// Overdue scans and the activity feed read newest-first.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_end_time
	  ON %s (end_time)
	  WHERE status = 'approved' AND returned_at IS NULL;
	`, models.RequestTable, models.RequestTable)).Error; err != nil {
		return err
	}
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_created_desc
	  ON %s (created_at DESC);
	`, models.ActivityTable, models.ActivityTable)).Error; err != nil {
		return err
	}

	return nil
}
