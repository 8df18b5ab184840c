package models

import "time"

const AssetTable = "sip_assets"

// Asset kinds.
const (
	KindKey       = "key"
	KindProjector = "projector"
)

// Asset statuses. The Indonesian values are the persisted wire values the
// original schema used; keep them for data compatibility.
const (
	AssetAvailable = "tersedia"
	AssetLoaned    = "dipinjam"
	AssetOverdue   = "overdue"
	AssetDamaged   = "rusak"
)

func ValidAssetKind(k string) bool {
	return k == KindKey || k == KindProjector
}

func ValidAssetStatus(s string) bool {
	switch s {
	case AssetAvailable, AssetLoaned, AssetOverdue, AssetDamaged:
		return true
	}
	return false
}

// Asset is a loanable physical item. Status is controlled by the borrow
// workflow (approve → dipinjam, return → tersedia/rusak, sweep → overdue);
// free-form edits may not touch it while a request is active.
type Asset struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Kind           string    `gorm:"size:20;not null" json:"kind"`
	Location       string    `gorm:"size:120" json:"location,omitempty"`
	Status         string    `gorm:"size:20;not null;default:'tersedia'" json:"status"`
	ConditionNotes string    `gorm:"size:500" json:"conditionNotes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Asset) TableName() string { return AssetTable }
