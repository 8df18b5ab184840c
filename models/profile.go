package models

import "time"

const ProfileTable = "sip_profiles"

// Departments (academic tracks).
const (
	DeptTRKJ = "trkj"
	DeptTI   = "ti"
	DeptTRMM = "trmm"
)

func ValidDepartment(d string) bool {
	switch d {
	case DeptTRKJ, DeptTI, DeptTRMM:
		return true
	}
	return false
}

// Profile is keyed by the identity id (1:1) and cascades with it.
type Profile struct {
	IdentityID string    `gorm:"type:uuid;primaryKey" json:"identityId"`
	Identity   *Identity `gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE" json:"-"`

	FullName   string  `gorm:"size:255;not null" json:"fullName"`
	Email      string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	IDNumber   *string `gorm:"size:40;uniqueIndex" json:"idNumber,omitempty"` // NIS/NIP
	Department *string `gorm:"size:10" json:"department,omitempty"`
	ClassLabel string  `gorm:"size:40" json:"classLabel,omitempty"`
	CohortYear *int    `json:"cohortYear,omitempty"` // angkatan

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Profile) TableName() string { return ProfileTable }
