package models

import "time"

const IdentityTable = "sip_identities"

// Identity is the local record backing the external identity store contract:
// a stable id plus login credentials. Profiles hang off it 1:1.
type Identity struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Identity) TableName() string { return IdentityTable }
