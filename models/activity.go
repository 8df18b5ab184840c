package models

import "time"

const ActivityTable = "sip_activity_log"

// Activity actions, one per ledger transition.
const (
	ActionRequest = "request"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionBorrow  = "borrow"
	ActionReturn  = "return"
	ActionOverdue = "overdue"
)

// ActivityLog is the append-only audit trail. Rows are written inside the
// same transaction as the transition they record and are never updated.
type ActivityLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequestID   string    `gorm:"type:uuid;index;not null" json:"requestId"`
	Action      string    `gorm:"size:20;not null" json:"action"`
	PerformedBy string    `gorm:"type:uuid;not null" json:"performedBy"`
	Notes       string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (ActivityLog) TableName() string { return ActivityTable }
