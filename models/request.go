package models

import "time"

const RequestTable = "sip_requests"

// Borrow request statuses. overdue is never stored: it is derived from an
// approved, unreturned request whose window has closed (see IsOverdue).
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
	RequestReturned = "returned"
)

// BorrowRequest is one borrower's claim on one asset for a time window.
type BorrowRequest struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID    string `gorm:"type:uuid;index;not null" json:"assetId"`
	BorrowerID string `gorm:"type:uuid;index;not null" json:"borrowerId"`

	Purpose     string    `gorm:"size:500;not null" json:"purpose"`
	RequestedAt time.Time `gorm:"not null" json:"requestedAt"`
	StartTime   time.Time `gorm:"not null" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`

	Status        string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ApproverID    *string    `gorm:"type:uuid" json:"approverId,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	ApprovalNotes string     `gorm:"size:500" json:"approvalNotes,omitempty"`

	ReturnedAt      *time.Time `json:"returnedAt,omitempty"`
	ReturnCondition string     `gorm:"size:500" json:"returnCondition,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BorrowRequest) TableName() string { return RequestTable }

// Active reports whether the request still binds its asset.
func (r *BorrowRequest) Active() bool {
	return r.Status == RequestPending || r.Status == RequestApproved
}

// IsOverdue is the one shared definition of "overdue": approved, not yet
// returned, and past the end of the requested window. Every read path
// (listings, reports, the sweep) goes through this or OverdueConds.
func (r *BorrowRequest) IsOverdue(now time.Time) bool {
	return r.Status == RequestApproved && r.ReturnedAt == nil && now.After(r.EndTime)
}

// OverdueConds is the SQL twin of IsOverdue for filtering in queries.
// Callers supply now as the single argument.
const OverdueConds = "status = 'approved' AND returned_at IS NULL AND end_time < ?"
