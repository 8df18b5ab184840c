package db

import (
	"strings"
	"time"

	"sipinjam/models"
)

// Pure state-machine guards for the borrow request workflow. The repo
// runs them inside the transaction, after taking row locks, so the state
// they see is the state that gets mutated.

// CheckCreate validates a new request before any row is written.
func CheckCreate(purpose string, start, end time.Time) error {
	if strings.TrimSpace(purpose) == "" {
		return &ValidationError{Field: "purpose", Reason: "must not be empty"}
	}
	if start.IsZero() || end.IsZero() {
		return &ValidationError{Field: "startTime", Reason: "window must be set"}
	}
	if !end.After(start) {
		return &ValidationError{Field: "endTime", Reason: "must be after startTime"}
	}
	return nil
}

// CheckApprove admits pending → approved, and only while the asset is
// actually available. Anything else is a conflict reporting current state.
func CheckApprove(req *models.BorrowRequest, asset *models.Asset) error {
	if req.Status != models.RequestPending {
		return &ConflictError{State: req.Status, Reason: "only pending requests can be approved"}
	}
	if asset.Status != models.AssetAvailable {
		return &ConflictError{State: asset.Status, Reason: "asset is not available"}
	}
	return nil
}

// CheckReject admits pending → rejected.
func CheckReject(req *models.BorrowRequest) error {
	if req.Status != models.RequestPending {
		return &ConflictError{State: req.Status, Reason: "only pending requests can be rejected"}
	}
	return nil
}

// CheckReturn admits approved → returned.
func CheckReturn(req *models.BorrowRequest) error {
	if req.Status != models.RequestApproved {
		return &ConflictError{State: req.Status, Reason: "only approved requests can be returned"}
	}
	return nil
}

// AssetStatusOnReturn maps the recorded return condition onto the asset
// status: anything flagged damaged parks the asset as rusak, otherwise it
// goes back into circulation.
func AssetStatusOnReturn(damaged bool) string {
	if damaged {
		return models.AssetDamaged
	}
	return models.AssetAvailable
}
