package db

import (
	"context"
	"math"
	"time"

	"sipinjam/models"
)

// Reporting reads. Pure queries; callers treat failures as empty results
// with a warning, never as a dashboard crash.

// ApprovalRate is round(100 * approved / total), 0 when total is 0.
func ApprovalRate(approved, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(approved) / float64(total)))
}

type SummaryReport struct {
	ByStatus map[string]int64 `json:"byStatus"`
	Overdue  int64            `json:"overdue"` // live predicate, not a stored counter
	Assets   map[string]int64 `json:"assets"`  // asset counts by status
}

func (r *Repo) Summary(ctx context.Context, now time.Time) (*SummaryReport, error) {
	out := &SummaryReport{
		ByStatus: map[string]int64{
			models.RequestPending:  0,
			models.RequestApproved: 0,
			models.RequestRejected: 0,
			models.RequestReturned: 0,
		},
		Assets: map[string]int64{},
	}

	type statusCount struct {
		Status string
		N      int64
	}
	var rows []statusCount
	if err := r.DB.WithContext(ctx).Model(&models.BorrowRequest{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out.ByStatus[row.Status] = row.N
	}

	if err := r.DB.WithContext(ctx).Model(&models.BorrowRequest{}).
		Where(models.OverdueConds, now).
		Count(&out.Overdue).Error; err != nil {
		return nil, err
	}

	var assetRows []statusCount
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&assetRows).Error; err != nil {
		return nil, err
	}
	for _, row := range assetRows {
		out.Assets[row.Status] = row.N
	}
	return out, nil
}

type AssetLoanRow struct {
	AssetID   string `json:"assetId"`
	AssetName string `json:"assetName"`
	Kind      string `json:"kind"`
	Approved  int64  `json:"approved"`
}

// AssetLoanTotals counts approved loans (approved or later returned) per asset.
func (r *Repo) AssetLoanTotals(ctx context.Context) ([]AssetLoanRow, error) {
	var rows []AssetLoanRow
	err := r.DB.WithContext(ctx).
		Table(models.AssetTable + " a").
		Select(`a.id AS asset_id, a.name AS asset_name, a.kind,
			COUNT(q.id) FILTER (WHERE q.status IN ('approved', 'returned')) AS approved`).
		Joins("LEFT JOIN " + models.RequestTable + " q ON q.asset_id = a.id").
		Group("a.id, a.name, a.kind").
		Order("approved DESC, a.name").
		Scan(&rows).Error
	return rows, err
}

type DepartmentRow struct {
	Department string `json:"department"`
	Total      int64  `json:"total"`
	Approved   int64  `json:"approved"`
	Rate       int    `json:"rate"` // percent
}

// DepartmentStats reports request totals and approval rates per academic
// track. Departments with no requests report a 0% rate.
func (r *Repo) DepartmentStats(ctx context.Context) ([]DepartmentRow, error) {
	type raw struct {
		Department *string
		Total      int64
		Approved   int64
	}
	var rows []raw
	err := r.DB.WithContext(ctx).
		Table(models.RequestTable + " q").
		Select(`p.department, COUNT(*) AS total,
			COUNT(*) FILTER (WHERE q.status IN ('approved', 'returned')) AS approved`).
		Joins("LEFT JOIN " + models.ProfileTable + " p ON p.identity_id = q.borrower_id").
		Group("p.department").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDept := map[string]raw{}
	for _, row := range rows {
		d := ""
		if row.Department != nil {
			d = *row.Department
		}
		byDept[d] = row
	}

	out := make([]DepartmentRow, 0, 3)
	for _, d := range []string{models.DeptTRKJ, models.DeptTI, models.DeptTRMM} {
		row := byDept[d]
		out = append(out, DepartmentRow{
			Department: d,
			Total:      row.Total,
			Approved:   row.Approved,
			Rate:       ApprovalRate(row.Approved, row.Total),
		})
	}
	return out, nil
}

type ActivityRow struct {
	ID          uint      `json:"id"`
	RequestID   string    `json:"requestId"`
	Action      string    `json:"action"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	PerformedBy string    `json:"performedBy"`
	ActorName   *string   `json:"actorName,omitempty"`
	AssetID     *string   `json:"assetId,omitempty"`
	AssetName   *string   `json:"assetName,omitempty"`
}

type ActivityFeed struct {
	Total   int64         `json:"total"`
	Entries []ActivityRow `json:"entries"`
}

// RecentActivity is the paginated feed joining log + actor profile + asset.
func (r *Repo) RecentActivity(ctx context.Context, page, size int) (*ActivityFeed, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []ActivityRow
	err := r.DB.WithContext(ctx).
		Table(models.ActivityTable + " l").
		Select(`l.id, l.request_id, l.action, l.notes, l.created_at, l.performed_by,
			p.full_name AS actor_name,
			q.asset_id,
			a.name AS asset_name`).
		Joins("LEFT JOIN " + models.ProfileTable + " p ON p.identity_id = l.performed_by").
		Joins("LEFT JOIN " + models.RequestTable + " q ON q.id = l.request_id").
		Joins("LEFT JOIN " + models.AssetTable + " a ON a.id = q.asset_id").
		Order("l.created_at DESC, l.id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return &ActivityFeed{Total: total, Entries: rows}, nil
}
