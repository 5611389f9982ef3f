package report

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	ListRequests(ctx context.Context, status string) ([]LeaveReportRow, error)
	CountByStatus(ctx context.Context) (LeaveReportSummary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRequests(ctx context.Context, status string) ([]LeaveReportRow, error) {
	query := `
		SELECT lr.id, lr.employee_id, e.full_name, lt.name,
		       lr.start_date, lr.end_date, lr.total_days, lr.status, lr.created_on
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		JOIN leave_types lt ON lt.id = lr.leave_type_id
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE lr.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY lr.created_on ASC, lr.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LeaveReportRow{}
	for rows.Next() {
		var row LeaveReportRow
		var startDate, endDate, createdOn sql.NullTime
		if err := rows.Scan(
			&row.ID,
			&row.EmployeeID,
			&row.EmployeeName,
			&row.LeaveTypeName,
			&startDate,
			&endDate,
			&row.TotalDays,
			&row.Status,
			&createdOn,
		); err != nil {
			return nil, err
		}
		if startDate.Valid {
			row.StartDate = startDate.Time.Format("2006-01-02")
		}
		if endDate.Valid {
			row.EndDate = endDate.Time.Format("2006-01-02")
		}
		if createdOn.Valid {
			row.CreatedOn = createdOn.Time.Format("2006-01-02")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) CountByStatus(ctx context.Context) (LeaveReportSummary, error) {
	const query = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED')
		FROM leave_requests
	`

	var summary LeaveReportSummary
	err := r.db.QueryRowContext(ctx, query).Scan(
		&summary.TotalRequests,
		&summary.Pending,
		&summary.Approved,
		&summary.Rejected,
	)
	return summary, err
}
