package leaverequest

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	FindPending(ctx context.Context) ([]LeaveRequest, error)
	// MarkDecided flips a PENDING request into a terminal status. Returns
	// false when the request is no longer PENDING; concurrent deciders get
	// exactly one winner through this conditional update.
	MarkDecided(ctx context.Context, id, status, managerComment string, decisionOn time.Time) (bool, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	id, employee_id, leave_type_id, start_date, end_date, total_days,
	notes, status, manager_comment, created_on
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := r.execer().ExecContext(
		ctx, query,
		lr.ID, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate, lr.EndDate, lr.TotalDays,
		lr.Notes, lr.Status, lr.ManagerComment, lr.CreatedOn,
	)
	return err
}

const selectColumns = `
	lr.id,
	lr.employee_id,
	lr.leave_type_id,
	e.full_name,
	lt.name,
	lr.start_date,
	lr.end_date,
	lr.total_days,
	lr.notes,
	lr.status,
	COALESCE(lr.manager_comment, ''),
	lr.created_on,
	lr.decision_on
`

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	query := `
SELECT ` + selectColumns + `
FROM leave_requests lr
JOIN employees e ON e.id = lr.employee_id
JOIN leave_types lt ON lt.id = lr.leave_type_id
WHERE lr.id = $1
`
	row := r.querier().QueryRowContext(ctx, query, id)
	return scanRequest(row)
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	query := `
SELECT ` + selectColumns + `
FROM leave_requests lr
JOIN employees e ON e.id = lr.employee_id
JOIN leave_types lt ON lt.id = lr.leave_type_id
WHERE lr.employee_id = $1
ORDER BY lr.created_on ASC, lr.id ASC
`
	rows, err := r.querier().QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *repository) FindPending(ctx context.Context) ([]LeaveRequest, error) {
	query := `
SELECT ` + selectColumns + `
FROM leave_requests lr
JOIN employees e ON e.id = lr.employee_id
JOIN leave_types lt ON lt.id = lr.leave_type_id
WHERE lr.status = $1
ORDER BY lr.created_on ASC, lr.id ASC
`
	rows, err := r.querier().QueryContext(ctx, query, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *repository) MarkDecided(ctx context.Context, id, status, managerComment string, decisionOn time.Time) (bool, error) {
	query := `
UPDATE leave_requests
SET status = $2, manager_comment = $3, decision_on = $4
WHERE id = $1 AND status = $5
`
	res, err := r.execer().ExecContext(ctx, query, id, status, managerComment, decisionOn, StatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInto(s rowScanner, lr *LeaveRequest) error {
	var decisionOn sql.NullTime
	if err := s.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.LeaveTypeID,
		&lr.EmployeeName,
		&lr.LeaveTypeName,
		&lr.StartDate,
		&lr.EndDate,
		&lr.TotalDays,
		&lr.Notes,
		&lr.Status,
		&lr.ManagerComment,
		&lr.CreatedOn,
		&decisionOn,
	); err != nil {
		return err
	}
	if decisionOn.Valid {
		lr.DecisionOn = &decisionOn.Time
	}
	return nil
}

func scanRequest(row *sql.Row) (*LeaveRequest, error) {
	var lr LeaveRequest
	if err := scanInto(row, &lr); err != nil {
		return nil, err
	}
	return &lr, nil
}

func scanRequests(rows *sql.Rows) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	for rows.Next() {
		var lr LeaveRequest
		if err := scanInto(rows, &lr); err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) querier() interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
