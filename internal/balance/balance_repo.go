package balance

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Find(ctx context.Context, employeeID, leaveTypeID string) (*LeaveBalance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	// Deduct runs the server-side conditional decrement. Returns false when
	// the row is missing or the remaining balance is smaller than days.
	Deduct(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error)
	// SetAbsolute is the administrative override. Returns false when no row
	// exists for the pair.
	SetAbsolute(ctx context.Context, employeeID, leaveTypeID string, value float64) (bool, error)
	// SeedDefaults creates one row per existing leave type for a freshly
	// provisioned employee. Existing rows are left untouched.
	SeedDefaults(ctx context.Context, employeeID string, amount float64) error
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

func (r *repository) Find(ctx context.Context, employeeID, leaveTypeID string) (*LeaveBalance, error) {
	query := `
SELECT
	b.id,
	b.employee_id,
	b.leave_type_id,
	lt.name,
	b.balance,
	b.updated_at
FROM leave_balances b
JOIN leave_types lt ON lt.id = b.leave_type_id
WHERE b.employee_id = $1 AND b.leave_type_id = $2
`
	var lb LeaveBalance
	err := r.querier().QueryRowContext(ctx, query, employeeID, leaveTypeID).Scan(
		&lb.ID,
		&lb.EmployeeID,
		&lb.LeaveTypeID,
		&lb.LeaveTypeName,
		&lb.Balance,
		&lb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lb, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error) {
	query := `
SELECT
	b.id,
	b.employee_id,
	b.leave_type_id,
	lt.name,
	b.balance,
	b.updated_at
FROM leave_balances b
JOIN leave_types lt ON lt.id = b.leave_type_id
WHERE b.employee_id = $1
ORDER BY lt.created_at ASC
`
	rows, err := r.querier().QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []LeaveBalance
	for rows.Next() {
		var lb LeaveBalance
		if err := rows.Scan(
			&lb.ID,
			&lb.EmployeeID,
			&lb.LeaveTypeID,
			&lb.LeaveTypeName,
			&lb.Balance,
			&lb.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, lb)
	}

	return balances, rows.Err()
}

func (r *repository) Deduct(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	// Baca-cek-kurangi harus satu statement atomik; dua approval beruntun
	// terhadap saldo yang sama tidak boleh dua-duanya lolos.
	query := `
UPDATE leave_balances
SET balance = balance - $3, updated_at = NOW()
WHERE employee_id = $1 AND leave_type_id = $2 AND balance >= $3
`
	res, err := r.execer().ExecContext(ctx, query, employeeID, leaveTypeID, days)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) SetAbsolute(ctx context.Context, employeeID, leaveTypeID string, value float64) (bool, error) {
	query := `
UPDATE leave_balances
SET balance = $3, updated_at = NOW()
WHERE employee_id = $1 AND leave_type_id = $2
`
	res, err := r.execer().ExecContext(ctx, query, employeeID, leaveTypeID, value)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) SeedDefaults(ctx context.Context, employeeID string, amount float64) error {
	query := `
INSERT INTO leave_balances (id, employee_id, leave_type_id, balance, created_at, updated_at)
SELECT gen_random_uuid(), $1, lt.id, $2, NOW(), NOW()
FROM leave_types lt
ON CONFLICT (employee_id, leave_type_id) DO NOTHING
`
	_, err := r.execer().ExecContext(ctx, query, employeeID, amount)
	return err
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
