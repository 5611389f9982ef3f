package leavetype

import (
	"errors"
	"testing"

	leavetypeerrors "go-elms/internal/leavetype/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, mapRepositoryError(nil))
	})

	t.Run("record not found maps to leave type not found", func(t *testing.T) {
		err := mapRepositoryError(gorm.ErrRecordNotFound)
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("unique violation on name maps to already exists", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "uq_leave_type_name",
		}
		err := mapRepositoryError(pgErr)
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeAlreadyExists)
	})

	t.Run("unique violation reported as plain message maps to already exists", func(t *testing.T) {
		raw := errors.New(`ERROR: duplicate key value violates unique constraint "uq_leave_type_name" (SQLSTATE 23505)`)
		err := mapRepositoryError(raw)
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeAlreadyExists)
	})

	t.Run("unique violation on another constraint passes through", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "uq_employee_email",
		}
		err := mapRepositoryError(pgErr)
		assert.ErrorIs(t, err, pgErr)
	})

	t.Run("unknown error passes through", func(t *testing.T) {
		raw := errors.New("connection refused")
		assert.ErrorIs(t, mapRepositoryError(raw), raw)
	})
}
