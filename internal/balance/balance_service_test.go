package balance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-elms/internal/balance"
	balanceerrors "go-elms/internal/balance/errors"
	employeeerrors "go-elms/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeBalanceRepository struct {
	findFn           func(ctx context.Context, employeeID, leaveTypeID string) (*balance.LeaveBalance, error)
	findByEmployeeFn func(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error)
	setAbsoluteFn    func(ctx context.Context, employeeID, leaveTypeID string, value float64) (bool, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceRepository) Find(ctx context.Context, employeeID, leaveTypeID string) (*balance.LeaveBalance, error) {
	if f.findFn != nil {
		return f.findFn(ctx, employeeID, leaveTypeID)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBalanceRepository) FindByEmployee(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) Deduct(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	return false, nil
}

func (f *fakeBalanceRepository) SetAbsolute(ctx context.Context, employeeID, leaveTypeID string, value float64) (bool, error) {
	if f.setAbsoluteFn != nil {
		return f.setAbsoluteFn(ctx, employeeID, leaveTypeID, value)
	}
	return true, nil
}

func (f *fakeBalanceRepository) SeedDefaults(ctx context.Context, employeeID string, amount float64) error {
	return nil
}

func TestBalanceService_GetByEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findByEmployeeFn: func(ctx context.Context, eid string) ([]balance.LeaveBalance, error) {
				assert.Equal(t, employeeID.String(), eid)
				return []balance.LeaveBalance{
					{
						EmployeeID:    employeeID,
						LeaveTypeID:   leaveTypeID,
						LeaveTypeName: "Annual Leave",
						Balance:       17.5,
					},
				}, nil
			},
		}
		svc := balance.NewService(repo)

		resp, err := svc.GetByEmployee(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Annual Leave", resp[0].LeaveTypeName)
		assert.Equal(t, 17.5, resp[0].Balance)
	})

	t.Run("negative repo error", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findByEmployeeFn: func(ctx context.Context, eid string) ([]balance.LeaveBalance, error) {
				return nil, errors.New("db error")
			},
		}
		svc := balance.NewService(repo)

		_, err := svc.GetByEmployee(ctx, employeeID.String())
		assert.Error(t, err)
	})

	t.Run("negative malformed employee id rejected without repo call", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findByEmployeeFn: func(ctx context.Context, eid string) ([]balance.LeaveBalance, error) {
				t.Fatal("repository should not be queried for a malformed id")
				return nil, nil
			},
		}
		svc := balance.NewService(repo)

		_, err := svc.GetByEmployee(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestBalanceService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("negative missing row maps to not found", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{})

		_, err := svc.Get(ctx, uuid.New().String(), uuid.New().String())
		assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
	})
}

func TestBalanceService_Adjust(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("success returns refreshed balance", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			setAbsoluteFn: func(ctx context.Context, eid, ltid string, value float64) (bool, error) {
				assert.Equal(t, 30.0, value)
				return true, nil
			},
			findFn: func(ctx context.Context, eid, ltid string) (*balance.LeaveBalance, error) {
				return &balance.LeaveBalance{
					EmployeeID:  employeeID,
					LeaveTypeID: leaveTypeID,
					Balance:     30.0,
				}, nil
			},
		}
		svc := balance.NewService(repo)

		resp, err := svc.Adjust(ctx, balance.AdjustBalanceRequest{
			EmployeeID:  employeeID.String(),
			LeaveTypeID: leaveTypeID.String(),
			Balance:     30.0,
		})

		assert.NoError(t, err)
		assert.Equal(t, 30.0, resp.Balance)
	})

	t.Run("zero is allowed", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findFn: func(ctx context.Context, eid, ltid string) (*balance.LeaveBalance, error) {
				return &balance.LeaveBalance{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}, nil
			},
		}
		svc := balance.NewService(repo)

		resp, err := svc.Adjust(ctx, balance.AdjustBalanceRequest{
			EmployeeID:  employeeID.String(),
			LeaveTypeID: leaveTypeID.String(),
			Balance:     0,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0.0, resp.Balance)
	})

	t.Run("negative value rejected", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{})

		_, err := svc.Adjust(ctx, balance.AdjustBalanceRequest{
			EmployeeID:  employeeID.String(),
			LeaveTypeID: leaveTypeID.String(),
			Balance:     -1,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrNegativeBalanceValue)
	})

	t.Run("negative unknown pair", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			setAbsoluteFn: func(ctx context.Context, eid, ltid string, value float64) (bool, error) {
				return false, nil
			},
		}
		svc := balance.NewService(repo)

		_, err := svc.Adjust(ctx, balance.AdjustBalanceRequest{
			EmployeeID:  employeeID.String(),
			LeaveTypeID: leaveTypeID.String(),
			Balance:     5,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
	})
}
