package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "go-elms/internal/balance/errors"
	employeeerrors "go-elms/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	Get(ctx context.Context, employeeID, leaveTypeID string) (BalanceResponse, error)
	Adjust(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	balances, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(balances), nil
}

func (s *service) Get(ctx context.Context, employeeID, leaveTypeID string) (BalanceResponse, error) {
	lb, err := s.repo.Find(ctx, employeeID, leaveTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*lb), nil
}

// Adjust adalah override administratif: set nilai absolut, tanpa batas atas,
// hanya inputnya sendiri yang tidak boleh negatif.
func (s *service) Adjust(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error) {
	if req.Balance < 0 {
		return BalanceResponse{}, balanceerrors.ErrNegativeBalanceValue
	}

	ok, err := s.repo.SetAbsolute(ctx, req.EmployeeID, req.LeaveTypeID, req.Balance)
	if err != nil {
		s.logger.Error("adjust balance persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("leave_type_id", req.LeaveTypeID),
			zap.Error(err),
		)
		return BalanceResponse{}, err
	}
	if !ok {
		return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
	}

	s.logger.Info("balance adjusted",
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Float64("balance", req.Balance),
	)

	return s.Get(ctx, req.EmployeeID, req.LeaveTypeID)
}

func mapToResponse(lb LeaveBalance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:    lb.EmployeeID.String(),
		LeaveTypeID:   lb.LeaveTypeID.String(),
		LeaveTypeName: lb.LeaveTypeName,
		Balance:       lb.Balance,
	}
}

func mapToListResponse(balances []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, lb := range balances {
		resp[i] = mapToResponse(lb)
	}
	return resp
}
