package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-elms/internal/balance"
	balanceerrors "go-elms/internal/balance/errors"
	"go-elms/internal/employee"
	"go-elms/internal/events"
	leaverequesterrors "go-elms/internal/leaverequest/errors"
	"go-elms/internal/leavetype"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the identity collaborator: the lifecycle only needs
// to resolve an employee id to an existing record.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

// LeaveTypeCatalog resolves leave type ids against the catalog.
type LeaveTypeCatalog interface {
	FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, id, managerComment string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, id, managerComment string) (LeaveRequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListPending(ctx context.Context) ([]LeaveRequestResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	balances   balance.Repository
	employees  EmployeeDirectory
	leaveTypes LeaveTypeCatalog
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances balance.Repository,
	employees EmployeeDirectory,
	leaveTypes LeaveTypeCatalog,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, balances, employees, leaveTypes, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	balances balance.Repository,
	employees EmployeeDirectory,
	leaveTypes LeaveTypeCatalog,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		balances:   balances,
		employees:  employees,
		leaveTypes: leaveTypes,
		outbox:     outboxRepo,
		logger:     l,
	}
}

func (s *service) Apply(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrEmployeeNotFound
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveTypeNotFound
	}

	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrEmployeeNotFound
		}
		return LeaveRequestResponse{}, err
	}
	lt, err := s.leaveTypes.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	applyDay := today()
	totalDays, err := validateApplyDates(startDate, endDate, applyDay)
	if err != nil {
		s.logger.Warn("apply leave date validation failed",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	// Sufficiency dicek terhadap saldo live saat apply; saldo TIDAK
	// di-reserve selama PENDING. Dua request paralel bisa sama-sama lolos
	// di sini; yang kalah ditolak saat approval (lihat Approve).
	lb, err := s.balances.Find(ctx, employeeID, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveRequestResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if float64(totalDays) > lb.Balance {
		s.logger.Warn("apply leave insufficient balance",
			zap.String("employee_id", employeeID),
			zap.Int("requested_days", totalDays),
			zap.Float64("balance", lb.Balance),
		)
		return LeaveRequestResponse{}, balanceerrors.NewInsufficientBalance(lb.Balance)
	}

	lr := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    employeeUUID,
		LeaveTypeID:   leaveTypeUUID,
		EmployeeName:  empl.FullName,
		LeaveTypeName: lt.Name,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalDays:     totalDays,
		Notes:         req.Reason,
		Status:        StatusPending,
		CreatedOn:     applyDay,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, lr); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueAppliedEvent(ctx, tx, lr, rid); err != nil {
		s.logger.Error("apply leave outbox persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*lr), nil
}

func (s *service) Approve(ctx context.Context, id, managerComment string) (LeaveRequestResponse, error) {
	return s.decide(ctx, id, StatusApproved, managerComment)
}

func (s *service) Reject(ctx context.Context, id, managerComment string) (LeaveRequestResponse, error) {
	return s.decide(ctx, id, StatusRejected, managerComment)
}

// decide moves a PENDING request into a terminal state. For approvals the
// conditional balance decrement and the status flip share one transaction:
// both commit or neither does.
func (s *service) decide(ctx context.Context, id, targetStatus, managerComment string) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	actor := contextutil.GetEmployeeID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("target_status", targetStatus),
		zap.String("decided_by", actor),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if lr.Status != StatusPending {
		s.logger.Warn("decide leave invalid state",
			zap.String("leave_request_id", id),
			zap.String("current_status", lr.Status),
			zap.String("target_status", targetStatus),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyProcessed
	}

	if targetStatus == StatusApproved {
		// Hitung ulang dari tanggal yang tersimpan; saldo bisa sudah
		// bergeser sejak apply, jadi sufficiency dicek lagi lewat
		// decrement kondisional.
		days := inclusiveDays(lr.StartDate, lr.EndDate)

		qb := s.balances.WithTx(tx)
		ok, err := qb.Deduct(ctx, lr.EmployeeID.String(), lr.LeaveTypeID.String(), float64(days))
		if err != nil {
			s.logger.Error("approve leave deduct failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		if !ok {
			// Gagal deduct: request tetap PENDING untuk keputusan manusia.
			current, err := qb.Find(ctx, lr.EmployeeID.String(), lr.LeaveTypeID.String())
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return LeaveRequestResponse{}, balanceerrors.ErrBalanceNotFound
				}
				return LeaveRequestResponse{}, err
			}
			s.logger.Warn("approve leave insufficient balance",
				zap.String("leave_request_id", id),
				zap.Int("requested_days", days),
				zap.Float64("balance", current.Balance),
			)
			return LeaveRequestResponse{}, balanceerrors.NewInsufficientBalance(current.Balance)
		}
	}

	decisionOn := today()
	flipped, err := qtx.MarkDecided(ctx, id, targetStatus, managerComment, decisionOn)
	if err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	if !flipped {
		// Decider lain menang di antara load dan update; rollback juga
		// membatalkan deduct di atas.
		return LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyProcessed
	}

	lr.Status = targetStatus
	lr.ManagerComment = managerComment
	lr.DecisionOn = datePtr(decisionOn)

	if err := s.enqueueDecidedEvent(ctx, tx, lr, rid); err != nil {
		s.logger.Error("decide leave outbox persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("status", targetStatus),
		zap.String("decided_by", actor),
	)

	return mapToResponse(*lr), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListPending(ctx context.Context) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) enqueueAppliedEvent(ctx context.Context, tx *sql.Tx, lr *LeaveRequest, requestID string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveAppliedEvent{
		EventType:   events.LeaveAppliedEventType,
		RequestID:   lr.ID.String(),
		EmployeeID:  lr.EmployeeID.String(),
		LeaveTypeID: lr.LeaveTypeID.String(),
		StartDate:   lr.StartDate.Format("2006-01-02"),
		EndDate:     lr.EndDate.Format("2006-01-02"),
		TotalDays:   lr.TotalDays,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     events.LeaveAppliedEventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueDecidedEvent(ctx context.Context, tx *sql.Tx, lr *LeaveRequest, requestID string) error {
	if s.outbox == nil {
		return nil
	}

	eventType := events.LeaveApprovedEventType
	if lr.Status == StatusRejected {
		eventType = events.LeaveRejectedEventType
	}

	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:      eventType,
		RequestID:      lr.ID.String(),
		EmployeeID:     lr.EmployeeID.String(),
		LeaveTypeID:    lr.LeaveTypeID.String(),
		Status:         lr.Status,
		TotalDays:      lr.TotalDays,
		ManagerComment: lr.ManagerComment,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
