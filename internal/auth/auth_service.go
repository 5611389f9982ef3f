package auth

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	autherrors "go-elms/internal/auth/errors"
	"go-elms/internal/balance"
	"go-elms/internal/employee"
	employeeerrors "go-elms/internal/employee/errors"
	"go-elms/internal/events"
	"go-elms/internal/messaging/kafka"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const accessTokenTTL = time.Hour * 24

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (accessToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	employees employee.Repository
	balances  balance.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	employees employee.Repository,
	balances balance.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		employees: employees,
		balances:  balances,
		outbox:    outbox,
		logger:    l,
	}
}

// Register provisions the employee record plus the seeded leave balances in
// one go. New accounts always start with the EMPLOYEE role; promotion is an
// admin concern.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	s.logger.Debug("register requested", zap.String("email", req.Email))

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register hash password failed", zap.Error(err))
		return AuthResponse{}, err
	}

	empl := &employee.Employee{
		ID:       uuid.New(),
		Email:    req.Email,
		FullName: req.FullName,
		Password: string(hashed),
		Roles:    []string{employee.RoleEmployee},
	}

	if err := s.employees.Create(ctx, empl); err != nil {
		s.logger.Warn("register create employee failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return AuthResponse{}, err
	}

	if err := s.balances.SeedDefaults(ctx, empl.ID.String(), balance.DefaultSeedDays); err != nil {
		s.logger.Error("register seed balances failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return AuthResponse{}, err
	}

	s.enqueueRegisteredEvent(ctx, empl)

	s.logger.Info("register success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("email", empl.Email),
	)

	return AuthResponse{
		ID:       empl.ID.String(),
		Email:    empl.Email,
		FullName: empl.FullName,
		Role:     empl.PrimaryRole(),
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		return "", AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.Password), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", email))
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := generateToken(empl.ID.String(), empl.PrimaryRole(), accessTokenTTL)
	if err != nil {
		s.logger.Error("login generate token failed", zap.Error(err))
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("employee_id", empl.ID.String()))

	return token, AuthResponse{
		ID:       empl.ID.String(),
		Email:    empl.Email,
		FullName: empl.FullName,
		Role:     empl.PrimaryRole(),
	}, nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &AuthResponse{
		ID:       empl.ID.String(),
		Email:    empl.Email,
		FullName: empl.FullName,
		Role:     empl.PrimaryRole(),
	}, nil
}

// Best effort: registrasi tetap sukses walau outbox gagal ditulis.
func (s *service) enqueueRegisteredEvent(ctx context.Context, empl *employee.Employee) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(events.EmployeeRegisteredEvent{
		EventType:  events.EmployeeRegisteredEventType,
		EmployeeID: empl.ID.String(),
		Email:      empl.Email,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("register event marshal failed", zap.Error(err))
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     events.EmployeeRegisteredEventType,
		Topic:         events.EmployeeRegisteredTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("register event outbox failed", zap.Error(err))
	}
}

func generateToken(employeeID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
