package auth_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"go-elms/internal/auth"
	autherrors "go-elms/internal/auth/errors"
	"go-elms/internal/balance"
	"go-elms/internal/employee"
	employeeerrors "go-elms/internal/employee/errors"
	"go-elms/internal/messaging/kafka"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	createFn      func(ctx context.Context, empl *employee.Employee) error
	findByIDFn    func(ctx context.Context, id string) (*employee.Employee, error)
	findByEmailFn func(ctx context.Context, email string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	return nil
}

type fakeBalanceSeeder struct {
	seededEmployee string
	seededAmount   float64
}

func (f *fakeBalanceSeeder) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceSeeder) Find(ctx context.Context, employeeID, leaveTypeID string) (*balance.LeaveBalance, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeBalanceSeeder) FindByEmployee(ctx context.Context, employeeID string) ([]balance.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeBalanceSeeder) Deduct(ctx context.Context, employeeID, leaveTypeID string, days float64) (bool, error) {
	return false, nil
}

func (f *fakeBalanceSeeder) SetAbsolute(ctx context.Context, employeeID, leaveTypeID string, value float64) (bool, error) {
	return false, nil
}

func (f *fakeBalanceSeeder) SeedDefaults(ctx context.Context, employeeID string, amount float64) error {
	f.seededEmployee = employeeID
	f.seededAmount = amount
	return nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success seeds default balances and emits event", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		seeder := &fakeBalanceSeeder{}
		outbox := &fakeOutbox{}

		var createdID string
		repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			createdID = empl.ID.String()
			assert.Equal(t, "jordan@example.com", empl.Email)
			assert.Equal(t, []string{employee.RoleEmployee}, empl.Roles)
			// Password disimpan sebagai hash, bukan plaintext
			assert.NotEqual(t, "secret123", empl.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(empl.Password), []byte("secret123")))
			return nil
		}

		svc := auth.NewService(repo, seeder, outbox)
		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "jordan@example.com",
			FullName: "Jordan Smith",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, createdID, resp.ID)
		assert.Equal(t, employee.RoleEmployee, resp.Role)
		assert.Equal(t, createdID, seeder.seededEmployee)
		assert.Equal(t, balance.DefaultSeedDays, seeder.seededAmount)
		assert.Len(t, outbox.created, 1)
		assert.Equal(t, "employee.registered", outbox.created[0].EventType)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			createFn: func(ctx context.Context, empl *employee.Employee) error {
				return employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		svc := auth.NewService(repo, &fakeBalanceSeeder{}, nil)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "jordan@example.com",
			FullName: "Jordan Smith",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	employeeID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	stored := &employee.Employee{
		ID:       employeeID,
		Email:    "jordan@example.com",
		FullName: "Jordan Smith",
		Password: string(hashed),
		Roles:    []string{employee.RoleManager},
	}

	t.Run("success puts employee_id and role in claims", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				assert.Equal(t, "jordan@example.com", email)
				return stored, nil
			},
		}
		svc := auth.NewService(repo, &fakeBalanceSeeder{}, nil)

		token, resp, err := svc.Login(ctx, "jordan@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, employee.RoleManager, resp.Role)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, employeeID.String(), claims["employee_id"])
		assert.Equal(t, employee.RoleManager, claims["role"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return stored, nil
			},
		}
		svc := auth.NewService(repo, &fakeBalanceSeeder{}, nil)

		_, _, err := svc.Login(ctx, "jordan@example.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeEmployeeRepository{}, &fakeBalanceSeeder{}, nil)

		_, _, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New()
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				return &employee.Employee{
					ID:       employeeID,
					Email:    "jordan@example.com",
					FullName: "Jordan Smith",
					Roles:    []string{employee.RoleEmployee},
				}, nil
			},
		}
		svc := auth.NewService(repo, &fakeBalanceSeeder{}, nil)

		resp, err := svc.GetMe(ctx, employeeID.String())

		assert.NoError(t, err)
		assert.Equal(t, "jordan@example.com", resp.Email)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		svc := auth.NewService(&fakeEmployeeRepository{}, &fakeBalanceSeeder{}, nil)

		_, err := svc.GetMe(ctx, uuid.New().String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
