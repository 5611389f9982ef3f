package leavetype_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-elms/internal/leavetype"
	leavetypeerrors "go-elms/internal/leavetype/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	createFn   func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn  func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	countFn    func(ctx context.Context) (int64, error)

	created []leavetype.LeaveType
}

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	f.created = append(f.created, *lt)
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) Count(ctx context.Context) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx)
	}
	return 0, nil
}

func TestLeaveTypeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cached := []leavetype.LeaveTypeResponse{
			{ID: uuid.New().String(), Name: "Annual Leave"},
		}
		jsonData, _ := json.Marshal(cached)
		mock.ExpectGet(leavetype.LeaveTypeAllKey).SetVal(string(jsonData))

		repoHit := false
		repo := &fakeLeaveTypeRepository{
			findAllFn: func(ctx context.Context) ([]leavetype.LeaveType, error) {
				repoHit = true
				return nil, nil
			},
		}
		svc := leavetype.NewService(repo, rdb)

		resp, err := svc.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Annual Leave", resp[0].Name)
		assert.False(t, repoHit)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss reads repository and fills cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(leavetype.LeaveTypeAllKey).RedisNil()

		id := uuid.New()
		repo := &fakeLeaveTypeRepository{
			findAllFn: func(ctx context.Context) ([]leavetype.LeaveType, error) {
				return []leavetype.LeaveType{{ID: id, Name: "Sick Leave"}}, nil
			},
		}

		expected, _ := json.Marshal([]leavetype.LeaveTypeResponse{
			{ID: id.String(), Name: "Sick Leave"},
		})
		mock.ExpectSet(leavetype.LeaveTypeAllKey, expected, 30*time.Minute).SetVal("OK")

		svc := leavetype.NewService(repo, rdb)

		resp, err := svc.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Sick Leave", resp[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative repo error surfaces", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(leavetype.LeaveTypeAllKey).RedisNil()

		repo := &fakeLeaveTypeRepository{
			findAllFn: func(ctx context.Context) ([]leavetype.LeaveType, error) {
				return nil, errors.New("db error")
			},
		}
		svc := leavetype.NewService(repo, rdb)

		_, err := svc.GetAll(ctx)
		assert.Error(t, err)
	})
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates list cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel(leavetype.LeaveTypeAllKey).SetVal(1)

		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo, rdb)

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:        "Parental Leave",
			Description: "Leave for new parents",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Parental Leave", resp.Name)
		assert.Len(t, repo.created, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative persist error", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		repo := &fakeLeaveTypeRepository{
			createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
				return errors.New("connection refused")
			},
		}
		svc := leavetype.NewService(repo, rdb)

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Annual Leave"})
		assert.Error(t, err)
	})

	t.Run("negative duplicate name surfaces as conflict", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		repo := &fakeLeaveTypeRepository{
			createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
				return leavetypeerrors.ErrLeaveTypeAlreadyExists
			},
		}
		svc := leavetype.NewService(repo, rdb)

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Annual Leave"})
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeAlreadyExists)
	})
}

func TestLeaveTypeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns catalog entry", func(t *testing.T) {
		id := uuid.New()
		rdb, _ := redismock.NewClientMock()
		repo := &fakeLeaveTypeRepository{
			findByIDFn: func(ctx context.Context, got string) (*leavetype.LeaveType, error) {
				assert.Equal(t, id.String(), got)
				return &leavetype.LeaveType{ID: id, Name: "Annual Leave"}, nil
			},
		}
		svc := leavetype.NewService(repo, rdb)

		resp, err := svc.GetByID(ctx, id.String())
		assert.NoError(t, err)
		assert.Equal(t, "Annual Leave", resp.Name)
	})

	t.Run("negative unknown id maps to not found", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		svc := leavetype.NewService(&fakeLeaveTypeRepository{}, rdb)

		_, err := svc.GetByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("negative malformed id rejected without repo call", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		repo := &fakeLeaveTypeRepository{
			findByIDFn: func(ctx context.Context, got string) (*leavetype.LeaveType, error) {
				t.Fatal("repository should not be queried for a malformed id")
				return nil, nil
			},
		}
		svc := leavetype.NewService(repo, rdb)

		_, err := svc.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidLeaveTypeID)
	})
}

func TestLeaveTypeService_EnsureDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds three defaults on empty catalog", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		repo := &fakeLeaveTypeRepository{}
		svc := leavetype.NewService(repo, rdb)

		err := svc.EnsureDefaults(ctx)

		assert.NoError(t, err)
		assert.Len(t, repo.created, 3)
		names := []string{repo.created[0].Name, repo.created[1].Name, repo.created[2].Name}
		assert.Equal(t, []string{"Annual Leave", "Sick Leave", "Casual Leave"}, names)
	})

	t.Run("existing catalog left untouched", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		repo := &fakeLeaveTypeRepository{
			countFn: func(ctx context.Context) (int64, error) { return 3, nil },
		}
		svc := leavetype.NewService(repo, rdb)

		err := svc.EnsureDefaults(ctx)

		assert.NoError(t, err)
		assert.Empty(t, repo.created)
	})
}
