package leaverequest_test

import (
	"context"
	"testing"
	"time"

	"go-elms/internal/leaverequest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLeaveRequestRepository_MarkDecided(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()
	decisionOn := time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("pending row flips exactly once", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE leave_requests`).
			WithArgs(id, leaverequest.StatusApproved, "ok", decisionOn, leaverequest.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := leaverequest.NewRepository(db)
		ok, err := repo.MarkDecided(ctx, id, leaverequest.StatusApproved, "ok", decisionOn)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already decided row is not touched", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE leave_requests`).
			WithArgs(id, leaverequest.StatusRejected, "", decisionOn, leaverequest.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := leaverequest.NewRepository(db)
		ok, err := repo.MarkDecided(ctx, id, leaverequest.StatusRejected, "", decisionOn)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
