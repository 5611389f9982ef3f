package report

import (
	"context"
	"net/http"

	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"

	"go.uber.org/zap"
)

var errUnknownStatus = apperror.New(
	apperror.CodeInvalidInput,
	"unknown status filter, expected PENDING, APPROVED or REJECTED",
	http.StatusBadRequest,
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	LeaveReport(ctx context.Context, status string) (LeaveReportResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) LeaveReport(ctx context.Context, status string) (LeaveReportResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	switch status {
	case "", "PENDING", "APPROVED", "REJECTED":
	default:
		return LeaveReportResponse{}, errUnknownStatus
	}

	summary, err := s.repo.CountByStatus(ctx)
	if err != nil {
		l.Error("leave report summary failed", zap.Error(err))
		return LeaveReportResponse{}, err
	}

	rows, err := s.repo.ListRequests(ctx, status)
	if err != nil {
		l.Error("leave report listing failed", zap.Error(err))
		return LeaveReportResponse{}, err
	}

	return LeaveReportResponse{Summary: summary, Rows: rows}, nil
}
