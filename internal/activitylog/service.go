package activitylog

import (
	"context"
	"log/slog"
	"math"

	"github.com/frahmantamala/rbac-dashboard/internal"
	activitylogDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/activitylog"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type RepositoryAPI interface {
	Store
	List(ctx context.Context, offset, limit int) ([]*activitylogDatamodel.ActivityLog, int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListLogs returns one page of the audit trail, newest first. Out of range
// page and limit values fall back to the defaults; limit is capped at MaxLimit
// and page at the last one whose offset still fits in an int.
func (s *Service) ListLogs(ctx context.Context, page, limit int) (*LogsPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	rows, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		s.logger.Error("failed to list activity logs", "error", err, "page", page, "limit", limit)
		return nil, internal.NewInternalError("Failed to fetch activity logs", err)
	}

	logs := make([]*Log, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, FromDataModel(row))
	}

	return &LogsPage{
		Logs:        logs,
		Total:       total,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
	}, nil
}
