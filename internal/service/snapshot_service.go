package service

import (
	"context"

	"github.com/stemsi/portal-backend/internal/model"
	"github.com/stemsi/portal-backend/internal/response"
)

// SnapshotLister pages through stored result snapshots.
type SnapshotLister interface {
	ListPaginated(ctx context.Context, limit, offset int) ([]model.ResultSnapshot, int, error)
}

// SnapshotService backs the admin results overview.
type SnapshotService struct {
	repo SnapshotLister
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(repo SnapshotLister) *SnapshotService {
	return &SnapshotService{repo: repo}
}

// List returns one page of snapshots.
func (s *SnapshotService) List(ctx context.Context, page, perPage int) ([]model.ResultSnapshot, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	snapshots, total, err := s.repo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if snapshots == nil {
		snapshots = []model.ResultSnapshot{}
	}

	return snapshots, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}
