package employee

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Repository is the data access surface for employee records.
type Repository interface {
	List(ctx context.Context, query *ListQuery) ([]Employee, int64, error)
	Create(ctx context.Context, emp *Employee) error
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, groupColumn string) ([]StatsRow, error)
}

// Service handles employee business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List runs the filtered page and the total count against the same predicate
// so the meta block matches the data.
func (s *Service) List(ctx context.Context, query *ListQuery) (*ListResponse, error) {
	data, total, err := s.repo.List(ctx, query)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	if data == nil {
		data = []Employee{}
	}
	return &ListResponse{
		Data: data,
		Meta: ListMeta{Total: total, Skip: query.Skip, Take: query.Take},
	}, nil
}

func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp := dto.toEmployee(uuid.NewString())
	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("failed to create employee", "error", err)
		return nil, err
	}

	s.logger.Info("employee created", "employee_id", emp.ID)
	return emp, nil
}

// Update replaces the whole record identified by the id in the body.
func (s *Service) Update(ctx context.Context, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp := dto.toEmployee(dto.ID)
	if err := s.repo.Update(ctx, emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", dto.ID)
		return nil, err
	}

	return emp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return err
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// Stats aggregates the whole table into one row per distinct value of the
// grouping column.
func (s *Service) Stats(ctx context.Context, groupBy string) ([]StatsRow, error) {
	column, err := ParseGroupBy(groupBy)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Stats(ctx, column)
	if err != nil {
		s.logger.Error("failed to aggregate employee stats", "error", err, "group_by", groupBy)
		return nil, err
	}
	if rows == nil {
		rows = []StatsRow{}
	}
	return rows, nil
}
