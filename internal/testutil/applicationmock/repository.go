package applicationmock

import (
	"context"
	"errors"

	domain "rental-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("applicationmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a no-op, reads to errUnimplemented.
type Repo struct {
	CreateFn           func(ctx context.Context, a *domain.Application) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Application, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Application, error)
	GetWithJoinsFn     func(ctx context.Context, id string) (*domain.View, error)
	ListFn             func(ctx context.Context, f domain.ListFilter, offset, limit int) ([]domain.View, int64, error)
	UpdateFieldsFn     func(ctx context.Context, id string, expected []domain.Status, fields map[string]any) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetWithJoins(ctx context.Context, id string) (*domain.View, error) {
	if m.GetWithJoinsFn != nil {
		return m.GetWithJoinsFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, offset, limit int) ([]domain.View, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, offset, limit)
	}
	return nil, 0, errUnimplemented
}

func (m *Repo) UpdateFields(ctx context.Context, id string, expected []domain.Status, fields map[string]any) error {
	if m.UpdateFieldsFn != nil {
		return m.UpdateFieldsFn(ctx, id, expected, fields)
	}
	return nil
}
