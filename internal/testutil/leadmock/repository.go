package leadmock

import (
	"context"
	"errors"

	domain "rental-backend/internal/domain/lead"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("leadmock: method not implemented")

type Repo struct {
	CreateFn   func(ctx context.Context, l *domain.Lead) error
	GetByIDFn  func(ctx context.Context, id string) (*domain.Lead, error)
	GetByDNIFn func(ctx context.Context, dni string) (*domain.Lead, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Lead) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByDNI(ctx context.Context, dni string) (*domain.Lead, error) {
	if m.GetByDNIFn != nil {
		return m.GetByDNIFn(ctx, dni)
	}
	return nil, errUnimplemented
}
