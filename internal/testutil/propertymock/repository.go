package propertymock

import (
	"context"
	"errors"

	domain "rental-backend/internal/domain/property"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("propertymock: method not implemented")

type Repo struct {
	CreateFn  func(ctx context.Context, p *domain.Property) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Property, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Property) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}
