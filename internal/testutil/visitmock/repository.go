package visitmock

import (
	"context"
	"errors"

	domain "rental-backend/internal/domain/visit"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("visitmock: method not implemented")

type Repo struct {
	CreateFn              func(ctx context.Context, v *domain.Visit) error
	GetForApplicationFn   func(ctx context.Context, applicationID, visitID string) (*domain.Visit, error)
	ListByApplicationIDFn func(ctx context.Context, applicationID string) ([]domain.Visit, error)
	UpdateFieldsFn        func(ctx context.Context, id string, expected domain.Status, fields map[string]any) error
}

func (m *Repo) Create(ctx context.Context, v *domain.Visit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) GetForApplication(ctx context.Context, applicationID, visitID string) (*domain.Visit, error) {
	if m.GetForApplicationFn != nil {
		return m.GetForApplicationFn(ctx, applicationID, visitID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByApplicationID(ctx context.Context, applicationID string) ([]domain.Visit, error) {
	if m.ListByApplicationIDFn != nil {
		return m.ListByApplicationIDFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) UpdateFields(ctx context.Context, id string, expected domain.Status, fields map[string]any) error {
	if m.UpdateFieldsFn != nil {
		return m.UpdateFieldsFn(ctx, id, expected, fields)
	}
	return nil
}
