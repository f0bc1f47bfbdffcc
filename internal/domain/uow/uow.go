package uow

import (
	"context"

	"rental-backend/internal/domain/application"
	"rental-backend/internal/domain/lead"
	"rental-backend/internal/domain/property"
	"rental-backend/internal/domain/visit"
)

// Repos are bound to the same transaction.
type Repos struct {
	Applications application.Repository
	Leads        lead.Repository
	Properties   property.Repository
	Visits       visit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
