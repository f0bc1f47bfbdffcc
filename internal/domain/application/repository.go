package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)

	// Row-locking read; only meaningful inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Application, error)

	GetWithJoins(ctx context.Context, id string) (*View, error)

	// List returns one page ordered by created_at DESC and the total number
	// of rows matching f regardless of the page.
	List(ctx context.Context, f ListFilter, offset, limit int) ([]View, int64, error)

	// UpdateFields applies a partial update keyed by id. When expected is
	// non-empty the write only lands if the stored status is one of them,
	// otherwise ErrStatusChanged is returned.
	UpdateFields(ctx context.Context, id string, expected []Status, fields map[string]any) error
}
