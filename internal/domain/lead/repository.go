package lead

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lead) error
	GetByID(ctx context.Context, id string) (*Lead, error)
	GetByDNI(ctx context.Context, dni string) (*Lead, error)
}
