package visit

import "context"

type Repository interface {
	Create(ctx context.Context, v *Visit) error

	// Get a visit scoped to its parent application.
	GetForApplication(ctx context.Context, applicationID, visitID string) (*Visit, error)

	ListByApplicationID(ctx context.Context, applicationID string) ([]Visit, error)

	// UpdateFields only lands while the stored status equals expected,
	// otherwise ErrStatusChanged.
	UpdateFields(ctx context.Context, id string, expected Status, fields map[string]any) error
}
