package mysql

import (
	"context"

	visitDomain "rental-backend/internal/domain/visit"

	"gorm.io/gorm"
)

type VisitRepository struct{ db *gorm.DB }

func NewVisitRepository(db *gorm.DB) *VisitRepository { return &VisitRepository{db: db} }

func (r *VisitRepository) Create(ctx context.Context, v *visitDomain.Visit) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VisitRepository) GetForApplication(ctx context.Context, applicationID, visitID string) (*visitDomain.Visit, error) {
	var out visitDomain.Visit
	res := r.db.WithContext(ctx).
		Where("id = ? AND application_id = ?", visitID, applicationID).
		Take(&out)
	return &out, res.Error
}

func (r *VisitRepository) ListByApplicationID(ctx context.Context, applicationID string) ([]visitDomain.Visit, error) {
	out := []visitDomain.Visit{}
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("scheduled_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *VisitRepository) UpdateFields(ctx context.Context, id string, expected visitDomain.Status, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&visitDomain.Visit{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return visitDomain.ErrStatusChanged
	}
	return nil
}
