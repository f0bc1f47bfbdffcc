package mysql

import (
	"context"

	appDomain "rental-backend/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("id = ?", id).Take(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out)
	return &out, res.Error
}

// joined selects applications with the display fields of their lead and
// property. LEFT JOIN keeps rows whose references are gone.
func (r *ApplicationRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Select("applications.*, leads.name AS lead_name, properties.address AS property_address").
		Joins("LEFT JOIN leads ON leads.id = applications.lead_id").
		Joins("LEFT JOIN properties ON properties.id = applications.property_id")
}

func (r *ApplicationRepository) GetWithJoins(ctx context.Context, id string) (*appDomain.View, error) {
	var out appDomain.View
	res := r.joined(ctx).Where("applications.id = ?", id).Take(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) List(ctx context.Context, f appDomain.ListFilter, offset, limit int) ([]appDomain.View, int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&appDomain.Application{}), f).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := make([]appDomain.View, 0, limit)
	if total == 0 {
		return out, 0, nil
	}
	err := applyFilter(r.joined(ctx), f).
		Order("applications.created_at DESC").
		Order("applications.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func applyFilter(q *gorm.DB, f appDomain.ListFilter) *gorm.DB {
	if f.PropertyID != "" {
		q = q.Where("applications.property_id = ?", f.PropertyID)
	}
	if f.LeadID != "" {
		q = q.Where("applications.lead_id = ?", f.LeadID)
	}
	if f.StartCreatedAt != nil {
		q = q.Where("applications.created_at >= ?", f.StartCreatedAt.UTC())
	}
	return q
}

func (r *ApplicationRepository) UpdateFields(ctx context.Context, id string, expected []appDomain.Status, fields map[string]any) error {
	q := r.db.WithContext(ctx).Model(&appDomain.Application{}).Where("id = ?", id)
	if len(expected) > 0 {
		q = q.Where("status IN ?", expected)
	}
	res := q.Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if len(expected) > 0 && res.RowsAffected == 0 {
		return appDomain.ErrStatusChanged
	}
	return nil
}
