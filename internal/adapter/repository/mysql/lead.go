package mysql

import (
	"context"

	leadDomain "rental-backend/internal/domain/lead"

	"gorm.io/gorm"
)

type LeadRepository struct{ db *gorm.DB }

func NewLeadRepository(db *gorm.DB) *LeadRepository { return &LeadRepository{db: db} }

func (r *LeadRepository) Create(ctx context.Context, l *leadDomain.Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*leadDomain.Lead, error) {
	var out leadDomain.Lead
	res := r.db.WithContext(ctx).Where("id = ?", id).Take(&out)
	return &out, res.Error
}

func (r *LeadRepository) GetByDNI(ctx context.Context, dni string) (*leadDomain.Lead, error) {
	var out leadDomain.Lead
	res := r.db.WithContext(ctx).Where("dni = ?", dni).Take(&out)
	return &out, res.Error
}
