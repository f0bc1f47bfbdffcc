package property

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/internal/apperr"
	"rental-backend/internal/domain/property"
	"rental-backend/internal/validation"
	"rental-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct{ repo property.Repository }

func NewUsecase(r property.Repository) *Usecase { return &Usecase{repo: r} }

type CreatePropertyInput struct {
	Address     string   `json:"address" validate:"notblank,max=255"`
	City        *string  `json:"city" validate:"omitempty,max=120"`
	MonthlyRent *float64 `json:"monthlyRent" validate:"omitempty,gt=0,lte=9999999999.99,dec2"`
}

type PropertyDTO struct {
	ID          string    `json:"id"`
	Address     string    `json:"address"`
	City        *string   `json:"city"`
	MonthlyRent *float64  `json:"monthlyRent"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u *Usecase) Create(ctx context.Context, in CreatePropertyInput) (*PropertyDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	p := &property.Property{
		ID:          id.New(),
		Address:     strings.TrimSpace(in.Address),
		City:        in.City,
		MonthlyRent: in.MonthlyRent,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return &PropertyDTO{ID: p.ID, Address: p.Address, City: p.City, MonthlyRent: p.MonthlyRent, CreatedAt: p.CreatedAt}, nil
}

func (u *Usecase) Get(ctx context.Context, propertyID string) (*PropertyDTO, error) {
	p, err := u.repo.GetByID(ctx, propertyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Property", propertyID)
	}
	if err != nil {
		return nil, err
	}
	return &PropertyDTO{ID: p.ID, Address: p.Address, City: p.City, MonthlyRent: p.MonthlyRent, CreatedAt: p.CreatedAt}, nil
}
