package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/internal/apperr"
	"rental-backend/internal/domain/lead"
	"rental-backend/internal/validation"
	"rental-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct{ repo lead.Repository }

func NewUsecase(r lead.Repository) *Usecase { return &Usecase{repo: r} }

type CreateLeadInput struct {
	Name  string  `json:"name" validate:"notblank,max=160"`
	DNI   string  `json:"dni" validate:"notblank,max=20"`
	Email *string `json:"email" validate:"omitempty,email,max=254"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
}

type LeadDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DNI       string    `json:"dni"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

func toDTO(l *lead.Lead) *LeadDTO {
	return &LeadDTO{ID: l.ID, Name: l.Name, DNI: l.DNI, Email: l.Email, Phone: l.Phone, CreatedAt: l.CreatedAt}
}

func (u *Usecase) Create(ctx context.Context, in CreateLeadInput) (*LeadDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	dni := strings.ToUpper(strings.TrimSpace(in.DNI))

	// One lead per DNI.
	existing, err := u.repo.GetByDNI(ctx, dni)
	switch {
	case err == nil:
		return nil, apperr.Conflict("Lead with dni %q already exists: %s", dni, existing.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("lookup lead by dni: %w", err)
	}

	l := &lead.Lead{
		ID:    id.New(),
		Name:  strings.TrimSpace(in.Name),
		DNI:   dni,
		Email: in.Email,
		Phone: in.Phone,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		// lost a race with a concurrent create of the same dni
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Lead with dni %q already exists", dni)
		}
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, leadID string) (*LeadDTO, error) {
	l, err := u.repo.GetByID(ctx, leadID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Lead", leadID)
	}
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}
