package application

import (
	"time"

	domain "rental-backend/internal/domain/application"
)

type CreateInput struct {
	LeadID     string `json:"leadId" validate:"required,uuidid"`
	PropertyID string `json:"propertyId" validate:"required,uuidid"`
}

// UpdateInput replaces the notes; null clears them.
type UpdateInput struct {
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

type ListInput struct {
	PageNumber     int    `query:"pageNumber" validate:"omitempty,gte=1,lte=10000000"`
	PageSize       int    `query:"pageSize" validate:"omitempty,gte=1,lte=100"`
	PropertyID     string `query:"propertyId" validate:"omitempty,uuidid"`
	LeadID         string `query:"leadId" validate:"omitempty,uuidid"`
	StartCreatedAt string `query:"startCreatedAt" validate:"omitempty,datestr"`
}

type StartReviewInput struct {
	ReviewStartedAt string `json:"reviewStartedAt" validate:"required,datestr"`
}

type ApproveInput struct {
	ApprovedAt string `json:"approvedAt" validate:"required,datestr"`
}

type RejectInput struct {
	RejectedReason string `json:"rejectedReason" validate:"notblank,max=500"`
	RejectedAt     string `json:"rejectedAt" validate:"required,datestr"`
}

type WithdrawInput struct {
	WithdrawnReason string `json:"withdrawnReason" validate:"notblank,max=500"`
	WithdrawnAt     string `json:"withdrawnAt" validate:"required,datestr"`
}

type ReserveInput struct {
	ReservedAt     string  `json:"reservedAt" validate:"required,datestr"`
	ReservedAmount float64 `json:"reservedAmount" validate:"gt=0,lte=9999999999.99,dec2"`
}

type SignContractInput struct {
	ContractSignedAt string `json:"contractSignedAt" validate:"required,datestr"`
}

type ApplicationDTO struct {
	ID         string  `json:"id"`
	LeadID     string  `json:"leadId"`
	PropertyID string  `json:"propertyId"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`

	ReviewStartedAt  *time.Time `json:"reviewStartedAt"`
	ApprovedAt       *time.Time `json:"approvedAt"`
	RejectedAt       *time.Time `json:"rejectedAt"`
	RejectedReason   *string    `json:"rejectedReason"`
	WithdrawnAt      *time.Time `json:"withdrawnAt"`
	WithdrawnReason  *string    `json:"withdrawnReason"`
	ReservedAt       *time.Time `json:"reservedAt"`
	ReservedAmount   *float64   `json:"reservedAmount"`
	ContractSignedAt *time.Time `json:"contractSignedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	LeadName        *string `json:"leadName"`
	PropertyAddress *string `json:"propertyAddress"`
}

func toDTO(v *domain.View) *ApplicationDTO {
	a := v.Application
	return &ApplicationDTO{
		ID:               a.ID,
		LeadID:           a.LeadID,
		PropertyID:       a.PropertyID,
		Status:           string(a.Status),
		Notes:            a.Notes,
		ReviewStartedAt:  a.ReviewStartedAt,
		ApprovedAt:       a.ApprovedAt,
		RejectedAt:       a.RejectedAt,
		RejectedReason:   a.RejectedReason,
		WithdrawnAt:      a.WithdrawnAt,
		WithdrawnReason:  a.WithdrawnReason,
		ReservedAt:       a.ReservedAt,
		ReservedAmount:   a.ReservedAmount,
		ContractSignedAt: a.ContractSignedAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
		LeadName:         v.LeadName,
		PropertyAddress:  v.PropertyAddress,
	}
}
