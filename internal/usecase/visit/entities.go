package visit

import (
	"time"

	domain "rental-backend/internal/domain/visit"
)

type ScheduleInput struct {
	ScheduledAt string  `json:"scheduledAt" validate:"required,datestr"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

type CompleteInput struct {
	CompletedAt string `json:"completedAt" validate:"required,datestr"`
}

type CancelInput struct {
	CancelledAt     string `json:"cancelledAt" validate:"required,datestr"`
	CancelledReason string `json:"cancelledReason" validate:"notblank,max=500"`
}

type NoShowInput struct {
	MarkedAt string `json:"markedAt" validate:"required,datestr"`
}

type VisitDTO struct {
	ID              string     `json:"id"`
	ApplicationID   string     `json:"applicationId"`
	ScheduledAt     time.Time  `json:"scheduledAt"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes"`
	CompletedAt     *time.Time `json:"completedAt"`
	CancelledAt     *time.Time `json:"cancelledAt"`
	CancelledReason *string    `json:"cancelledReason"`
	NoShowAt        *time.Time `json:"noShowAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func toDTO(v *domain.Visit) *VisitDTO {
	return &VisitDTO{
		ID:              v.ID,
		ApplicationID:   v.ApplicationID,
		ScheduledAt:     v.ScheduledAt,
		Status:          string(v.Status),
		Notes:           v.Notes,
		CompletedAt:     v.CompletedAt,
		CancelledAt:     v.CancelledAt,
		CancelledReason: v.CancelledReason,
		NoShowAt:        v.NoShowAt,
		CreatedAt:       v.CreatedAt,
	}
}
