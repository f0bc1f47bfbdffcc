package visit

import (
	"errors"
	"time"
)

var (
	ErrStatusChanged = errors.New("visit status changed concurrently")
)

type Status string

const (
	StatusScheduled    Status = "Scheduled"
	StatusCompleted    Status = "Completed"
	StatusCancelled    Status = "Cancelled"
	StatusDidNotAttend Status = "Did Not Attend"
)

// Table: visits
type Visit struct {
	ID string `gorm:"column:id;type:char(36);primaryKey"`
	// FK to applications.id
	ApplicationID string    `gorm:"column:application_id;type:char(36);not null;index:idx_visits_application"`
	ScheduledAt   time.Time `gorm:"column:scheduled_at;not null"`
	Status        Status    `gorm:"column:status;type:varchar(20);not null;default:'Scheduled'"`
	Notes         *string   `gorm:"column:notes;type:text"`

	CompletedAt     *time.Time `gorm:"column:completed_at"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at"`
	CancelledReason *string    `gorm:"column:cancelled_reason;type:text"`
	NoShowAt        *time.Time `gorm:"column:no_show_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Visit) TableName() string { return "visits" }
