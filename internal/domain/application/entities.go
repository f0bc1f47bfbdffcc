package application

import (
	"errors"
	"time"
)

var (
	// ErrStatusChanged means a conditional update found the row in a
	// different status than the one the guard was evaluated against.
	ErrStatusChanged = errors.New("application status changed concurrently")
)

// MaxReservedAmount is the largest value reserved_amount decimal(12,2) holds.
const MaxReservedAmount = 9999999999.99

type Status string

const (
	StatusNew            Status = "New"
	StatusUnderReview    Status = "Under Review"
	StatusApproved       Status = "Approved"
	StatusRejected       Status = "Rejected"
	StatusWithdrawn      Status = "Withdrawn"
	StatusReserved       Status = "Reserved"
	StatusContractSigned Status = "Contract Signed"
)

// Statuses lists every status in declaration order.
var Statuses = []Status{
	StatusNew, StatusUnderReview, StatusApproved, StatusRejected,
	StatusWithdrawn, StatusReserved, StatusContractSigned,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no lifecycle action leaves s.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusWithdrawn || s == StatusContractSigned
}

// Table: applications
type Application struct {
	ID         string  `gorm:"column:id;type:char(36);primaryKey"`
	LeadID     string  `gorm:"column:lead_id;type:char(36);not null;index:idx_applications_lead"`
	PropertyID string  `gorm:"column:property_id;type:char(36);not null;index:idx_applications_property"`
	Status     Status  `gorm:"column:status;type:varchar(20);not null;default:'New';index"`
	Notes      *string `gorm:"column:notes;type:text"`

	ReviewStartedAt  *time.Time `gorm:"column:review_started_at"`
	ApprovedAt       *time.Time `gorm:"column:approved_at"`
	RejectedAt       *time.Time `gorm:"column:rejected_at"`
	RejectedReason   *string    `gorm:"column:rejected_reason;type:text"`
	WithdrawnAt      *time.Time `gorm:"column:withdrawn_at"`
	WithdrawnReason  *string    `gorm:"column:withdrawn_reason;type:text"`
	ReservedAt       *time.Time `gorm:"column:reserved_at"`
	ReservedAmount   *float64   `gorm:"column:reserved_amount;type:decimal(12,2)"`
	ContractSignedAt *time.Time `gorm:"column:contract_signed_at"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_applications_created,sort:desc"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Application) TableName() string { return "applications" }

// View is an Application enriched at read time with display fields of its
// lead and property. Both are nil when the referenced row is gone.
type View struct {
	Application
	LeadName        *string `gorm:"column:lead_name"`
	PropertyAddress *string `gorm:"column:property_address"`
}

// ListFilter is conjunctive; zero values are ignored.
type ListFilter struct {
	PropertyID     string
	LeadID         string
	StartCreatedAt *time.Time
}
