package property

import (
	"time"
)

// Table: properties
type Property struct {
	ID          string    `gorm:"column:id;type:char(36);primaryKey"`
	Address     string    `gorm:"column:address;type:varchar(255);not null"`
	City        *string   `gorm:"column:city;type:varchar(120)"`
	MonthlyRent *float64  `gorm:"column:monthly_rent;type:decimal(12,2)"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Property) TableName() string { return "properties" }
