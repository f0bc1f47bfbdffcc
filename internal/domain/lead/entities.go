package lead

import (
	"time"
)

// Table: leads
type Lead struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(160);not null"`
	DNI       string    `gorm:"column:dni;type:varchar(20);not null;uniqueIndex:ux_leads_dni"`
	Email     *string   `gorm:"column:email;type:varchar(254)"`
	Phone     *string   `gorm:"column:phone;type:varchar(32)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Lead) TableName() string { return "leads" }
