package types

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Image       string    `gorm:"column:image" json:"image"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index;column:company_id" json:"company_id"`
	Company     *Company  `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "ms_product" }
