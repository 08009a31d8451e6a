package types

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Address     string    `gorm:"not null;column:address" json:"address"`
	Email       string    `gorm:"not null;column:email" json:"email"`
	PhoneNumber string    `gorm:"not null;column:phone_number" json:"phone_number"`
	Website     string    `gorm:"column:website" json:"website"`
	Image       string    `gorm:"column:image" json:"image"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Company) TableName() string { return "ms_company" }
