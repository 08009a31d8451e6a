package types

import (
	"time"

	"github.com/google/uuid"
)

// WaterSample is one measurement event for one product at one instant.
// Samples are insert-only; a correction is a new sample, never an update.
type WaterSample struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index;column:product_id" json:"product_id"`
	Product     *Product  `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
	Date        time.Time `gorm:"not null;index;column:date" json:"date"`
	Image       string    `gorm:"column:image" json:"image"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (WaterSample) TableName() string { return "tr_water_sample" }
