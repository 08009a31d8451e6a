package types

import (
	"github.com/google/uuid"
)

// WaterProperty is a catalog-defined measured quantity (pH, Iron, ...). The
// name is the join key used to map measurement payload keys to catalog rows.
type WaterProperty struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
}

func (WaterProperty) TableName() string { return "lt_water_property" }
