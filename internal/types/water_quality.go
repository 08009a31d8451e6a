package types

import (
	"github.com/google/uuid"
)

// WaterQuality is a catalog-defined classification outcome. Every label the
// classifier can emit must be seeded here before the first ingestion.
type WaterQuality struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
}

func (WaterQuality) TableName() string { return "lt_water_quality" }
