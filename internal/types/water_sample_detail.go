package types

import (
	"github.com/google/uuid"
)

// WaterSampleDetail is one (property, value) pair belonging to a sample.
type WaterSampleDetail struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	WaterSampleID   uuid.UUID      `gorm:"type:uuid;not null;index;column:water_sample_id" json:"water_sample_id"`
	WaterSample     *WaterSample   `gorm:"foreignKey:WaterSampleID;references:ID" json:"water_sample,omitempty"`
	WaterPropertyID uuid.UUID      `gorm:"type:uuid;not null;index;column:water_property_id" json:"water_property_id"`
	WaterProperty   *WaterProperty `gorm:"foreignKey:WaterPropertyID;references:ID" json:"water_property,omitempty"`
	Value           float64        `gorm:"type:decimal(14,6);not null;column:value" json:"value"`
}

func (WaterSampleDetail) TableName() string { return "tr_water_sample_detail" }
