package types

import (
	"github.com/google/uuid"
)

// WaterPrediction is the classification assigned to a sample, exactly one per
// sample. It is written in the same transaction as the sample itself.
type WaterPrediction struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	WaterSampleID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex;column:water_sample_id" json:"water_sample_id"`
	WaterSample    *WaterSample  `gorm:"foreignKey:WaterSampleID;references:ID" json:"water_sample,omitempty"`
	WaterQualityID uuid.UUID     `gorm:"type:uuid;not null;index;column:water_quality_id" json:"water_quality_id"`
	WaterQuality   *WaterQuality `gorm:"foreignKey:WaterQualityID;references:ID" json:"water_quality,omitempty"`
}

func (WaterPrediction) TableName() string { return "tr_water_prediction" }
