package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type WaterQualityRepo interface {
	// GetByName resolves a quality label to its catalog row. Returns
	// (nil, nil) when the label is not part of the catalog.
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.WaterQuality, error)
}

type waterQualityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWaterQualityRepo(db *gorm.DB, baseLog *logger.Logger) WaterQualityRepo {
	return &waterQualityRepo{db: db, log: baseLog.With("repo", "WaterQualityRepo")}
}

func (wr *waterQualityRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.WaterQuality, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.WaterQuality
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
