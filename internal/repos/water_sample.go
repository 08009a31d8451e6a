package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type WaterSampleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, samples []*types.WaterSample) ([]*types.WaterSample, error)
	CountByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int64, error)
	DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type waterSampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWaterSampleRepo(db *gorm.DB, baseLog *logger.Logger) WaterSampleRepo {
	return &waterSampleRepo{db: db, log: baseLog.With("repo", "WaterSampleRepo")}
}

func (wr *waterSampleRepo) Create(ctx context.Context, tx *gorm.DB, samples []*types.WaterSample) ([]*types.WaterSample, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if len(samples) == 0 {
		return []*types.WaterSample{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (wr *waterSampleRepo) CountByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WaterSample{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (wr *waterSampleRepo) DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&types.WaterSample{}).Error
}
