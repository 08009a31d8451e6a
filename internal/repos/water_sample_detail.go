package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type WaterSampleDetailRepo interface {
	Create(ctx context.Context, tx *gorm.DB, details []*types.WaterSampleDetail) ([]*types.WaterSampleDetail, error)
	GetBySampleID(ctx context.Context, tx *gorm.DB, sampleID uuid.UUID) ([]*types.WaterSampleDetail, error)
	DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type waterSampleDetailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWaterSampleDetailRepo(db *gorm.DB, baseLog *logger.Logger) WaterSampleDetailRepo {
	return &waterSampleDetailRepo{db: db, log: baseLog.With("repo", "WaterSampleDetailRepo")}
}

func (wr *waterSampleDetailRepo) Create(ctx context.Context, tx *gorm.DB, details []*types.WaterSampleDetail) ([]*types.WaterSampleDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if len(details) == 0 {
		return []*types.WaterSampleDetail{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

func (wr *waterSampleDetailRepo) GetBySampleID(ctx context.Context, tx *gorm.DB, sampleID uuid.UUID) ([]*types.WaterSampleDetail, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.WaterSampleDetail
	if err := transaction.WithContext(ctx).
		Where("water_sample_id = ?", sampleID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *waterSampleDetailRepo) DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Exec(`DELETE FROM tr_water_sample_detail
		      WHERE water_sample_id IN (SELECT id FROM tr_water_sample WHERE product_id = ?)`, productID).Error
}
