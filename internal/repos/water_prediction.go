package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type WaterPredictionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, predictions []*types.WaterPrediction) ([]*types.WaterPrediction, error)
	GetBySampleID(ctx context.Context, tx *gorm.DB, sampleID uuid.UUID) (*types.WaterPrediction, error)
	DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type waterPredictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWaterPredictionRepo(db *gorm.DB, baseLog *logger.Logger) WaterPredictionRepo {
	return &waterPredictionRepo{db: db, log: baseLog.With("repo", "WaterPredictionRepo")}
}

func (wr *waterPredictionRepo) Create(ctx context.Context, tx *gorm.DB, predictions []*types.WaterPrediction) ([]*types.WaterPrediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if len(predictions) == 0 {
		return []*types.WaterPrediction{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

func (wr *waterPredictionRepo) GetBySampleID(ctx context.Context, tx *gorm.DB, sampleID uuid.UUID) (*types.WaterPrediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.WaterPrediction
	err := transaction.WithContext(ctx).
		Where("water_sample_id = ?", sampleID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (wr *waterPredictionRepo) DeleteByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Exec(`DELETE FROM tr_water_prediction
		      WHERE water_sample_id IN (SELECT id FROM tr_water_sample WHERE product_id = ?)`, productID).Error
}
