package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type WaterPropertyRepo interface {
	// GetAllByName bulk-fetches the full property catalog keyed by name.
	// One call per ingestion keeps the query count flat no matter how many
	// measurements the payload carries.
	GetAllByName(ctx context.Context, tx *gorm.DB) (map[string]uuid.UUID, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.WaterProperty, error)
}

type waterPropertyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWaterPropertyRepo(db *gorm.DB, baseLog *logger.Logger) WaterPropertyRepo {
	return &waterPropertyRepo{db: db, log: baseLog.With("repo", "WaterPropertyRepo")}
}

func (wr *waterPropertyRepo) GetAllByName(ctx context.Context, tx *gorm.DB) (map[string]uuid.UUID, error) {
	properties, err := wr.GetAll(ctx, tx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(properties))
	for _, p := range properties {
		byName[p.Name] = p.ID
	}
	return byName, nil
}

func (wr *waterPropertyRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.WaterProperty, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.WaterProperty
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
