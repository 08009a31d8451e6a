package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type CompanyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, companies []*types.Company) ([]*types.Company, error)
	GetByID(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) (*types.Company, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Company, error)
}

type companyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompanyRepo(db *gorm.DB, baseLog *logger.Logger) CompanyRepo {
	return &companyRepo{db: db, log: baseLog.With("repo", "CompanyRepo")}
}

func (cr *companyRepo) Create(ctx context.Context, tx *gorm.DB, companies []*types.Company) ([]*types.Company, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(companies) == 0 {
		return []*types.Company{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (cr *companyRepo) GetByID(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) (*types.Company, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Company
	err := transaction.WithContext(ctx).
		Where("id = ?", companyID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *companyRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Company, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Company
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
