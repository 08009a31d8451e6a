package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type UserCompanyMappingRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserCompanyMapping, error)
	Create(ctx context.Context, tx *gorm.DB, mapping *types.UserCompanyMapping) error
	UpdateCompany(ctx context.Context, tx *gorm.DB, mappingID, companyID uuid.UUID) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.UserCompanyMapping, error)
}

type userCompanyMappingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserCompanyMappingRepo(db *gorm.DB, baseLog *logger.Logger) UserCompanyMappingRepo {
	return &userCompanyMappingRepo{db: db, log: baseLog.With("repo", "UserCompanyMappingRepo")}
}

func (mr *userCompanyMappingRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserCompanyMapping, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var result types.UserCompanyMapping
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (mr *userCompanyMappingRepo) Create(ctx context.Context, tx *gorm.DB, mapping *types.UserCompanyMapping) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(mapping).Error
}

func (mr *userCompanyMappingRepo) UpdateCompany(ctx context.Context, tx *gorm.DB, mappingID, companyID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.UserCompanyMapping{}).
		Where("id = ?", mappingID).
		Update("company_id", companyID).Error
}

func (mr *userCompanyMappingRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.UserCompanyMapping, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.UserCompanyMapping
	if err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Company").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
