package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error)
	GetByID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error)
	NameExistsForCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, name string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Product
	err := transaction.WithContext(ctx).
		Where("id = ?", productID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (pr *productRepo) NameExistsForCompany(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, name string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("company_id = ? AND name = ?", companyID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *productRepo) Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&types.Product{}).Error
}
