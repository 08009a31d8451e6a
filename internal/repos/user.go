package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	GetAllWithRoles(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	UpdateRole(ctx context.Context, tx *gorm.DB, userID, roleID uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.User
	err := transaction.WithContext(ctx).
		Preload("Role").
		Where("id = ?", userID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.User
	err := transaction.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) GetAllWithRoles(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if err := transaction.WithContext(ctx).
		Preload("Role").
		Order("email ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UpdateRole(ctx context.Context, tx *gorm.DB, userID, roleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID).Error
}
