package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type RoleRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*types.Role, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Role, error)
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	return &roleRepo{db: db, log: baseLog.With("repo", "RoleRepo")}
}

func (rr *roleRepo) GetByID(ctx context.Context, tx *gorm.DB, roleID uuid.UUID) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Role
	err := transaction.WithContext(ctx).
		Where("id = ?", roleID).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (rr *roleRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Role
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
