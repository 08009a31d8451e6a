package types

import (
	"github.com/google/uuid"
)

const (
	RoleSuperadmin = "Superadmin"
	RoleAdmin      = "Admin"
	RoleUser       = "User"
)

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
}

func (Role) TableName() string { return "lt_role" }
