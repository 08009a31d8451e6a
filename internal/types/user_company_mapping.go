package types

import (
	"github.com/google/uuid"
)

// UserCompanyMapping links an account to the company it manages. One row per
// user; reassignment updates the row in place.
type UserCompanyMapping struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:company_id" json:"company_id"`
	Company   *Company  `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
}

func (UserCompanyMapping) TableName() string { return "ms_user_company_mapping" }
