package model

import (
	"time"

	"github.com/google/uuid"
)

// VendorModel mirrors the 'vendors' table. Each vendor belongs to exactly
// one user.
type VendorModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null"`
	ShopName  string    `gorm:"type:varchar(100);not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (VendorModel) TableName() string {
	return "vendors"
}
