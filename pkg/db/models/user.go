package models

import (
	"time"

	"github.com/enginequip/quotation-backend/pkg/enums"
)

// User is a staff or admin account that can sign in and create quotations.
type User struct {
	ID           int        `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string     `gorm:"column:username;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"column:role;not null;default:staff"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
