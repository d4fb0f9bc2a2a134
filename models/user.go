package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns intake records. ID doubles as the owner id on every record query.
type User struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return
}
