package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User owns zero or more cards and block requests. Email is the login
// identifier and is unique across the system.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	SecondName string    `gorm:"size:100;not null" json:"second_name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	Role       string    `gorm:"size:20;not null;default:'USER'" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
