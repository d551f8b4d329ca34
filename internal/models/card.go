package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CardStatusActive  = "ACTIVE"
	CardStatusBlocked = "BLOCKED"
	CardStatusExpired = "EXPIRED"
)

// Card stores the AES-GCM ciphertext of the card number, never the
// plaintext. The owner is fixed at issuance and never reassigned.
type Card struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Number         string          `gorm:"size:255;not null;uniqueIndex" json:"-"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	ExpirationDate time.Time       `gorm:"not null" json:"expiration_date"`
	Status         string          `gorm:"size:20;not null" json:"status"`
	Balance        decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Card) TableName() string {
	return "cards"
}
