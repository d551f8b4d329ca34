package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestStatusNotStarted = "NOT_STARTED"
	RequestStatusCompleted  = "COMPLETED"
)

// BlockRequest is a user-initiated request to freeze one of their own
// cards. It moves NOT_STARTED -> COMPLETED exactly once and is never
// re-opened.
type BlockRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CardID      uuid.UUID `gorm:"type:uuid;not null;index" json:"card_id"`
	Card        Card      `gorm:"foreignKey:CardID" json:"-"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	Status      string    `gorm:"size:20;not null;default:'NOT_STARTED'" json:"status"`
	RequestedAt time.Time `gorm:"not null" json:"requested_at"`
}

func (r *BlockRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RequestedAt.IsZero() {
		r.RequestedAt = time.Now().UTC()
	}
	return nil
}

func (BlockRequest) TableName() string {
	return "block_requests"
}
