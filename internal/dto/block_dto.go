package dto

import (
	"time"

	"github.com/google/uuid"
)

type BlockResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CardID      uuid.UUID `json:"card_id"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}
