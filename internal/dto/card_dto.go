package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CardCreateRequest struct {
	Email string `json:"email"`
}

type CardTransferRequest struct {
	FromCardID uuid.UUID       `json:"from_card_id"`
	ToCardID   uuid.UUID       `json:"to_card_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type CardStatusRequest struct {
	Status string `json:"status"`
}

// CardResponse always carries the masked number, never plaintext or
// ciphertext.
type CardResponse struct {
	ID             uuid.UUID       `json:"id"`
	Number         string          `json:"number"`
	FirstName      string          `json:"first_name"`
	SecondName     string          `json:"second_name"`
	ExpirationDate time.Time       `json:"expiration_date"`
	Status         string          `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
