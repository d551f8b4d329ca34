package services

import (
	"fmt"

	"github.com/akazakov/bankcards/internal/dto"
	"github.com/akazakov/bankcards/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockService manages the card block-request workflow: an owner files
// a request, an admin completes it, which also freezes the card.
type BlockService struct {
	db *gorm.DB
}

func NewBlockService(db *gorm.DB) *BlockService {
	return &BlockService{db: db}
}

func (s *BlockService) List(limit, offset int) ([]dto.BlockResponse, int64, error) {
	var requests []models.BlockRequest
	var total int64

	query := s.db.Model(&models.BlockRequest{})
	query.Count(&total)

	if err := query.Order("requested_at DESC").Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return blockResponses(requests), total, nil
}

func (s *BlockService) ListByUser(userID uuid.UUID, limit, offset int) ([]dto.BlockResponse, int64, error) {
	var requests []models.BlockRequest
	var total int64

	query := s.db.Model(&models.BlockRequest{}).Where("user_id = ?", userID)
	query.Count(&total)

	if err := query.Order("requested_at DESC").Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return blockResponses(requests), total, nil
}

// Create files a block request on the requester's own card. Ownership
// is compared by user id. A request for this (owner, card) pair of any
// status, COMPLETED included, bars a new one.
func (s *BlockService) Create(requesterID uuid.UUID, cardID uuid.UUID) (*dto.BlockResponse, error) {
	var card models.Card
	if err := s.db.First(&card, "id = ?", cardID).Error; err != nil {
		return nil, notFound("card", cardID.String())
	}

	if card.UserID != requesterID {
		return nil, operationErr("card does not belong to you")
	}

	if card.Status == models.CardStatusBlocked {
		return nil, operationErr("card is already blocked")
	}

	var count int64
	s.db.Model(&models.BlockRequest{}).
		Where("user_id = ? AND card_id = ?", card.UserID, card.ID).
		Count(&count)
	if count > 0 {
		return nil, operationErr("a block request for this card already exists")
	}

	request := models.BlockRequest{
		CardID: card.ID,
		UserID: requesterID,
		Status: models.RequestStatusNotStarted,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("failed to create block request: %w", err)
	}

	resp := blockResponse(&request)
	return &resp, nil
}

// Complete blocks the card and closes the request as one atomic unit.
// Completing an already COMPLETED request is not an error; it simply
// re-asserts the card block.
func (s *BlockService) Complete(requestID uuid.UUID) error {
	var request models.BlockRequest
	if err := s.db.First(&request, "id = ?", requestID).Error; err != nil {
		return notFound("block request", requestID.String())
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Card{}).
			Where("id = ?", request.CardID).
			Update("status", models.CardStatusBlocked).Error; err != nil {
			return err
		}
		return tx.Model(&request).Update("status", models.RequestStatusCompleted).Error
	})
}

func blockResponse(r *models.BlockRequest) dto.BlockResponse {
	return dto.BlockResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		CardID:      r.CardID,
		Status:      r.Status,
		RequestedAt: r.RequestedAt,
	}
}

func blockResponses(requests []models.BlockRequest) []dto.BlockResponse {
	out := make([]dto.BlockResponse, len(requests))
	for i := range requests {
		out[i] = blockResponse(&requests[i])
	}
	return out
}
