package services

import (
	"fmt"
	"time"

	"github.com/akazakov/bankcards/internal/cardnumber"
	"github.com/akazakov/bankcards/internal/config"
	"github.com/akazakov/bankcards/internal/dto"
	"github.com/akazakov/bankcards/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CardService covers the card lifecycle: issuance, status transitions,
// deletion and peer-to-peer transfers between a user's own cards.
type CardService struct {
	db     *gorm.DB
	users  *UserService
	cipher *cardnumber.Cipher
	cfg    *config.Config
}

func NewCardService(db *gorm.DB, users *UserService, cipher *cardnumber.Cipher, cfg *config.Config) *CardService {
	return &CardService{db: db, users: users, cipher: cipher, cfg: cfg}
}

func (s *CardService) List(limit, offset int) ([]dto.CardResponse, int64, error) {
	var cards []models.Card
	var total int64

	query := s.db.Model(&models.Card{})
	query.Count(&total)

	if err := query.Preload("User").Order("created_at DESC").Limit(limit).Offset(offset).Find(&cards).Error; err != nil {
		return nil, 0, err
	}
	return s.responses(cards), total, nil
}

func (s *CardService) ListByEmail(email string, limit, offset int) ([]dto.CardResponse, int64, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, 0, err
	}

	var cards []models.Card
	var total int64

	query := s.db.Model(&models.Card{}).Where("user_id = ?", user.ID)
	query.Count(&total)

	if err := query.Preload("User").Order("created_at DESC").Limit(limit).Offset(offset).Find(&cards).Error; err != nil {
		return nil, 0, err
	}
	return s.responses(cards), total, nil
}

// GetByEmailAndID returns a card only to its owner.
func (s *CardService) GetByEmailAndID(email string, cardID uuid.UUID) (*dto.CardResponse, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	card, err := s.findByID(s.db, cardID)
	if err != nil {
		return nil, err
	}

	if card.UserID != user.ID {
		return nil, operationErr("you are not the owner of this card")
	}

	resp := s.response(card, user)
	return &resp, nil
}

func (s *CardService) Balance(email string, cardID uuid.UUID) (decimal.Decimal, error) {
	card, err := s.GetByEmailAndID(email, cardID)
	if err != nil {
		return decimal.Zero, err
	}
	return card.Balance, nil
}

// Create issues a card for the user behind email: a fresh encrypted
// 16-digit number, one year of validity, ACTIVE status and the
// configured starting balance. Number uniqueness is enforced by the
// database index; a collision surfaces as an insert error.
func (s *CardService) Create(req *dto.CardCreateRequest) (*dto.CardResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	number, err := cardnumber.Generate()
	if err != nil {
		return nil, err
	}
	encrypted, err := s.cipher.Encrypt(number)
	if err != nil {
		return nil, err
	}

	card := models.Card{
		Number:         encrypted,
		UserID:         user.ID,
		ExpirationDate: time.Now().UTC().AddDate(s.cfg.CardValidityYears, 0, 0),
		Status:         models.CardStatusActive,
		Balance:        s.cfg.CardStartingBalance,
	}
	if err := s.db.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return &dto.CardResponse{
		ID:             card.ID,
		Number:         s.cipher.Mask(number, false),
		FirstName:      user.FirstName,
		SecondName:     user.SecondName,
		ExpirationDate: card.ExpirationDate,
		Status:         card.Status,
		Balance:        card.Balance,
	}, nil
}

// UpdateStatus applies the new status unconditionally, with one
// exception: an EXPIRED card can never be reactivated.
func (s *CardService) UpdateStatus(cardID uuid.UUID, newStatus string) error {
	switch newStatus {
	case models.CardStatusActive, models.CardStatusBlocked, models.CardStatusExpired:
	default:
		return operationErr("unknown card status: %s", newStatus)
	}

	card, err := s.findByID(s.db, cardID)
	if err != nil {
		return err
	}

	if card.Status == models.CardStatusExpired && newStatus == models.CardStatusActive {
		return operationErr("cannot activate an expired card")
	}

	return s.db.Model(card).Update("status", newStatus).Error
}

// Delete removes the card and its block requests in one transaction.
func (s *CardService) Delete(cardID uuid.UUID) error {
	card, err := s.findByID(s.db, cardID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", card.ID).Delete(&models.BlockRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(card).Error
	})
}

// Transfer moves amount between two cards owned by the caller. The
// checks run in a fixed order and the first failure wins; debit and
// credit commit together or not at all.
func (s *CardService) Transfer(email string, req *dto.CardTransferRequest) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		fromCard, err := s.findByID(tx, req.FromCardID)
		if err != nil {
			return err
		}
		toCard, err := s.findByID(tx, req.ToCardID)
		if err != nil {
			return err
		}

		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return operationErr("transfer amount must be positive")
		}

		if fromCard.UserID != user.ID || toCard.UserID != user.ID {
			return operationErr("transfers are only possible between your own cards")
		}

		if req.FromCardID == req.ToCardID {
			return operationErr("cannot transfer to the same card")
		}

		if fromCard.Status != models.CardStatusActive || toCard.Status != models.CardStatusActive {
			return operationErr("transfers are only possible between active cards")
		}

		if fromCard.Balance.LessThan(req.Amount) {
			return operationErr("insufficient funds")
		}

		fromCard.Balance = fromCard.Balance.Sub(req.Amount)
		toCard.Balance = toCard.Balance.Add(req.Amount)

		if err := tx.Model(fromCard).Update("balance", fromCard.Balance).Error; err != nil {
			return err
		}
		return tx.Model(toCard).Update("balance", toCard.Balance).Error
	})
}

func (s *CardService) findByID(db *gorm.DB, cardID uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := db.First(&card, "id = ?", cardID).Error; err != nil {
		return nil, notFound("card", cardID.String())
	}
	return &card, nil
}

func (s *CardService) response(card *models.Card, owner *models.User) dto.CardResponse {
	return dto.CardResponse{
		ID:             card.ID,
		Number:         s.cipher.Mask(card.Number, true),
		FirstName:      owner.FirstName,
		SecondName:     owner.SecondName,
		ExpirationDate: card.ExpirationDate,
		Status:         card.Status,
		Balance:        card.Balance,
	}
}

func (s *CardService) responses(cards []models.Card) []dto.CardResponse {
	out := make([]dto.CardResponse, len(cards))
	for i := range cards {
		out[i] = s.response(&cards[i], &cards[i].User)
	}
	return out
}
