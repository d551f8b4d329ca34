package services

import (
	"testing"
	"time"

	"github.com/akazakov/bankcards/internal/cardnumber"
	"github.com/akazakov/bankcards/internal/config"
	"github.com/akazakov/bankcards/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testEncryptKey = "0123456789abcdef0123456789abcdef"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Card{}, &models.BlockRequest{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		JWTAccessExpiry:     time.Hour,
		CardEncryptKey:      testEncryptKey,
		CardStartingBalance: decimal.NewFromInt(1000),
		CardValidityYears:   1,
	}
}

func testCipher(t *testing.T) *cardnumber.Cipher {
	t.Helper()
	cipher, err := cardnumber.NewCipher(testEncryptKey)
	require.NoError(t, err)
	return cipher
}

func newCardService(t *testing.T, db *gorm.DB) *CardService {
	t.Helper()
	return NewCardService(db, NewUserService(db), testCipher(t), testConfig())
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FirstName:  "Ivan",
		SecondName: "Petrov",
		Email:      email,
		Password:   string(hash),
		Role:       role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestCard(t *testing.T, db *gorm.DB, owner *models.User, balance int64, status string) *models.Card {
	t.Helper()
	number, err := cardnumber.Generate()
	require.NoError(t, err)
	encrypted, err := testCipher(t).Encrypt(number)
	require.NoError(t, err)

	card := models.Card{
		Number:         encrypted,
		UserID:         owner.ID,
		ExpirationDate: time.Now().UTC().AddDate(1, 0, 0),
		Status:         status,
		Balance:        decimal.NewFromInt(balance),
	}
	require.NoError(t, db.Create(&card).Error)
	return &card
}

func reloadCard(t *testing.T, db *gorm.DB, card *models.Card) *models.Card {
	t.Helper()
	var fresh models.Card
	require.NoError(t, db.First(&fresh, "id = ?", card.ID).Error)
	return &fresh
}
