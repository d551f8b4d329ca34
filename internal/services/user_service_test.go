package services

import (
	"testing"

	"github.com/akazakov/bankcards/internal/dto"
	"github.com/akazakov/bankcards/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	resp, err := svc.Create(&dto.RegisterRequest{
		FirstName:  "Anna",
		SecondName: "Smirnova",
		Email:      "anna@example.com",
		Password:   "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, resp.Role, "role defaults to USER")
	assert.Equal(t, "anna@example.com", resp.Email)

	// Password is stored hashed.
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", resp.ID).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "taken@example.com", models.RoleUser)

	_, err := svc.Create(&dto.RegisterRequest{Email: "taken@example.com", Password: "secret123"})

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
}

func TestCreateUserInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	var opErr *OperationError

	_, err := svc.Create(&dto.RegisterRequest{Email: "", Password: "secret123"})
	require.ErrorAs(t, err, &opErr)

	_, err = svc.Create(&dto.RegisterRequest{Email: "x@example.com", Password: "secret123", Role: "SUPERUSER"})
	require.ErrorAs(t, err, &opErr)
}

func TestUpdateUserPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "user@example.com", models.RoleUser)

	name := "Maria"
	resp, err := svc.Update(user.ID, &dto.UserUpdateRequest{FirstName: &name})
	require.NoError(t, err)

	assert.Equal(t, "Maria", resp.FirstName)
	assert.Equal(t, user.SecondName, resp.SecondName, "untouched field survives")
	assert.Equal(t, user.Email, resp.Email)
}

func TestUpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "user@example.com", models.RoleUser)

	require.NoError(t, svc.UpdatePassword("user@example.com", "brand-new-pass"))

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.Password), []byte("brand-new-pass")))
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "user@example.com", models.RoleUser)
	keep := createTestUser(t, db, "keep@example.com", models.RoleUser)

	card := createTestCard(t, db, user, 100, models.CardStatusActive)
	keptCard := createTestCard(t, db, keep, 100, models.CardStatusActive)

	blocks := NewBlockService(db)
	_, err := blocks.Create(user.ID, card.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID))

	var users, cards, requests int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Card{}).Count(&cards)
	db.Model(&models.BlockRequest{}).Count(&requests)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 1, cards)
	assert.Zero(t, requests)

	// The other user's card is untouched.
	var survivor models.Card
	require.NoError(t, db.First(&survivor, "id = ?", keptCard.ID).Error)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	err := svc.Delete(uuid.New())

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListUsersPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	createTestUser(t, db, "a@example.com", models.RoleUser)
	createTestUser(t, db, "b@example.com", models.RoleUser)
	createTestUser(t, db, "c@example.com", models.RoleAdmin)

	users, total, err := svc.List(2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 2)
}
