package services

import (
	"fmt"

	"github.com/akazakov/bankcards/internal/dto"
	"github.com/akazakov/bankcards/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(limit, offset int) ([]dto.UserResponse, int64, error) {
	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	responses := make([]dto.UserResponse, len(users))
	for i, u := range users {
		responses[i] = userResponse(&u)
	}
	return responses, total, nil
}

func (s *UserService) GetByID(id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.findByID(id)
	if err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

// FindByEmail returns the raw model; callers needing the response shape
// go through GetByID.
func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound("user", email)
	}
	return &user, nil
}

func (s *UserService) Create(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, operationErr("email and password are required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, operationErr("unknown role: %s", role)
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, operationErr("user with email %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FirstName:  req.FirstName,
		SecondName: req.SecondName,
		Email:      req.Email,
		Password:   string(hash),
		Role:       role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := userResponse(&user)
	return &resp, nil
}

func (s *UserService) Update(id uuid.UUID, req *dto.UserUpdateRequest) (*dto.UserResponse, error) {
	user, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.SecondName != nil {
		user.SecondName = *req.SecondName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	resp := userResponse(user)
	return &resp, nil
}

func (s *UserService) UpdatePassword(email, newPassword string) error {
	user, err := s.FindByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(user).Update("password", string(hash)).Error
}

// Delete removes the user together with their cards and block requests.
// The cascade is an explicit transactional delete, dependents first.
func (s *UserService) Delete(id uuid.UUID) error {
	user, err := s.findByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.BlockRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

func (s *UserService) findByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound("user", id.String())
	}
	return &user, nil
}

func userResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		SecondName: u.SecondName,
		Email:      u.Email,
		Role:       u.Role,
	}
}
