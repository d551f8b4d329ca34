package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	SecondName string    `json:"second_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
}

// UserUpdateRequest applies only the fields that are present.
type UserUpdateRequest struct {
	FirstName  *string `json:"first_name"`
	SecondName *string `json:"second_name"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password"`
}
