package dto

import (
	"strings"

	"github.com/gymmawy/gymmawy/internal/domain/user"
	"github.com/gymmawy/gymmawy/internal/types"
	"github.com/gymmawy/gymmawy/internal/validator"
)

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
	Country      string `json:"country"`
	City         string `json:"city"`
}

func (r *RegisterRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *RegisterRequest) ToUser(passwordHash string) *user.User {
	return &user.User{
		ID:           types.GenerateUUIDWithPrefix(types.IDPrefixUser),
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		PasswordHash: passwordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		MobileNumber: r.MobileNumber,
		Country:      r.Country,
		City:         r.City,
		Role:         types.UserRoleMember,
		BaseModel:    types.GetDefaultBaseModel(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	MobileNumber *string `json:"mobile_number,omitempty"`
	Country      *string `json:"country,omitempty"`
	City         *string `json:"city,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type UserResponse struct {
	*user.User
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{User: u}
}

type ListUsersResponse = types.ListResponse[*UserResponse]
