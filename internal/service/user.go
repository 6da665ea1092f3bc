package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// UserService covers registration, login and profile management. Tokens are
// stateless JWTs carrying the user id and role.
type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, id string, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, limit, offset int) (*dto.ListUsersResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.UserRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ierr.NewError("email is already registered").
			WithHint("An account with this email already exists").
			WithReportableDetails(map[string]any{"email": email}).
			Mark(ierr.ErrAlreadyExists)
	} else if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrInternal)
	}

	u := req.ToUser(string(hash))
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.issueToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(u)}, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	token, err := s.issueToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(u)}, nil
}

// invalidCredentials is deliberately identical for unknown email and wrong
// password.
func invalidCredentials() error {
	return ierr.NewError("invalid email or password").
		WithHint("Invalid email or password").
		Mark(ierr.ErrPermissionDenied)
}

func (s *userService) issueToken(userID string, role types.UserRole) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.Config.Auth.TokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.Config.Auth.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to sign auth token").
			Mark(ierr.ErrInternal)
	}
	return token, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.MobileNumber != nil {
		u.MobileNumber = *req.MobileNumber
	}
	if req.Country != nil {
		u.Country = *req.Country
	}
	if req.City != nil {
		u.City = *req.City
	}

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) (*dto.ListUsersResponse, error) {
	if limit <= 0 {
		limit = types.FilterDefaultLimit
	}

	users, err := s.UserRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.UserRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		responses[i] = dto.NewUserResponse(u)
	}

	listResponse := types.NewListResponse(responses, int(total), limit, offset)
	return &listResponse, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	return s.UserRepo.Delete(ctx, id)
}
