package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/gymmawy/gymmawy/internal/api/dto"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/testutil"
	"github.com/gymmawy/gymmawy/internal/types"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewUserService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *UserServiceSuite) register(email string) *dto.AuthResponse {
	resp, err := s.service.Register(s.GetContext(), dto.RegisterRequest{
		Email:     email,
		Password:  "sup3r-secret",
		FirstName: "Test",
		LastName:  "Member",
	})
	s.Require().NoError(err)
	return resp
}

func (s *UserServiceSuite) TestRegister() {
	resp := s.register("member@example.com")

	s.NotEmpty(resp.Token)
	s.Equal("member@example.com", resp.User.Email)
	s.Equal(types.UserRoleMember, resp.User.Role)

	// The token is signed with the configured secret and carries the user id.
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.GetConfig().Auth.Secret), nil
	})
	s.Require().NoError(err)
	s.Equal(resp.User.ID, claims["sub"])
	s.Equal(string(types.UserRoleMember), claims["role"])
}

func (s *UserServiceSuite) TestRegisterDuplicateEmail() {
	s.register("member@example.com")

	_, err := s.service.Register(s.GetContext(), dto.RegisterRequest{
		Email:     "Member@Example.com",
		Password:  "sup3r-secret",
		FirstName: "Other",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *UserServiceSuite) TestRegisterWeakPassword() {
	_, err := s.service.Register(s.GetContext(), dto.RegisterRequest{
		Email:     "member@example.com",
		Password:  "short",
		FirstName: "Test",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UserServiceSuite) TestLogin() {
	s.register("member@example.com")

	resp, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "member@example.com",
		Password: "sup3r-secret",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
}

func (s *UserServiceSuite) TestLoginWrongPassword() {
	s.register("member@example.com")

	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "member@example.com",
		Password: "wrong-password",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *UserServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "sup3r-secret",
	})
	s.Error(err)
	// Unknown email and wrong password are indistinguishable.
	s.True(ierr.IsPermissionDenied(err))
}

func (s *UserServiceSuite) TestUpdateProfile() {
	created := s.register("member@example.com")

	updated, err := s.service.UpdateProfile(s.GetContext(), created.User.ID, dto.UpdateProfileRequest{
		FirstName: lo.ToPtr("Renamed"),
		City:      lo.ToPtr("Cairo"),
	})
	s.Require().NoError(err)
	s.Equal("Renamed", updated.FirstName)
	s.Equal("Cairo", updated.City)
	// Untouched fields stay as they were.
	s.Equal("Member", updated.LastName)
}

func (s *UserServiceSuite) TestListUsers() {
	s.register("a@example.com")
	s.register("b@example.com")

	resp, err := s.service.ListUsers(s.GetContext(), 1, 0)
	s.Require().NoError(err)
	s.Len(resp.Items, 1)
	s.Equal(2, resp.Total)
}

func (s *UserServiceSuite) TestDeleteUser() {
	created := s.register("member@example.com")

	s.NoError(s.service.DeleteUser(s.GetContext(), created.User.ID))

	_, err := s.service.GetUser(s.GetContext(), created.User.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
