package service

import (
	"context"
	"errors"
	"fmt"

	"maitri-medico/internal/model"
	"maitri-medico/internal/repository"
	"maitri-medico/pkg/jwt"

	"github.com/google/uuid"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName, user.RoleCode())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, kindOf(err, "user", userID)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return invalid("new password must be at least 8 characters")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return kindOf(err, "user", userID)
	}

	if !user.CheckPassword(oldPassword) {
		return invalid("current password is incorrect")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, user.Password)
}
