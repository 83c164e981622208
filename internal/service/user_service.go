package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"maitri-medico/internal/model"
	"maitri-medico/internal/repository"
	"maitri-medico/pkg/validator"

	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(ctx context.Context, actor Actor, req *CreateUserRequest) (*model.UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error
	GetAllUsers(ctx context.Context) ([]model.UserResponse, error)
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN SUPER_ADMIN"`
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUser adds a back-office account. Role defaults to ADMIN.
func (s *userService) CreateUser(ctx context.Context, actor Actor, req *CreateUserRequest) (*model.UserResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if req.Role == "" {
		req.Role = model.RoleAdmin
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s already exists", ErrConflict, req.Email)
	}

	role, err := s.roleRepo.FindByCode(ctx, req.Role)
	if err != nil {
		return nil, kindOf(err, "role", req.Role)
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		RoleID:   &role.ID,
		IsActive: true,
	}
	user.CreatedBy = actor.auditID()
	user.UpdatedBy = actor.auditID()

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.Role = role
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	if id == actor.ID {
		return fmt.Errorf("%w: cannot delete your own account", ErrForbidden)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return kindOf(err, "user", id)
	}
	return nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}
