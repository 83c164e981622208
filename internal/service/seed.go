package service

import (
	"context"
	"errors"
	"fmt"

	"maitri-medico/internal/model"
	"maitri-medico/internal/repository"

	"go.uber.org/zap"
)

// SeedConfig names the bootstrap super-admin.
type SeedConfig struct {
	Email    string
	Password string
	FullName string
}

// Seed creates the default privileges, roles, role grants and super-admin
// when they don't exist yet. It is safe to run on every start.
func Seed(ctx context.Context, privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository, userRepo repository.UserRepository, cfg SeedConfig) error {
	// 1. privileges
	if err := privilegeRepo.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed privileges: %w", err)
	}

	// 2. roles
	if err := roleRepo.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	// 3. role grants, only for roles that have none yet
	for code, privCodes := range model.RolePrivileges {
		role, err := roleRepo.FindByCode(ctx, code)
		if err != nil {
			return fmt.Errorf("seed grants for %s: %w", code, err)
		}
		if len(role.Privileges) > 0 {
			continue
		}
		privs, err := privilegeRepo.FindByCodes(ctx, privCodes)
		if err != nil {
			return err
		}
		if err := roleRepo.AssignPrivileges(ctx, role, privs); err != nil {
			return fmt.Errorf("seed grants for %s: %w", code, err)
		}
		zap.L().Info("role privileges assigned", zap.String("role", code), zap.Int("count", len(privs)))
	}

	// 4. super-admin
	if cfg.Email == "" {
		return nil
	}
	_, err := userRepo.FindByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	role, err := roleRepo.FindByCode(ctx, model.RoleSuperAdmin)
	if err != nil {
		return err
	}
	admin := &model.User{
		Email:    cfg.Email,
		FullName: cfg.FullName,
		RoleID:   &role.ID,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(cfg.Password); err != nil {
		return fmt.Errorf("hash super-admin password: %w", err)
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create super-admin: %w", err)
	}
	zap.L().Info("super-admin created", zap.String("email", cfg.Email))
	return nil
}
