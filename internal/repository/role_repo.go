package repository

import (
	"context"
	"errors"

	"maitri-medico/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll(ctx context.Context) ([]model.Role, error)
	FindByCode(ctx context.Context, code string) (*model.Role, error)
	SeedDefaults(ctx context.Context) error
	AssignPrivileges(ctx context.Context, role *model.Role, privileges []model.Privilege) error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll(ctx context.Context) ([]model.Role, error) {
	roles := []model.Role{}
	err := r.db.WithContext(ctx).Preload("Privileges").Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByCode(ctx context.Context, code string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Preload("Privileges").Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *roleRepo) SeedDefaults(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, defaultRole := range model.DefaultRoles {
		var existingRole model.Role
		err := db.Where("code = ?", defaultRole.Code).First(&existingRole).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role := defaultRole
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

// AssignPrivileges replaces the role's privilege set.
func (r *roleRepo) AssignPrivileges(ctx context.Context, role *model.Role, privileges []model.Privilege) error {
	return r.db.WithContext(ctx).Model(role).Association("Privileges").Replace(privileges)
}
