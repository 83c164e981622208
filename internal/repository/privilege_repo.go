package repository

import (
	"context"
	"errors"

	"maitri-medico/internal/model"

	"gorm.io/gorm"
)

type PrivilegeRepository interface {
	FindByCodes(ctx context.Context, codes []string) ([]model.Privilege, error)
	SeedDefaults(ctx context.Context) error
}

type privilegeRepo struct {
	db *gorm.DB
}

func NewPrivilegeRepo(db *gorm.DB) PrivilegeRepository {
	return &privilegeRepo{db}
}

func (r *privilegeRepo) FindByCodes(ctx context.Context, codes []string) ([]model.Privilege, error) {
	privileges := []model.Privilege{}
	if err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&privileges).Error; err != nil {
		return nil, err
	}
	return privileges, nil
}

// SeedDefaults creates default privileges if they don't exist
func (r *privilegeRepo) SeedDefaults(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, p := range model.DefaultPrivileges {
		var existing model.Privilege
		err := db.Where("code = ?", p.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			priv := p
			if err := db.Create(&priv).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
