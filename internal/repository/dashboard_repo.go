package repository

import (
	"context"

	"maitri-medico/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

// DashboardStats is the super-admin overview.
type DashboardStats struct {
	Products        int64 `json:"products"`
	Categories      int64 `json:"categories"`
	Users           int64 `json:"users"`
	Orders          int64 `json:"orders"`
	PendingRequests int64 `json:"pending_requests"`
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&stats.Products).Error; err != nil {
		return nil, err
	}

	// distinct categories among live products
	if err := db.Model(&model.Product{}).Distinct("category").Count(&stats.Categories).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.User{}).Count(&stats.Users).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Order{}).Count(&stats.Orders).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.ChangeRequest{}).Where("status = ?", model.StatusPending).Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
