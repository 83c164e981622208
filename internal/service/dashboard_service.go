package service

import (
	"context"

	"maitri-medico/internal/repository"
)

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
}

type dashboardService struct {
	dashRepo repository.DashboardRepository
}

func NewDashboardService(dashRepo repository.DashboardRepository) DashboardService {
	return &dashboardService{dashRepo: dashRepo}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.dashRepo.GetDashboardStats(ctx)
}
