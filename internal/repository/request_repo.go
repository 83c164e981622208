package repository

import (
	"context"
	"time"

	"maitri-medico/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestFilter narrows a ledger listing. Zero values match everything.
type RequestFilter struct {
	AdminName string
	AdminID   *uuid.UUID
	Status    model.RequestStatus
}

type RequestRepository interface {
	WithTx(tx *gorm.DB) RequestRepository
	Create(ctx context.Context, req *model.ChangeRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ChangeRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ChangeRequest, error)
	List(ctx context.Context, filter RequestFilter) ([]model.ChangeRequest, error)
	TransitionFromPending(ctx context.Context, id uuid.UUID, to model.RequestStatus, decidedBy string, at time.Time) error
}

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db}
}

func (r *requestRepo) WithTx(tx *gorm.DB) RequestRepository {
	return &requestRepo{tx}
}

func (r *requestRepo) Create(ctx context.Context, req *model.ChangeRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ChangeRequest, error) {
	var req model.ChangeRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (r *requestRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ChangeRequest, error) {
	var req model.ChangeRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

// List returns requests newest first.
func (r *requestRepo) List(ctx context.Context, filter RequestFilter) ([]model.ChangeRequest, error) {
	requests := []model.ChangeRequest{}
	q := r.db.WithContext(ctx).Model(&model.ChangeRequest{})
	if filter.AdminID != nil {
		q = q.Where("admin_id = ?", *filter.AdminID)
	}
	if filter.AdminName != "" {
		q = q.Where("admin_name = ?", filter.AdminName)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// TransitionFromPending moves a pending request to a terminal status. The
// status guard in the WHERE clause makes concurrent transitions mutually exclusive:
// the loser sees zero affected rows and gets ErrNotPending.
func (r *requestRepo) TransitionFromPending(ctx context.Context, id uuid.UUID, to model.RequestStatus, decidedBy string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.ChangeRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":     to,
			"decided_by": decidedBy,
			"decided_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}
