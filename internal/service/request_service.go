package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maitri-medico/internal/cache"
	"maitri-medico/internal/metrics"
	"maitri-medico/internal/model"
	"maitri-medico/internal/repository"
	"maitri-medico/internal/storage"
	"maitri-medico/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RequestService interface {
	Submit(ctx context.Context, actor Actor, in SubmitInput) (*model.ChangeRequest, error)
	List(ctx context.Context, filter repository.RequestFilter) ([]model.ChangeRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ChangeRequest, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*model.ChangeRequest, error)
	Decide(ctx context.Context, actor Actor, id uuid.UUID, outcome model.RequestStatus) (*model.ChangeRequest, error)
}

type SubmitInput struct {
	Type      model.RequestType
	ProductID *uuid.UUID
	Fields    ProductFields
	Upload    *Upload
}

type requestService struct {
	db          *gorm.DB
	requestRepo repository.RequestRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	store       storage.ObjectStore
	cache       cache.ProductCache
	events      EventPublisher
}

func NewRequestService(
	db *gorm.DB,
	requestRepo repository.RequestRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	store storage.ObjectStore,
	productCache cache.ProductCache,
	events EventPublisher,
) RequestService {
	return &requestService{
		db:          db,
		requestRepo: requestRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		store:       store,
		cache:       productCache,
		events:      events,
	}
}

func (s *requestService) Submit(ctx context.Context, actor Actor, in SubmitInput) (*model.ChangeRequest, error) {
	if !in.Type.Valid() {
		return nil, invalid("unknown request type %q", in.Type)
	}
	if in.Type == model.RequestDelete && in.Upload != nil {
		return nil, invalid("delete requests do not take an image")
	}

	var (
		snap      model.ProductSnapshot
		productID *uuid.UUID
	)

	switch in.Type {
	case model.RequestAdd:
		if !in.Fields.complete() {
			return nil, invalid("name, price and category are required")
		}
		snap = model.ProductSnapshot{
			Name:     *in.Fields.Name,
			Price:    *in.Fields.Price,
			Category: *in.Fields.Category,
			Image:    nonEmpty(in.Fields.Image),
		}

	case model.RequestUpdate, model.RequestDelete:
		if in.ProductID == nil || *in.ProductID == uuid.Nil {
			return nil, invalid("product_id is required for %s requests", in.Type)
		}
		current, err := s.productRepo.FindByID(ctx, *in.ProductID)
		if err != nil {
			return nil, kindOf(err, "product", *in.ProductID)
		}
		productID = &current.ID
		snap = model.SnapshotOf(current)

		if in.Type == model.RequestUpdate {
			if in.Fields.Name != nil {
				snap.Name = *in.Fields.Name
			}
			if in.Fields.Price != nil {
				snap.Price = *in.Fields.Price
			}
			if in.Fields.Category != nil {
				snap.Category = *in.Fields.Category
			}
			// a typed URL replaces the current image and drops its handle
			if img := nonEmpty(in.Fields.Image); img != nil && in.Upload == nil {
				snap.Image = img
				snap.AssetHandle = nil
			}
		}
	}

	if errs := validator.ValidateStruct(snap); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if in.Upload != nil {
		asset, err := putUpload(ctx, s.store, in.Upload)
		if err != nil {
			return nil, err
		}
		snap.Image = &asset.URL
		snap.AssetHandle = &asset.Handle
		snap.Uploaded = true
	}

	req := &model.ChangeRequest{
		AdminName:   actor.Name,
		RequestType: in.Type,
		ProductID:   productID,
		ProductData: snap,
		Status:      model.StatusPending,
	}
	if actor.ID != uuid.Nil {
		id := actor.ID
		req.AdminID = &id
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		if snap.Uploaded {
			storage.RetireBestEffort(ctx, s.store, snap.Handle(), "submit_rollback", "")
		}
		return nil, err
	}

	metrics.ChangeRequests.WithLabelValues(string(req.RequestType)).Inc()
	s.events.Publish(EventRequestSubmitted, req)
	return req, nil
}

// List returns requests newest first.
func (s *requestService) List(ctx context.Context, filter repository.RequestFilter) ([]model.ChangeRequest, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalid("unknown status %q", filter.Status)
	}
	return s.requestRepo.List(ctx, filter)
}

func (s *requestService) Get(ctx context.Context, id uuid.UUID) (*model.ChangeRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, kindOf(err, "change request", id)
	}
	return req, nil
}

func (s *requestService) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*model.ChangeRequest, error) {
	var req *model.ChangeRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)

		r, err := requests.FindByIDForUpdate(ctx, id)
		if err != nil {
			return kindOf(err, "change request", id)
		}
		if !actor.IsSuperAdmin() && !r.SubmittedBy(actor.ID, actor.Name) {
			return fmt.Errorf("%w: change request %s belongs to another admin", ErrForbidden, id)
		}
		if r.Status.IsTerminal() {
			return fmt.Errorf("%w: change request %s is already %s", ErrConflict, id, r.Status)
		}

		now := time.Now()
		if err := requests.TransitionFromPending(ctx, id, model.StatusCancelled, actor.Name, now); err != nil {
			return kindOf(err, "change request", id)
		}
		r.Status = model.StatusCancelled
		r.DecidedBy = actor.Name
		r.DecidedAt = &now
		req = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.ProductData.Uploaded {
		storage.RetireBestEffort(ctx, s.store, req.ProductData.Handle(), "cancel", req.ID.String())
	}

	metrics.Decisions.WithLabelValues(string(model.StatusCancelled)).Inc()
	s.events.Publish(EventRequestCancelled, req)
	return req, nil
}

// Decide approves or rejects a pending request. Applying the snapshot to the
// catalog and the status write commit together; asset retirement runs after.
func (s *requestService) Decide(ctx context.Context, actor Actor, id uuid.UUID, outcome model.RequestStatus) (*model.ChangeRequest, error) {
	if outcome != model.StatusApproved && outcome != model.StatusRejected {
		return nil, invalid("outcome must be approved or rejected, got %q", outcome)
	}

	var (
		req     *model.ChangeRequest
		retired []string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests := s.requestRepo.WithTx(tx)

		r, err := requests.FindByIDForUpdate(ctx, id)
		if err != nil {
			return kindOf(err, "change request", id)
		}
		if r.Status.IsTerminal() {
			return fmt.Errorf("%w: change request %s is already %s", ErrConflict, id, r.Status)
		}

		if outcome == model.StatusApproved {
			handles, err := s.apply(ctx, tx, actor, r)
			if err != nil {
				return err
			}
			retired = handles
		} else if r.ProductData.Uploaded && r.ProductData.Handle() != "" {
			retired = append(retired, r.ProductData.Handle())
		}

		now := time.Now()
		if err := requests.TransitionFromPending(ctx, id, outcome, actor.Name, now); err != nil {
			return kindOf(err, "change request", id)
		}
		r.Status = outcome
		r.DecidedBy = actor.Name
		r.DecidedAt = &now
		req = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	op := "approve"
	if outcome == model.StatusRejected {
		op = "reject"
	}
	for _, h := range retired {
		storage.RetireBestEffort(ctx, s.store, h, op, req.ID.String())
	}
	if outcome == model.StatusApproved {
		s.cache.Invalidate(ctx)
	}

	zap.L().Info("change request decided",
		zap.String("request_id", req.ID.String()),
		zap.String("type", string(req.RequestType)),
		zap.String("outcome", string(outcome)),
		zap.String("by", actor.Name),
	)
	metrics.Decisions.WithLabelValues(string(outcome)).Inc()
	s.events.Publish(EventRequestDecided, req)
	return req, nil
}

// apply writes an approved request's snapshot onto the catalog inside tx and
// returns the asset handles that the change orphaned.
func (s *requestService) apply(ctx context.Context, tx *gorm.DB, actor Actor, r *model.ChangeRequest) ([]string, error) {
	products := s.productRepo.WithTx(tx)
	snap := r.ProductData

	switch r.RequestType {
	case model.RequestAdd:
		p := &model.Product{
			Name:        snap.Name,
			Price:       snap.Price,
			Category:    snap.Category,
			Image:       snap.Image,
			AssetHandle: snap.AssetHandle,
		}
		p.CreatedBy = actor.auditID()
		p.UpdatedBy = actor.auditID()
		if err := products.Create(ctx, p); err != nil {
			return nil, err
		}
		return nil, nil

	case model.RequestUpdate:
		if r.ProductID == nil {
			return nil, invalid("update request %s has no product_id", r.ID)
		}
		current, err := products.FindByIDForUpdate(ctx, *r.ProductID)
		if err != nil {
			return nil, kindOf(err, "product", *r.ProductID)
		}

		var orphaned []string
		if old := current.Handle(); old != "" && old != snap.Handle() {
			orphaned = append(orphaned, old)
		}

		current.Name = snap.Name
		current.Price = snap.Price
		current.Category = snap.Category
		current.Image = snap.Image
		current.AssetHandle = snap.AssetHandle
		current.UpdatedBy = actor.auditID()
		if err := products.Update(ctx, current); err != nil {
			return nil, err
		}
		return orphaned, nil

	case model.RequestDelete:
		if r.ProductID == nil {
			return nil, invalid("delete request %s has no product_id", r.ID)
		}
		current, err := products.FindByIDForUpdate(ctx, *r.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			// already gone
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.WithTx(tx).RemoveProduct(ctx, current.ID); err != nil {
			return nil, err
		}
		if err := products.Delete(ctx, current.ID, actor.auditID()); err != nil {
			return nil, err
		}
		if h := current.Handle(); h != "" {
			return []string{h}, nil
		}
		return nil, nil
	}

	return nil, invalid("unknown request type %q", r.RequestType)
}
