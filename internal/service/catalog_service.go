package service

import (
	"context"

	"maitri-medico/internal/cache"
	"maitri-medico/internal/model"
	"maitri-medico/internal/repository"
	"maitri-medico/internal/storage"
	"maitri-medico/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	Create(ctx context.Context, actor Actor, in ProductFields, up *Upload) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, patch ProductFields, up *Upload) (*model.Product, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type catalogService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	store       storage.ObjectStore
	cache       cache.ProductCache
	events      EventPublisher
}

func NewCatalogService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	store storage.ObjectStore,
	productCache cache.ProductCache,
	events EventPublisher,
) CatalogService {
	return &catalogService{
		db:          db,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		store:       store,
		cache:       productCache,
		events:      events,
	}
}

func (s *catalogService) Create(ctx context.Context, actor Actor, in ProductFields, up *Upload) (*model.Product, error) {
	if !in.complete() {
		return nil, invalid("name, price and category are required")
	}
	p := &model.Product{
		Name:     *in.Name,
		Price:    *in.Price,
		Category: *in.Category,
		Image:    nonEmpty(in.Image),
	}
	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if up != nil {
		asset, err := putUpload(ctx, s.store, up)
		if err != nil {
			return nil, err
		}
		p.Image = &asset.URL
		p.AssetHandle = &asset.Handle
	}

	p.CreatedBy = actor.auditID()
	p.UpdatedBy = actor.auditID()
	if err := s.productRepo.Create(ctx, p); err != nil {
		storage.RetireBestEffort(ctx, s.store, p.Handle(), "create_rollback", "")
		return nil, err
	}

	s.changed(ctx, "created", p)
	return p, nil
}

func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, kindOf(err, "product", id)
	}
	return p, nil
}

func (s *catalogService) ListAll(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

// ListByCategory returns an empty list for categories outside the fixed set.
func (s *catalogService) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	if !model.IsValidCategory(category) {
		return []model.Product{}, nil
	}
	if products, ok := s.cache.GetCategory(ctx, category); ok {
		return products, nil
	}
	products, err := s.productRepo.FindByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.cache.SetCategory(ctx, category, products)
	return products, nil
}

// Update applies patch to the product. A new upload replaces the image; the
// previous asset is retired after commit when its handle changed.
func (s *catalogService) Update(ctx context.Context, actor Actor, id uuid.UUID, patch ProductFields, up *Upload) (*model.Product, error) {
	var asset *storage.Asset
	if up != nil {
		var err error
		if asset, err = putUpload(ctx, s.store, up); err != nil {
			return nil, err
		}
	}

	var (
		updated   *model.Product
		oldHandle string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)

		p, err := products.FindByIDForUpdate(ctx, id)
		if err != nil {
			return kindOf(err, "product", id)
		}
		oldHandle = p.Handle()

		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		switch {
		case asset != nil:
			p.Image = &asset.URL
			p.AssetHandle = &asset.Handle
		case nonEmpty(patch.Image) != nil:
			p.Image = nonEmpty(patch.Image)
			p.AssetHandle = nil
		}

		if errs := validator.ValidateStruct(p); len(errs) > 0 {
			return validationError(errs)
		}
		p.UpdatedBy = actor.auditID()
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		if asset != nil {
			storage.RetireBestEffort(ctx, s.store, asset.Handle, "update_rollback", "")
		}
		return nil, err
	}

	if oldHandle != "" && oldHandle != updated.Handle() {
		storage.RetireBestEffort(ctx, s.store, oldHandle, "catalog_update", "")
	}
	s.changed(ctx, "updated", updated)
	return updated, nil
}

func (s *catalogService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	var handle string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)

		p, err := products.FindByIDForUpdate(ctx, id)
		if err != nil {
			return kindOf(err, "product", id)
		}
		handle = p.Handle()

		if err := s.cartRepo.WithTx(tx).RemoveProduct(ctx, id); err != nil {
			return err
		}
		if err := products.Delete(ctx, id, actor.auditID()); err != nil {
			return kindOf(err, "product", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	storage.RetireBestEffort(ctx, s.store, handle, "catalog_delete", "")
	s.changed(ctx, "deleted", idOnly(id))
	return nil
}

func (s *catalogService) changed(ctx context.Context, action string, data interface{}) {
	s.cache.Invalidate(ctx)
	s.events.Publish(EventProductChanged, map[string]interface{}{
		"action":  action,
		"product": data,
	})
}

func idOnly(id uuid.UUID) map[string]string {
	return map[string]string{"id": id.String()}
}
