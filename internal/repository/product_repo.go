package repository

import (
	"context"

	"maitri-medico/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID, deletedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// WithTx returns a repository bound to tx so calls join the caller's transaction.
func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{tx}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// FindByIDForUpdate locks the row (SELECT ... FOR UPDATE); only meaningful inside a transaction.
func (r *productRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Product{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	res := db.Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
