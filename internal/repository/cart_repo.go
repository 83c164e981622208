package repository

import (
	"context"

	"maitri-medico/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	AddQuantity(ctx context.Context, cartID string, productID uuid.UUID, qty int) error
	ListLines(ctx context.Context, cartID string) ([]model.CartLine, error)
	Remove(ctx context.Context, cartID string, productID uuid.UUID) error
	Clear(ctx context.Context, cartID string) error
	RemoveProduct(ctx context.Context, productID uuid.UUID) error
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db}
}

func (r *cartRepo) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepo{tx}
}

// AddQuantity inserts the line or increments the existing quantity in one statement.
func (r *cartRepo) AddQuantity(ctx context.Context, cartID string, productID uuid.UUID, qty int) error {
	item := model.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", qty),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&item).Error
}

// ListLines joins against live products only, so items whose product was
// deleted drop out of the listing.
func (r *cartRepo) ListLines(ctx context.Context, cartID string) ([]model.CartLine, error) {
	lines := []model.CartLine{}
	err := r.db.WithContext(ctx).
		Table("cart_items AS c").
		Select("p.id AS product_id, p.name, p.price, p.category, p.image, c.quantity").
		Joins("JOIN products p ON p.id = c.product_id AND p.deleted_at IS NULL").
		Where("c.cart_id = ?", cartID).
		Order("c.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Subtotal = lines[i].Price.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
	}
	return lines, nil
}

func (r *cartRepo) Remove(ctx context.Context, cartID string, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepo) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error
}

func (r *cartRepo) RemoveProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.CartItem{}).Error
}
