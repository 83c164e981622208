package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is keyed by (cart_id, product_id). CartID is a client-held token.
type CartItem struct {
	CartID    string    `gorm:"type:varchar(64);primaryKey" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLine is a cart item joined with its live product.
type CartLine struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Image     *string         `json:"image"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"-" json:"subtotal"`
}
