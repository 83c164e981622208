package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const OrderPlaced = "placed"

type Order struct {
	BaseModel
	CartID       string          `gorm:"type:varchar(64);index" json:"cart_id"`
	CustomerName string          `gorm:"type:varchar(255);not null" json:"customer_name" validate:"required,max=255"`
	Phone        string          `gorm:"type:varchar(20);not null" json:"phone" validate:"required,min=7,max=20"`
	Address      string          `gorm:"type:text;not null" json:"address" validate:"required"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status       string          `gorm:"type:varchar(20);not null" json:"status"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots the product price at checkout time.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"type:varchar(255)" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
