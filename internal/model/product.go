package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price" validate:"gte=0"`
	Category string          `gorm:"type:varchar(64);not null;index" json:"category" validate:"required,category"`
	Image    *string         `gorm:"type:text" json:"image"`

	// AssetHandle is the object store id for an uploaded image; nil for hand-entered URLs.
	// Never sent to clients.
	AssetHandle *string `gorm:"type:varchar(255)" json:"-"`
}

// Handle returns the asset handle or "".
func (p *Product) Handle() string {
	if p.AssetHandle == nil {
		return ""
	}
	return *p.AssetHandle
}
