package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RequestType string

const (
	RequestAdd    RequestType = "add"
	RequestUpdate RequestType = "update"
	RequestDelete RequestType = "delete"
)

func (t RequestType) Valid() bool {
	switch t {
	case RequestAdd, RequestUpdate, RequestDelete:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// ProductSnapshot is the proposed product state stored on a change request.
// For delete requests it is a copy of the product being removed.
type ProductSnapshot struct {
	ID          *uuid.UUID      `json:"id,omitempty"`
	Name        string          `json:"name" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Category    string          `json:"category" validate:"required,category"`
	Image       *string         `json:"image"`
	AssetHandle *string         `json:"asset_handle"`

	// Uploaded is set when AssetHandle was uploaded for this proposal,
	// so rejecting or cancelling it must retire the asset.
	Uploaded bool `json:"uploaded"`
}

func (s ProductSnapshot) Handle() string {
	if s.AssetHandle == nil {
		return ""
	}
	return *s.AssetHandle
}

// SnapshotOf copies the product's current fields.
func SnapshotOf(p *Product) ProductSnapshot {
	id := p.ID
	return ProductSnapshot{
		ID:          &id,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		AssetHandle: p.AssetHandle,
	}
}

type ChangeRequest struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AdminName   string          `gorm:"type:varchar(255);not null;index" json:"admin_name"`
	AdminID     *uuid.UUID      `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	RequestType RequestType     `gorm:"type:varchar(10);not null" json:"request_type"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id"`
	ProductData ProductSnapshot `gorm:"type:jsonb;serializer:json;not null" json:"product_data"`
	Status      RequestStatus   `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	DecidedBy   string          `gorm:"type:varchar(255)" json:"decided_by,omitempty"`
	DecidedAt   *time.Time      `json:"decided_at,omitempty"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (r *ChangeRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// SubmittedBy reports whether the request belongs to the given admin.
func (r *ChangeRequest) SubmittedBy(adminID uuid.UUID, adminName string) bool {
	if r.AdminID != nil {
		return *r.AdminID == adminID
	}
	return r.AdminName == adminName
}
