package service

import (
	"context"
	"strings"

	"maitri-medico/internal/model"
	"maitri-medico/internal/repository"
	"maitri-medico/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxCartIDLen = 64

type CartService interface {
	CreateCart() string
	AddItem(ctx context.Context, cartID string, productID uuid.UUID, qty int) error
	ListItems(ctx context.Context, cartID string) ([]model.CartLine, error)
	RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) error
	Checkout(ctx context.Context, cartID string, in CheckoutInput) (*model.Order, error)
}

type CheckoutInput struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type cartService struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewCartService(db *gorm.DB, cartRepo repository.CartRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) CartService {
	return &cartService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// CreateCart issues a fresh client-held cart token.
func (s *cartService) CreateCart() string {
	return uuid.NewString()
}

func checkCartID(cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return invalid("cart_id is required")
	}
	if len(cartID) > maxCartIDLen {
		return invalid("cart_id is too long")
	}
	return nil
}

// AddItem adds qty of the product, incrementing an existing line. qty <= 0 means 1.
func (s *cartService) AddItem(ctx context.Context, cartID string, productID uuid.UUID, qty int) error {
	if err := checkCartID(cartID); err != nil {
		return err
	}
	if qty <= 0 {
		qty = 1
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return kindOf(err, "product", productID)
	}
	return s.cartRepo.AddQuantity(ctx, cartID, productID, qty)
}

func (s *cartService) ListItems(ctx context.Context, cartID string) ([]model.CartLine, error) {
	if err := checkCartID(cartID); err != nil {
		return nil, err
	}
	return s.cartRepo.ListLines(ctx, cartID)
}

// RemoveItem is idempotent.
func (s *cartService) RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) error {
	if err := checkCartID(cartID); err != nil {
		return err
	}
	return s.cartRepo.Remove(ctx, cartID, productID)
}

// Checkout snapshots the cart's current prices into an order and empties the cart.
func (s *cartService) Checkout(ctx context.Context, cartID string, in CheckoutInput) (*model.Order, error) {
	if err := checkCartID(cartID); err != nil {
		return nil, err
	}

	order := &model.Order{
		CartID:       cartID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Status:       model.OrderPlaced,
	}
	if errs := validator.ValidateStruct(order); len(errs) > 0 {
		return nil, validationError(errs)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		lines, err := carts.ListLines(ctx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return invalid("cart %s is empty", cartID)
		}

		total := decimal.Zero
		for _, l := range lines {
			order.Items = append(order.Items, model.OrderItem{
				ProductID: l.ProductID,
				Name:      l.Name,
				UnitPrice: l.Price,
				Quantity:  l.Quantity,
				Subtotal:  l.Subtotal,
			})
			total = total.Add(l.Subtotal)
		}
		order.TotalAmount = total

		if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		return carts.Clear(ctx, cartID)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}
