package service

import (
	"context"
	"errors"
	"testing"

	"maitri-medico/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestAddItem_TwiceIncrements(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Melissa Tea", "130", "sleepRelaxationAids", nil)
	cartID := f.carts.CreateCart()

	for i := 0; i < 2; i++ {
		if err := f.carts.AddItem(ctx, cartID, p.ID, 1); err != nil {
			t.Fatalf("add #%d: %v", i+1, err)
		}
	}

	var rows []model.CartItem
	f.db.Where("cart_id = ?", cartID).Find(&rows)
	if len(rows) != 1 || rows[0].Quantity != 2 {
		t.Fatalf("want one row with quantity 2, got %+v", rows)
	}

	lines, err := f.carts.ListItems(ctx, cartID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 || lines[0].Name != "Melissa Tea" || !lines[0].Subtotal.Equal(decimal.NewFromInt(260)) {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestAddItem_Defaults(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Magnesium Glycinate", "540", "vitaminsNutritionalSupport", nil)

	if err := f.carts.AddItem(ctx, "c1", p.ID, 0); err != nil {
		t.Fatalf("add: %v", err)
	}
	lines, _ := f.carts.ListItems(ctx, "c1")
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("quantity should default to 1: %+v", lines)
	}

	if err := f.carts.AddItem(ctx, "c1", uuid.New(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown product err = %v", err)
	}
	if err := f.carts.AddItem(ctx, "  ", p.ID, 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank cart err = %v", err)
	}
}

func TestListItems_ExcludesDeletedProducts(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	keep := f.seedProduct(t, "Keep", "10", "antiAnxiety", nil)
	gone := f.seedProduct(t, "Gone", "20", "antiAnxiety", nil)

	f.carts.AddItem(ctx, "c2", keep.ID, 1)
	f.carts.AddItem(ctx, "c2", gone.ID, 1)

	// soft delete behind the catalog's back so the cart row survives
	if err := f.products.Delete(ctx, gone.ID, "test"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	lines, err := f.carts.ListItems(ctx, "c2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != keep.ID {
		t.Fatalf("deleted product should be excluded: %+v", lines)
	}
}

func TestRemoveItem_Idempotent(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Fish Oil", "380", "vitaminsNutritionalSupport", nil)
	f.carts.AddItem(ctx, "c3", p.ID, 3)

	for i := 0; i < 2; i++ {
		if err := f.carts.RemoveItem(ctx, "c3", p.ID); err != nil {
			t.Fatalf("remove #%d: %v", i+1, err)
		}
	}
	lines, _ := f.carts.ListItems(ctx, "c3")
	if len(lines) != 0 {
		t.Fatalf("cart not empty: %+v", lines)
	}
}

func TestCheckout(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	a := f.seedProduct(t, "A", "100.50", "antiAnxiety", nil)
	b := f.seedProduct(t, "B", "20", "antiAnxiety", nil)
	f.carts.AddItem(ctx, "c4", a.ID, 2)
	f.carts.AddItem(ctx, "c4", b.ID, 1)

	if _, err := f.carts.Checkout(ctx, "c4", CheckoutInput{CustomerName: "Priya"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing address err = %v", err)
	}

	order, err := f.carts.Checkout(ctx, "c4", CheckoutInput{
		CustomerName: "Priya", Phone: "9876543210", Address: "12 MG Road, Pune",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("221")) || len(order.Items) != 2 {
		t.Fatalf("unexpected order: total=%s items=%d", order.TotalAmount, len(order.Items))
	}

	lines, _ := f.carts.ListItems(ctx, "c4")
	if len(lines) != 0 {
		t.Fatalf("cart should be cleared after checkout")
	}
	if _, err := f.carts.Checkout(ctx, "c4", CheckoutInput{
		CustomerName: "Priya", Phone: "9876543210", Address: "12 MG Road, Pune",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty cart err = %v", err)
	}
}
