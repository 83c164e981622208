package service

import (
	"context"
	"errors"
	"testing"

	"maitri-medico/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestListByCategory_UnknownIsEmpty(t *testing.T) {
	f := setupServices(t)
	f.seedProduct(t, "CalmTea", "199", "naturalHerbalMentalWellness", nil)

	list, err := f.catalog.ListByCategory(context.Background(), "not-a-real-category")
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", list)
	}
}

func TestListAll_SortedByName(t *testing.T) {
	f := setupServices(t)
	for _, name := range []string{"Zinc", "Ashwagandha", "Magnesium"} {
		f.seedProduct(t, name, "100", "vitaminsNutritionalSupport", nil)
	}

	list, err := f.catalog.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Ashwagandha", "Magnesium", "Zinc"}
	for i, p := range list {
		if p.Name != want[i] {
			t.Fatalf("list[%d] = %s, want %s", i, p.Name, want[i])
		}
	}
}

func TestCatalogCreate_Validation(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	if _, err := f.catalog.Create(ctx, superUser, ProductFields{Name: strp("X")}, nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing fields err = %v", err)
	}
	if _, err := f.catalog.Create(ctx, superUser, fields("X", "10", "snacks"), nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad category err = %v", err)
	}
	if len(f.store.RetireCalls) != 0 {
		t.Fatalf("nothing should be retired")
	}
}

func TestCatalogCreate_ImageURLHasNoHandle(t *testing.T) {
	f := setupServices(t)
	in := fields("Passionflower", "140", "antiAnxiety")
	in.Image = strp("https://cdn.example.com/passionflower.jpg")

	p, err := f.catalog.Create(context.Background(), superUser, in, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Image == nil || *p.Image != "https://cdn.example.com/passionflower.jpg" || p.AssetHandle != nil {
		t.Fatalf("unexpected image fields: %v %v", p.Image, p.AssetHandle)
	}
	if p.CreatedBy != superUser.ID.String() {
		t.Fatalf("created_by = %s", p.CreatedBy)
	}
}

func TestCatalogUpdate_PartialAndImageReplace(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	p := f.seedProduct(t, "L-Theanine", "310", "antiAnxiety", pngUpload())
	oldHandle := p.Handle()

	updated, err := f.catalog.Update(ctx, superUser, p.ID, ProductFields{Price: price("289.99")}, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "L-Theanine" || updated.Handle() != oldHandle || !updated.Price.Equal(decimal.RequireFromString("289.99")) {
		t.Fatalf("partial update: %+v", updated)
	}
	if len(f.store.RetireCalls) != 0 {
		t.Fatalf("handle unchanged, nothing to retire")
	}

	updated, err = f.catalog.Update(ctx, superUser, p.ID, ProductFields{}, pngUpload())
	if err != nil {
		t.Fatalf("update image: %v", err)
	}
	if updated.Handle() == oldHandle {
		t.Fatalf("handle not replaced")
	}
	if f.store.Retired(oldHandle) != 1 {
		t.Fatalf("old handle retired %d times", f.store.Retired(oldHandle))
	}

	if _, err := f.catalog.Update(ctx, superUser, uuid.New(), ProductFields{}, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing product err = %v", err)
	}
}

func TestCatalogUpdate_InvalidPatchRetiresNewUpload(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	p := f.seedProduct(t, "5-HTP", "410", "antidepressants", nil)

	_, err := f.catalog.Update(ctx, superUser, p.ID, ProductFields{Category: strp("unknown")}, pngUpload())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if len(f.store.RetireCalls) != 1 {
		t.Fatalf("fresh upload should be retired on rollback: %v", f.store.RetireCalls)
	}
	got, _ := f.catalog.GetByID(ctx, p.ID)
	if got.Category != "antidepressants" || got.Image != nil {
		t.Fatalf("product changed by failed update: %+v", got)
	}
}

func TestCatalogDelete(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	p := f.seedProduct(t, "GABA", "260", "antiAnxiety", pngUpload())

	if err := f.carts.AddItem(ctx, "cart-1", p.ID, 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if err := f.catalog.Delete(ctx, superUser, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.store.Retired(p.Handle()) != 1 {
		t.Fatalf("handle not retired")
	}
	if _, err := f.catalog.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
	var n int64
	f.db.Model(&model.CartItem{}).Where("product_id = ?", p.ID).Count(&n)
	if n != 0 {
		t.Fatalf("cart rows left for deleted product: %d", n)
	}

	if err := f.catalog.Delete(ctx, superUser, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}
