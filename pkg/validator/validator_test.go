package validator

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type item struct {
	Name  string          `validate:"required"`
	Price decimal.Decimal `validate:"gte=0"`
	Kind  string          `validate:"lower_only"`
}

func init() {
	RegisterStringRule("lower_only", func(s string) bool { return s == strings.ToLower(s) })
}

func TestValidateStruct(t *testing.T) {
	ok := item{Name: "Tea", Price: decimal.RequireFromString("12.50"), Kind: "herbal"}
	if errs := ValidateStruct(ok); len(errs) != 0 {
		t.Fatalf("valid item: %v", errs[0])
	}

	bad := item{Price: decimal.RequireFromString("-1"), Kind: "Herbal"}
	errs := ValidateStruct(bad)
	tags := map[string]string{}
	for _, e := range errs {
		tags[e.FailedField] = e.Tag
	}
	if tags["item.Name"] != "required" || tags["item.Price"] != "gte" || tags["item.Kind"] != "lower_only" {
		t.Fatalf("unexpected errors: %v", tags)
	}
}
