package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"htxagri/internal/models"

	"github.com/shopspring/decimal"
)

func TestHarvestStoreCreate(t *testing.T) {
	ctx := context.Background()
	price := decimal.NewFromInt(12000)
	total := decimal.NewFromInt(3000000)
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO harvests") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 9 || args[1] != "product-1" || args[2] != "member-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewHarvestStore(stubDB{})
	harvest := models.Harvest{
		ID:           "harvest-1",
		ProductID:    "product-1",
		MemberID:     "member-1",
		HarvestDate:  "2024-03-20",
		Quantity:     decimal.NewFromInt(250),
		PricePerUnit: &price,
		TotalValue:   &total,
	}
	if err := store.Create(ctx, execer, harvest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHarvestStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewHarvestStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM harvests") {
				t.Fatalf("unexpected query: %s", query)
			}
			rows := dest.(*[]models.Harvest)
			*rows = []models.Harvest{{ID: "harvest-1"}}
			return nil
		},
	})
	harvests, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(harvests) != 1 {
		t.Fatalf("expected 1 harvest, got %d", len(harvests))
	}
}
