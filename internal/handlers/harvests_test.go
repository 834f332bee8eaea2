package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"htxagri/internal/models"
	"htxagri/internal/store"
)

func TestCreateHarvestComputesTotal(t *testing.T) {
	var stored models.Harvest
	handler := newTestHandler(handlerDeps{
		harvests: stubHarvestStore{
			createFn: func(_ context.Context, _ store.Execer, harvest models.Harvest) error {
				stored = harvest
				return nil
			},
			getByIDFn: func(_ context.Context, harvestID string) (models.Harvest, error) {
				stored.ID = harvestID
				return stored, nil
			},
		},
	})
	body := []byte(`{"product_id":"prod-1","member_id":"mem-1","harvest_date":"2024-08-20","quantity":"250.5","price_per_unit":"15000"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/harvests", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateHarvest(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if stored.TotalValue == nil {
		t.Fatalf("expected computed total value")
	}
	if stored.TotalValue.String() != "3757500" {
		t.Fatalf("expected total 3757500, got %s", stored.TotalValue)
	}
}

func TestCreateHarvestWithoutPrice(t *testing.T) {
	var stored models.Harvest
	handler := newTestHandler(handlerDeps{
		harvests: stubHarvestStore{
			createFn: func(_ context.Context, _ store.Execer, harvest models.Harvest) error {
				stored = harvest
				return nil
			},
		},
	})
	body := []byte(`{"product_id":"prod-1","member_id":"mem-1","harvest_date":"2024-08-20","quantity":"250.5"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/harvests", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateHarvest(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if stored.PricePerUnit != nil || stored.TotalValue != nil {
		t.Fatalf("expected no price or total without price_per_unit: %#v", stored)
	}
}

func TestCreateHarvestInvalidQuantity(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	body := []byte(`{"product_id":"prod-1","member_id":"mem-1","harvest_date":"2024-08-20","quantity":"0"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/harvests", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateHarvest(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateHarvestMissingMember(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	body := []byte(`{"product_id":"prod-1","harvest_date":"2024-08-20","quantity":"10"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/harvests", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.CreateHarvest(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
