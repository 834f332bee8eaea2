package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"htxagri/internal/models"
	"htxagri/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type harvestCreateRequest struct {
	ProductID    string           `json:"product_id"`
	MemberID     string           `json:"member_id"`
	HarvestDate  string           `json:"harvest_date"`
	Quantity     decimal.Decimal  `json:"quantity"`
	QualityGrade *string          `json:"quality_grade"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	Notes        *string          `json:"notes"`
}

func (h *Handler) ListHarvests(w http.ResponseWriter, r *http.Request) {
	harvests, err := h.harvests.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load harvests")
		return
	}
	if harvests == nil {
		harvests = []models.Harvest{}
	}
	respondJSON(w, http.StatusOK, harvests)
}

func (h *Handler) GetHarvest(w http.ResponseWriter, r *http.Request) {
	harvest, err := h.harvests.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "harvest not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load harvest")
		return
	}
	respondJSON(w, http.StatusOK, harvest)
}

func (h *Handler) CreateHarvest(w http.ResponseWriter, r *http.Request) {
	var req harvestCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ProductID == "" || req.MemberID == "" {
		respondError(w, http.StatusBadRequest, "product_id and member_id are required")
		return
	}
	if err := validator.ValidateDate(req.HarvestDate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateQuantity(req.Quantity); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	harvest := models.Harvest{
		ID:           uuid.NewString(),
		ProductID:    req.ProductID,
		MemberID:     req.MemberID,
		HarvestDate:  req.HarvestDate,
		Quantity:     req.Quantity,
		QualityGrade: req.QualityGrade,
		Notes:        req.Notes,
	}
	if req.PricePerUnit != nil {
		if err := validatePrice(*req.PricePerUnit); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		total := req.Quantity.Mul(*req.PricePerUnit)
		harvest.PricePerUnit = req.PricePerUnit
		harvest.TotalValue = &total
	}
	if err := h.harvests.Create(r.Context(), h.db, harvest); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to record harvest")
		return
	}
	created, err := h.harvests.GetByID(r.Context(), harvest.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load harvest")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
