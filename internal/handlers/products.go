package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"htxagri/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type productCreateRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Unit        string  `json:"unit"`
	MemberID    *string `json:"member_id"`
}

type productUpdateRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
	MemberID    *string `json:"member_id"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !models.ValidCategory(req.Category) {
		respondError(w, http.StatusBadRequest, "invalid category")
		return
	}
	if req.Unit == "" {
		respondError(w, http.StatusBadRequest, "unit is required")
		return
	}
	product := models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Unit:        req.Unit,
		MemberID:    req.MemberID,
		IsActive:    true,
	}
	if err := h.products.Create(r.Context(), h.db, product); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create product")
		return
	}
	created, err := h.products.GetByID(r.Context(), product.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load product")
		return
	}
	h.broadcastStats(r.Context())
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	var req productUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	product, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load product")
		return
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.MemberID != nil {
		product.MemberID = req.MemberID
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if product.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !models.ValidCategory(product.Category) {
		respondError(w, http.StatusBadRequest, "invalid category")
		return
	}
	if err := h.products.Update(r.Context(), h.db, product); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update product")
		return
	}
	updated, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load product")
		return
	}
	h.broadcastStats(r.Context())
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), h.db, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to delete product")
		return
	}
	h.broadcastStats(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
