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
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type contractItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type contractCreateRequest struct {
	ContractCode string                `json:"contract_code"`
	MemberID     string                `json:"member_id"`
	CustomerID   string                `json:"customer_id"`
	Title        string                `json:"title"`
	Description  *string               `json:"description"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	Notes        *string               `json:"notes"`
	Items        []contractItemRequest `json:"contract_items"`
}

type contractStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.contracts.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load contracts")
		return
	}
	if contracts == nil {
		contracts = []models.Contract{}
	}
	respondJSON(w, http.StatusOK, contracts)
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "id")
	contract, err := h.contracts.GetByID(r.Context(), contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "contract not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load contract")
		return
	}
	items, err := h.contracts.ItemsByContract(r.Context(), contractID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load contract items")
		return
	}
	contract.Items = items
	respondJSON(w, http.StatusOK, contract)
}

func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req contractCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateMemberCode(req.ContractCode); err != nil {
		respondError(w, http.StatusBadRequest, "invalid contract code")
		return
	}
	if req.MemberID == "" || req.CustomerID == "" {
		respondError(w, http.StatusBadRequest, "member_id and customer_id are required")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if err := validator.ValidateDate(req.StartDate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateDate(req.EndDate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.EndDate < req.StartDate {
		respondError(w, http.StatusBadRequest, "end_date must not precede start_date")
		return
	}
	contract := models.Contract{
		ID:           uuid.NewString(),
		ContractCode: req.ContractCode,
		MemberID:     req.MemberID,
		CustomerID:   req.CustomerID,
		Title:        req.Title,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       models.ContractDraft,
		Notes:        req.Notes,
	}
	items := make([]models.ContractItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID == "" {
			respondError(w, http.StatusBadRequest, "contract item product_id is required")
			return
		}
		if err := validateQuantity(item.Quantity); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validatePrice(item.UnitPrice); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		items = append(items, models.ContractItem{
			ID:         uuid.NewString(),
			ContractID: contract.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.Quantity.Mul(item.UnitPrice),
		})
	}
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.contracts.Create(r.Context(), tx, contract); err != nil {
			return err
		}
		return h.contracts.InsertItems(r.Context(), tx, items)
	})
	if err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "contract code already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create contract")
		return
	}
	created, err := h.contracts.GetByID(r.Context(), contract.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load contract")
		return
	}
	created.Items = items
	respondJSON(w, http.StatusCreated, created)
}

var contractTransitions = map[string][]string{
	models.ContractDraft:  {models.ContractActive, models.ContractCancelled},
	models.ContractActive: {models.ContractCompleted, models.ContractCancelled},
}

func allowedTransition(from, to string) bool {
	for _, next := range contractTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (h *Handler) UpdateContractStatus(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "id")
	var req contractStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !models.ValidContractStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "invalid status")
		return
	}
	contract, err := h.contracts.GetByID(r.Context(), contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "contract not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load contract")
		return
	}
	if !allowedTransition(contract.Status, req.Status) {
		respondError(w, http.StatusBadRequest, "invalid status transition")
		return
	}
	if err := h.contracts.UpdateStatus(r.Context(), h.db, contractID, req.Status); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update contract")
		return
	}
	updated, err := h.contracts.GetByID(r.Context(), contractID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load contract")
		return
	}
	h.broadcastStats(r.Context())
	respondJSON(w, http.StatusOK, updated)
}
