package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"htxagri/internal/middleware"
	"htxagri/internal/models"
	"htxagri/internal/validator"

	"github.com/google/uuid"
)

type transactionCreateRequest struct {
	TransactionType string `json:"transaction_type"`
	Category        string `json:"category"`
	Amount          string `json:"amount"`
	Description     string `json:"description"`
	TransactionDate string `json:"transaction_date"`
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txType := r.URL.Query().Get("type")
	if txType != "" && !models.ValidTransactionType(txType) {
		respondError(w, http.StatusBadRequest, "invalid transaction type")
		return
	}
	limit := parseQueryInt(r, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := parseQueryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	transactions, err := h.finance.List(r.Context(), txType, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	if transactions == nil {
		transactions = []models.FinancialTransaction{}
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transactionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !models.ValidTransactionType(req.TransactionType) {
		respondError(w, http.StatusBadRequest, "invalid transaction type")
		return
	}
	amount, err := parseAmountVND(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateDate(req.TransactionDate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Category == "" {
		respondError(w, http.StatusBadRequest, "category is required")
		return
	}
	transaction := models.FinancialTransaction{
		ID:              uuid.NewString(),
		TransactionCode: newTransactionCode(),
		UserID:          userID,
		TransactionType: req.TransactionType,
		Category:        req.Category,
		Amount:          amount,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
	}
	if err := h.finance.Create(r.Context(), h.db, transaction); err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "transaction code already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to record transaction")
		return
	}
	h.broadcastStats(r.Context())
	respondJSON(w, http.StatusCreated, transaction)
}

func newTransactionCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	return fmt.Sprintf("FIN-%s", suffix)
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
