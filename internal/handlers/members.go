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
)

type memberCreateRequest struct {
	UserID       string  `json:"user_id"`
	MemberCode   string  `json:"member_code"`
	JoinDate     string  `json:"join_date"`
	ShareCapital int64   `json:"share_capital"`
	Notes        *string `json:"notes"`
}

type memberUpdateRequest struct {
	UserID       *string `json:"user_id"`
	MemberCode   *string `json:"member_code"`
	JoinDate     *string `json:"join_date"`
	ShareCapital *int64  `json:"share_capital"`
	IsActive     *bool   `json:"is_active"`
	Notes        *string `json:"notes"`
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load members")
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	respondJSON(w, http.StatusOK, members)
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "member not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load member")
		return
	}
	respondJSON(w, http.StatusOK, member)
}

func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if err := validator.ValidateMemberCode(req.MemberCode); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateDate(req.JoinDate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ShareCapital < 0 {
		respondError(w, http.StatusBadRequest, "share_capital must not be negative")
		return
	}
	member := models.Member{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		MemberCode:   req.MemberCode,
		JoinDate:     req.JoinDate,
		ShareCapital: req.ShareCapital,
		IsActive:     true,
		Notes:        req.Notes,
	}
	if err := h.members.Create(r.Context(), h.db, member); err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "member code already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create member")
		return
	}
	created, err := h.members.GetByID(r.Context(), member.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load member")
		return
	}
	h.broadcastStats(r.Context())
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")
	var req memberUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	member, err := h.members.GetByID(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "member not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load member")
		return
	}
	if req.UserID != nil {
		member.UserID = *req.UserID
	}
	if req.MemberCode != nil {
		member.MemberCode = *req.MemberCode
	}
	if req.JoinDate != nil {
		member.JoinDate = *req.JoinDate
	}
	if req.ShareCapital != nil {
		member.ShareCapital = *req.ShareCapital
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		member.Notes = req.Notes
	}
	if err := validator.ValidateMemberCode(member.MemberCode); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateDate(member.JoinDate); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if member.ShareCapital < 0 {
		respondError(w, http.StatusBadRequest, "share_capital must not be negative")
		return
	}
	if err := h.members.Update(r.Context(), h.db, member); err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusConflict, "member code already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to update member")
		return
	}
	updated, err := h.members.GetByID(r.Context(), memberID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load member")
		return
	}
	h.broadcastStats(r.Context())
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Delete(r.Context(), h.db, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "member not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to delete member")
		return
	}
	h.broadcastStats(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Member deleted successfully"})
}
