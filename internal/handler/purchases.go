package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/service"
)

type createPurchaseRequest struct {
	Description  string          `json:"description"`
	PurchaseDate billing.Date    `json:"purchase_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Installments int             `json:"installments"`
}

// CreatePurchase books a purchase on a card
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	cardID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req := createPurchaseRequest{Installments: 1}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	purchase, err := h.svc.CreatePurchase(r.Context(), uid, cardID, service.CreatePurchaseParams{
		Description:      req.Description,
		PurchaseDate:     req.PurchaseDate,
		TotalAmount:      req.TotalAmount,
		InstallmentCount: req.Installments,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, purchase)
}

// ListPurchases returns the purchases of a card
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	cardID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	purchases, err := h.svc.ListPurchases(r.Context(), uid, cardID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, purchases)
}

// DeletePurchase removes a purchase while its invoices are open
func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.DeletePurchase(r.Context(), uid, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
