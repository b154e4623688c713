package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/service"
)

type createAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createAccountRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Currency == "" {
		req.Currency = "BRL"
	}

	account, err := h.svc.CreateAccount(r.Context(), uid, req.Name, req.Currency)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// GetAccount returns one of the user's accounts
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
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

	account, err := h.svc.GetAccount(r.Context(), uid, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type createCardRequest struct {
	Name             string          `json:"name"`
	ClosingDay       int             `json:"closing_day"`
	DueDay           int             `json:"due_day"`
	Limit            decimal.Decimal `json:"limit"`
	PaymentAccountID int64           `json:"payment_account_id"`
	NotifyEmail      string          `json:"notify_email"`
}

// CreateCard handles card creation
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createCardRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	card, err := h.svc.CreateCard(r.Context(), uid, service.CreateCardParams{
		Name:             req.Name,
		ClosingDay:       req.ClosingDay,
		DueDay:           req.DueDay,
		Limit:            req.Limit,
		PaymentAccountID: req.PaymentAccountID,
		NotifyEmail:      req.NotifyEmail,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// ListCards returns the user's cards
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	cards, err := h.svc.ListCards(r.Context(), uid)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

// GetCard returns one of the user's cards
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
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

	card, err := h.svc.GetCard(r.Context(), uid, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// UpdateCardCycle changes the closing and due day of a card
func (h *Handler) UpdateCardCycle(w http.ResponseWriter, r *http.Request) {
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
	var cycle billing.Cycle
	if err := decode(r, &cycle); err != nil {
		h.writeError(w, r, err)
		return
	}

	card, err := h.svc.UpdateCardCycle(r.Context(), uid, id, cycle)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}
