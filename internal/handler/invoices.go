package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
)

const defaultProjectionMonths = 6

// ListInvoices returns the invoices of a card
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
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

	invoices, err := h.svc.ListInvoices(r.Context(), uid, cardID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice returns an invoice with its items
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
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

	inv, err := h.svc.GetInvoice(r.Context(), uid, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CloseInvoice closes an open invoice
func (h *Handler) CloseInvoice(w http.ResponseWriter, r *http.Request) {
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

	inv, err := h.svc.CloseInvoice(r.Context(), uid, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type payInvoiceRequest struct {
	AccountID int64 `json:"account_id"`
}

type payInvoiceResponse struct {
	Invoice     *models.Invoice     `json:"invoice"`
	Transaction *models.Transaction `json:"transaction"`
}

// PayInvoice settles a closed invoice. The body is optional; without an
// account_id the card payment account is debited.
func (h *Handler) PayInvoice(w http.ResponseWriter, r *http.Request) {
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
	var req payInvoiceRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, err)
		return
	}

	inv, txn, err := h.svc.PayInvoice(r.Context(), uid, id, req.AccountID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payInvoiceResponse{Invoice: inv, Transaction: txn})
}

// CardUsage reports the committed and available limit of a card
func (h *Handler) CardUsage(w http.ResponseWriter, r *http.Request) {
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
	today, err := queryDate(r, "today", h.svc.Today())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	usage, err := h.svc.CardUsage(r.Context(), uid, cardID, today)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

// ProjectInvoices returns the expected totals of the next invoices
func (h *Handler) ProjectInvoices(w http.ResponseWriter, r *http.Request) {
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
	today, err := queryDate(r, "today", h.svc.Today())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	months, err := queryInt(r, "months", defaultProjectionMonths)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	projection, err := h.svc.ProjectInvoices(r.Context(), uid, cardID, today, months)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projection)
}
