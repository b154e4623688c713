package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/integrations/keyrate"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/middleware"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/models"
	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/service"
)

// KeyRateProvider returns the reference rate used for late interest
type KeyRateProvider interface {
	KeyRate(ctx context.Context, today billing.Date) (*keyrate.Rate, error)
}

type Handler struct {
	svc   *service.Service
	rates KeyRateProvider
	log   *logrus.Logger
}

func NewHandler(svc *service.Service, rates KeyRateProvider, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, rates: rates, log: log}
}

// Routes builds the router. auth guards everything except health and the
// competência lookup.
func (h *Handler) Routes(auth mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(h.log))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/competencia", h.ResolveCompetencia).Methods(http.MethodGet)

	// Protected routes
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth)
	api.HandleFunc("/installments/preview", h.PreviewInstallments).Methods(http.MethodPost)
	api.HandleFunc("/accounts", h.CreateAccount).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id:[0-9]+}", h.GetAccount).Methods(http.MethodGet)
	api.HandleFunc("/cards", h.CreateCard).Methods(http.MethodPost)
	api.HandleFunc("/cards", h.ListCards).Methods(http.MethodGet)
	api.HandleFunc("/cards/{id:[0-9]+}", h.GetCard).Methods(http.MethodGet)
	api.HandleFunc("/cards/{id:[0-9]+}/cycle", h.UpdateCardCycle).Methods(http.MethodPatch)
	api.HandleFunc("/cards/{id:[0-9]+}/purchases", h.CreatePurchase).Methods(http.MethodPost)
	api.HandleFunc("/cards/{id:[0-9]+}/purchases", h.ListPurchases).Methods(http.MethodGet)
	api.HandleFunc("/purchases/{id:[0-9]+}", h.DeletePurchase).Methods(http.MethodDelete)
	api.HandleFunc("/cards/{id:[0-9]+}/invoices", h.ListInvoices).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id:[0-9]+}", h.GetInvoice).Methods(http.MethodGet)
	api.HandleFunc("/invoices/{id:[0-9]+}/close", h.CloseInvoice).Methods(http.MethodPost)
	api.HandleFunc("/invoices/{id:[0-9]+}/pay", h.PayInvoice).Methods(http.MethodPost)
	api.HandleFunc("/cards/{id:[0-9]+}/usage", h.CardUsage).Methods(http.MethodGet)
	api.HandleFunc("/cards/{id:[0-9]+}/projection", h.ProjectInvoices).Methods(http.MethodGet)
	api.HandleFunc("/key-rate", h.KeyRate).Methods(http.MethodGet)
	return r
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// KeyRate returns the reference rate including the configured margin
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rates.KeyRate(r.Context(), h.svc.Today())
	if err != nil {
		h.log.WithError(err).Error("Failed to get key rate")
		writeErrorMessage(w, http.StatusBadGateway, "key rate unavailable")
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps domain errors to status codes. Unexpected errors are
// logged and answered with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("Request failed")
		writeErrorMessage(w, status, "internal server error")
		return
	}
	writeErrorMessage(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, billing.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvoiceNotOpen),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrLimitExceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func userID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(middleware.UserIDKey).(int64)
	return id, ok
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalid("invalid id %q", raw)
	}
	return id, nil
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %w", billing.ErrInvalidInput, err)
	}
	return nil
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(r *http.Request, key string, fallback billing.Date) (billing.Date, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return billing.ParseDate(raw)
}

// queryInt parses an optional integer query parameter
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalid("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}
