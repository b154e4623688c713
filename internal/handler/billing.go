package handler

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

func errInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", billing.ErrInvalidInput, fmt.Sprintf(format, args...))
}

type competenciaResponse struct {
	Date        billing.Date        `json:"date"`
	ClosingDay  int                 `json:"closing_day"`
	Competencia billing.Competencia `json:"competencia"`
	ClosingDate billing.Date        `json:"closing_date"`
	DueDate     *billing.Date       `json:"due_date,omitempty"`
}

// ResolveCompetencia answers which invoice a purchase made on date falls in
func (h *Handler) ResolveCompetencia(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("date") == "" || query.Get("closing_day") == "" {
		h.writeError(w, r, errInvalid("date and closing_day are required"))
		return
	}
	date, err := billing.ParseDate(query.Get("date"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	closingDay, err := queryInt(r, "closing_day", 0)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	comp, err := billing.ResolveCompetencia(date, closingDay)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := competenciaResponse{
		Date:        date,
		ClosingDay:  closingDay,
		Competencia: comp,
		ClosingDate: comp.Day(closingDay),
	}

	if query.Get("due_day") != "" {
		dueDay, err := queryInt(r, "due_day", 0)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		cycle := billing.Cycle{ClosingDay: closingDay, DueDay: dueDay}
		if err := cycle.Validate(); err != nil {
			h.writeError(w, r, err)
			return
		}
		due := cycle.DueDate(comp)
		resp.DueDate = &due
	}
	writeJSON(w, http.StatusOK, resp)
}

type previewRequest struct {
	ClosingDay   int             `json:"closing_day"`
	DueDay       int             `json:"due_day"`
	PurchaseDate billing.Date    `json:"purchase_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Installments int             `json:"installments"`
}

// PreviewInstallments shows the schedule of a purchase before it is made
func (h *Handler) PreviewInstallments(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.DueDay == 0 {
		req.DueDay = req.ClosingDay
	}

	cycle := billing.Cycle{ClosingDay: req.ClosingDay, DueDay: req.DueDay}
	preview, err := h.svc.PreviewInstallments(cycle, req.PurchaseDate, req.TotalAmount, req.Installments)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}
