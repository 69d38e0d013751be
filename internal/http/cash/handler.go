package cash

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	"github.com/MrJamesThe3rd/folio/internal/http/render"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/performance"
)

type Handler struct {
	ledger      *ledger.Service
	performance *performance.Service
}

func NewHandler(ledger *ledger.Service, performance *performance.Service) *Handler {
	return &Handler{ledger: ledger, performance: performance}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/balance", h.balance)
	r.Get("/statement", h.statement)
	r.Get("/summary", h.summary)
	r.Post("/flows", h.recordFlow)
	r.Get("/flows/{id}", h.getFlow)
	r.Delete("/flows/{id}", h.deleteFlow)
}

type entryResponse struct {
	ID            int64           `json:"id"`
	Type          ledger.Type     `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	TransactionID *uuid.UUID      `json:"transaction_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type lineResponse struct {
	entryResponse
	Balance decimal.Decimal `json:"balance"`
}

func toEntry(e *ledger.Entry) entryResponse {
	return entryResponse{
		ID:            e.ID,
		Type:          e.Type,
		Amount:        e.Amount,
		Date:          calendar.Format(e.Date),
		TransactionID: e.TransactionID,
		Note:          e.Note,
		CreatedAt:     e.CreatedAt,
	}
}

type balanceResponse struct {
	AsOf    string          `json:"as_of"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	asOf, err := render.DateParam(r, "as_of", calendar.Today())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	bal, err := h.ledger.BalanceAsOf(r.Context(), auth.UserID(r.Context()), asOf)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, balanceResponse{AsOf: calendar.Format(asOf), Balance: bal})
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	from, err := render.DateParam(r, "from", time.Time{})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	to, err := render.DateParam(r, "to", time.Time{})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	lines, err := h.ledger.Statement(r.Context(), auth.UserID(r.Context()), from, to)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]lineResponse, len(lines))
	for i, l := range lines {
		resp[i] = lineResponse{entryResponse: toEntry(l.Entry), Balance: l.Balance}
	}

	render.JSON(w, http.StatusOK, resp)
}

type summaryResponse struct {
	AsOf         string          `json:"as_of"`
	Balance      decimal.Decimal `json:"balance"`
	NetDeposited decimal.Decimal `json:"net_deposited"`
	Deployed     decimal.Decimal `json:"deployed"`
	Realized     decimal.Decimal `json:"realized"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	asOf, err := render.DateParam(r, "as_of", calendar.Today())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	cs, err := h.performance.CashSummary(r.Context(), auth.UserID(r.Context()), asOf)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, summaryResponse{
		AsOf:         calendar.Format(cs.AsOf),
		Balance:      cs.Balance,
		NetDeposited: cs.NetDeposited,
		Deployed:     cs.Deployed,
		Realized:     cs.Realized,
	})
}

type flowRequest struct {
	Type   ledger.Type     `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Note   string          `json:"note"`
}

func (h *Handler) recordFlow(w http.ResponseWriter, r *http.Request) {
	var req flowRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	date, err := calendar.Parse(req.Date)
	if err != nil {
		render.Error(w, r, fmt.Errorf("%w: %v", ledger.ErrInvalid, err))
		return
	}

	e, err := h.ledger.RecordExternalFlow(r.Context(), ledger.FlowParams{
		UserID: auth.UserID(r.Context()),
		Type:   req.Type,
		Amount: req.Amount,
		Date:   date,
		Note:   req.Note,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toEntry(e))
}

func (h *Handler) getFlow(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	e, err := h.ledger.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toEntry(e))
}

func (h *Handler) deleteFlow(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.ledger.DeleteExternalFlow(r.Context(), auth.UserID(r.Context()), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func entryID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid entry id", render.ErrBadRequest)
	}

	return id, nil
}
