package transaction

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	"github.com/MrJamesThe3rd/folio/internal/http/render"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

type Handler struct {
	transactions *transaction.Service
	holdings     *holding.Service
	portfolio    *portfolio.Service
}

func NewHandler(transactions *transaction.Service, holdings *holding.Service, portfolio *portfolio.Service) *Handler {
	return &Handler{
		transactions: transactions,
		holdings:     holdings,
		portfolio:    portfolio,
	}
}

// Routes serves /transactions.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// HoldingRoutes serves /holdings/{holdingID}/transactions.
func (h *Handler) HoldingRoutes(r chi.Router) {
	r.Get("/", h.listForHolding)
	r.Post("/", h.create)
}

type createTransactionRequest struct {
	Type     transaction.Type `json:"type"`
	Quantity int64            `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
	Date     string           `json:"date"`
	Notes    string           `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	holdingID, err := uuid.Parse(chi.URLParam(r, "holdingID"))
	if err != nil {
		render.Error(w, r, fmt.Errorf("%w: invalid holding id", render.ErrBadRequest))
		return
	}

	var req createTransactionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	date, err := calendar.Parse(req.Date)
	if err != nil {
		render.Error(w, r, &transaction.ValidationError{Field: "date", Reason: err.Error()})
		return
	}

	tx := &transaction.Transaction{
		HoldingID: holdingID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Date:      date,
		Notes:     req.Notes,
	}

	sum, err := h.portfolio.ApplyTransaction(r.Context(), portfolio.Change{Op: portfolio.OpCreate, UserID: userID, Transaction: tx})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toChangeResponse(tx, sum))
}

func (h *Handler) listForHolding(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	holdingID, err := uuid.Parse(chi.URLParam(r, "holdingID"))
	if err != nil {
		render.Error(w, r, fmt.Errorf("%w: invalid holding id", render.ErrBadRequest))
		return
	}

	if _, err := h.holdings.GetOwned(r.Context(), userID, holdingID); err != nil {
		render.Error(w, r, err)
		return
	}

	txs, err := h.transactions.ListByHolding(r.Context(), holdingID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	filter := transaction.ListFilter{UserID: &userID}

	if s := r.URL.Query().Get("holding_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			render.Error(w, r, fmt.Errorf("%w: invalid holding_id", render.ErrBadRequest))
			return
		}

		filter.HoldingID = &id
	}

	for name, dst := range map[string]**time.Time{"start_date": &filter.StartDate, "end_date": &filter.EndDate} {
		t, err := render.DateParam(r, name, time.Time{})
		if err != nil {
			render.Error(w, r, err)
			return
		}

		if !t.IsZero() {
			*dst = &t
		}
	}

	txs, err := h.transactions.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.owned(r.Context(), r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	Type     *transaction.Type `json:"type,omitempty"`
	Quantity *int64            `json:"quantity,omitempty"`
	Price    *decimal.Decimal  `json:"price,omitempty"`
	Date     *string           `json:"date,omitempty"`
	Notes    *string           `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	tx, err := h.owned(r.Context(), r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var req updateTransactionRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	if req.Type != nil {
		tx.Type = *req.Type
	}

	if req.Quantity != nil {
		tx.Quantity = *req.Quantity
	}

	if req.Price != nil {
		tx.Price = *req.Price
	}

	if req.Date != nil {
		date, err := calendar.Parse(*req.Date)
		if err != nil {
			render.Error(w, r, &transaction.ValidationError{TransactionID: tx.ID, Field: "date", Reason: err.Error()})
			return
		}

		tx.Date = date
	}

	if req.Notes != nil {
		tx.Notes = *req.Notes
	}

	sum, err := h.portfolio.ApplyTransaction(r.Context(), portfolio.Change{
		Op:          portfolio.OpUpdate,
		UserID:      auth.UserID(r.Context()),
		Transaction: tx,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toChangeResponse(tx, sum))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, fmt.Errorf("%w: invalid id", render.ErrBadRequest))
		return
	}

	_, err = h.portfolio.ApplyTransaction(r.Context(), portfolio.Change{
		Op:          portfolio.OpDelete,
		UserID:      auth.UserID(r.Context()),
		Transaction: &transaction.Transaction{ID: id},
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// owned loads the {id} transaction, hiding transactions of other users.
func (h *Handler) owned(ctx context.Context, r *http.Request) (*transaction.Transaction, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id", render.ErrBadRequest)
	}

	tx, err := h.transactions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := h.holdings.GetOwned(ctx, auth.UserID(ctx), tx.HoldingID); err != nil {
		if errors.Is(err, holding.ErrNotFound) {
			return nil, transaction.ErrNotFound
		}

		return nil, err
	}

	return tx, nil
}
