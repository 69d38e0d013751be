// Package render writes JSON responses and maps domain errors to statuses.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/importer/tradebook"
	"github.com/MrJamesThe3rd/folio/internal/ledger"
	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/performance"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	"github.com/MrJamesThe3rd/folio/internal/symbolmap"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

var ErrBadRequest = errors.New("bad request")

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type oversellDetails struct {
	HoldingID     string `json:"holding_id"`
	TransactionID string `json:"transaction_id"`
	Date          string `json:"date"`
	Requested     int64  `json:"requested"`
	Available     int64  `json:"available"`
}

type balanceDetails struct {
	EntryID int64  `json:"entry_id,omitempty"`
	Date    string `json:"date"`
	Balance string `json:"balance"`
}

type validationDetails struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Field         string `json:"field"`
	Reason        string `json:"reason"`
}

type rowDetails struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Error writes err with the status its kind maps to. Unknown errors are
// logged and reported as a bare 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := classify(err)

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)

		resp = errorResponse{Error: "internal error", Code: "internal"}
	}

	JSON(w, status, resp)
}

func classify(err error) (int, errorResponse) {
	resp := errorResponse{Error: err.Error()}

	var (
		oversell   *lot.OversellError
		balance    *ledger.InsufficientBalanceError
		validation *transaction.ValidationError
		row        *tradebook.RowError
	)

	switch {
	case errors.As(err, &oversell):
		resp.Code = "oversell"
		resp.Details = oversellDetails{
			HoldingID:     oversell.HoldingID.String(),
			TransactionID: oversell.TransactionID.String(),
			Date:          calendar.Format(oversell.Date),
			Requested:     oversell.Requested,
			Available:     oversell.Available,
		}

		return http.StatusConflict, resp

	case errors.As(err, &balance):
		resp.Code = "insufficient_balance"
		resp.Details = balanceDetails{
			EntryID: balance.EntryID,
			Date:    calendar.Format(balance.Date),
			Balance: balance.Balance.StringFixed(2),
		}

		return http.StatusConflict, resp

	case errors.As(err, &validation):
		d := validationDetails{Field: validation.Field, Reason: validation.Reason}
		if validation.TransactionID != uuid.Nil {
			d.TransactionID = validation.TransactionID.String()
		}

		resp.Code = "invalid"
		resp.Details = d

		return http.StatusBadRequest, resp

	case errors.As(err, &row):
		resp.Code = "invalid_row"
		resp.Details = rowDetails{Row: row.Row, Column: row.Column, Value: row.Value}

		return http.StatusBadRequest, resp

	case errors.Is(err, ErrBadRequest),
		errors.Is(err, transaction.ErrInvalid),
		errors.Is(err, holding.ErrInvalid),
		errors.Is(err, ledger.ErrInvalid),
		errors.Is(err, pricing.ErrInvalid),
		errors.Is(err, performance.ErrInvalidWindow),
		errors.Is(err, portfolio.ErrUnknownOp),
		errors.Is(err, symbolmap.ErrInvalid),
		errors.Is(err, tradebook.ErrUnknownFormat):
		resp.Code = "invalid"
		return http.StatusBadRequest, resp

	case errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, holding.ErrNotFound),
		errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, pricing.ErrNotFound):
		resp.Code = "not_found"
		return http.StatusNotFound, resp

	case errors.Is(err, holding.ErrDuplicate):
		resp.Code = "duplicate"
		return http.StatusConflict, resp

	case errors.Is(err, ledger.ErrNotExternal):
		resp.Code = "not_external"
		return http.StatusConflict, resp
	}

	return http.StatusInternalServerError, resp
}

// DateParam reads a YYYY-MM-DD query parameter, returning def when absent.
func DateParam(r *http.Request, name string, def time.Time) (time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}

	t, err := calendar.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrBadRequest, name)
	}

	return t, nil
}

// IntParam reads an integer query parameter, returning def when absent.
func IntParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}

	return n, nil
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", ErrBadRequest, err)
	}

	return nil
}
