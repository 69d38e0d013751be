package importcsv

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	"github.com/MrJamesThe3rd/folio/internal/http/render"
	"github.com/MrJamesThe3rd/folio/internal/importer"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type lineResponse struct {
	Row           int              `json:"row"`
	Instrument    string           `json:"instrument"`
	Symbol        string           `json:"symbol"`
	Type          transaction.Type `json:"type"`
	Quantity      int64            `json:"quantity"`
	Price         decimal.Decimal  `json:"price"`
	Date          string           `json:"date"`
	Ref           string           `json:"ref,omitempty"`
	Status        importer.Status  `json:"status"`
	TransactionID *uuid.UUID       `json:"transaction_id,omitempty"`
	Error         string           `json:"error,omitempty"`
}

type importResponse struct {
	DryRun     bool           `json:"dry_run"`
	Imported   int            `json:"imported"`
	Duplicates int            `json:"duplicates"`
	Failed     int            `json:"failed"`
	Lines      []lineResponse `json:"lines"`
}

// importCSV takes a multipart "file" field. With ?dry_run=true the trades are
// only parsed and resolved.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		render.Error(w, r, fmt.Errorf("%w: failed to parse form: %v", render.ErrBadRequest, err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		render.Error(w, r, fmt.Errorf("%w: file field is required", render.ErrBadRequest))
		return
	}
	defer file.Close()

	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))
	userID := auth.UserID(r.Context())

	var res *importer.Result
	if dryRun {
		res, err = h.svc.Preview(r.Context(), userID, file)
	} else {
		res, err = h.svc.Import(r.Context(), userID, file)
	}

	if err != nil {
		render.Error(w, r, err)
		return
	}

	status := http.StatusOK
	if !dryRun && res.Count(importer.StatusImported) > 0 {
		status = http.StatusCreated
	}

	render.JSON(w, status, toResponse(res, dryRun))
}

func toResponse(res *importer.Result, dryRun bool) importResponse {
	resp := importResponse{
		DryRun:     dryRun,
		Imported:   res.Count(importer.StatusImported),
		Duplicates: res.Count(importer.StatusDuplicate),
		Failed:     res.Count(importer.StatusFailed),
		Lines:      make([]lineResponse, len(res.Lines)),
	}

	for i, l := range res.Lines {
		lr := lineResponse{
			Row:        l.Trade.Row,
			Instrument: l.Trade.Instrument,
			Symbol:     l.Symbol,
			Type:       l.Trade.Type,
			Quantity:   l.Trade.Quantity,
			Price:      l.Trade.Price,
			Date:       calendar.Format(l.Trade.Date),
			Ref:        l.Trade.Ref,
			Status:     l.Status,
		}

		if l.Transaction != nil {
			lr.TransactionID = &l.Transaction.ID
		}

		if l.Err != nil {
			lr.Error = l.Err.Error()
		}

		resp.Lines[i] = lr
	}

	return resp
}
