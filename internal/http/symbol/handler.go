package symbol

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/folio/internal/http/render"
	"github.com/MrJamesThe3rd/folio/internal/symbolmap"
)

type Handler struct {
	svc *symbolmap.Service
}

func NewHandler(svc *symbolmap.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type mappingDTO struct {
	RawPattern string `json:"raw_pattern"`
	Symbol     string `json:"symbol"`
}

type suggestResponse struct {
	Raw    string `json:"raw"`
	Symbol string `json:"symbol"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw")
	if raw == "" {
		render.Error(w, r, fmt.Errorf("%w: raw query parameter is required", render.ErrBadRequest))
		return
	}

	symbol, err := h.svc.Suggest(r.Context(), raw)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, suggestResponse{Raw: raw, Symbol: symbol})
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req mappingDTO
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.svc.Learn(r.Context(), req.RawPattern, req.Symbol); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]mappingDTO, len(mappings))
	for i, m := range mappings {
		resp[i] = mappingDTO{RawPattern: m.RawPattern, Symbol: m.Symbol}
	}

	render.JSON(w, http.StatusOK, resp)
}
