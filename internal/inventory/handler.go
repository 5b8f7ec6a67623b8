package inventory

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Handler maps inventory endpoints to service calls.
type Handler struct {
	logger   *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service, validate: httpx.NewValidator()}
}

// MountRoutes registers inventory routes. Literal segments go before /{id} so
// they are never captured as identifiers.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Get("/low-stock", h.lowStock)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/stock", h.adjustStock)
}

type createRequest struct {
	ItemCode        string  `json:"item_code" validate:"required"`
	ItemName        string  `json:"item_name" validate:"required"`
	CategoryID      string  `json:"category_id"`
	Unit            string  `json:"unit" validate:"required"`
	Quantity        float64 `json:"quantity" validate:"gte=0"`
	MinQuantity     float64 `json:"min_quantity" validate:"gte=0"`
	LastImportPrice float64 `json:"last_import_price"`
	ImportDate      string  `json:"import_date"`
}

type updateRequest struct {
	ItemCode        *string  `json:"item_code"`
	ItemName        *string  `json:"item_name"`
	CategoryID      *string  `json:"category_id"`
	Unit            *string  `json:"unit"`
	MinQuantity     *float64 `json:"min_quantity"`
	LastImportPrice *float64 `json:"last_import_price"`
	ImportDate      *string  `json:"import_date"`
}

type stockRequest struct {
	Change float64 `json:"change"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		CategoryID: r.URL.Query().Get("category_id"),
		Search:     r.URL.Query().Get("search"),
	}
	items, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list inventory failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpx.OK(w, items)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, item)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}

	importDate, err := shared.OptionalDate(req.ImportDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "import_date must be in YYYY-MM-DD format")
		return
	}

	created, err := h.service.Create(r.Context(), Item{
		Code:            req.ItemCode,
		Name:            req.ItemName,
		CategoryID:      shared.OptionalRef(req.CategoryID),
		Unit:            req.Unit,
		Quantity:        req.Quantity,
		MinQuantity:     req.MinQuantity,
		LastImportPrice: req.LastImportPrice,
		ImportDate:      importDate,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Inventory item created successfully")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := Patch{
		Code:            req.ItemCode,
		Name:            req.ItemName,
		CategoryID:      req.CategoryID,
		Unit:            req.Unit,
		MinQuantity:     req.MinQuantity,
		LastImportPrice: req.LastImportPrice,
	}
	if req.ImportDate != nil {
		importDate, err := shared.OptionalDate(*req.ImportDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "import_date must be in YYYY-MM-DD format")
			return
		}
		patch.ImportDate = importDate
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Inventory item deleted successfully")
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "id"), req.Change)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, item)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListLowStock(r.Context())
	if err != nil {
		h.logger.Error("list low stock failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpx.OK(w, items)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("inventory stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}
