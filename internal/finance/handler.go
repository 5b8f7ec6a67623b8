package finance

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Handler maps transaction endpoints to service calls.
type Handler struct {
	logger   *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service, validate: httpx.NewValidator()}
}

// MountRoutes registers transaction routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createRequest struct {
	PartnerID       string  `json:"partner_id"`
	Type            string  `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transaction_date" validate:"required"`
}

type updateRequest struct {
	PartnerID       *string  `json:"partner_id"`
	Type            *string  `json:"type" validate:"omitempty,oneof=INCOME EXPENSE"`
	Amount          *float64 `json:"amount"`
	Description     *string  `json:"description"`
	TransactionDate *string  `json:"transaction_date"`
}

type listResponse struct {
	Transactions []Transaction     `json:"transactions"`
	Pagination   shared.Pagination `json:"pagination"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{PartnerID: q.Get("partner_id")}
	if raw := q.Get("type"); raw != "" {
		t := Type(raw)
		filters.Type = &t
	}

	from, err := shared.OptionalDate(q.Get("from"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "from must be in YYYY-MM-DD format")
		return
	}
	to, err := shared.OptionalDate(q.Get("to"))
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "to must be in YYYY-MM-DD format")
		return
	}
	filters.From = from
	filters.To = to
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.PerPage, _ = strconv.Atoi(q.Get("per_page"))

	transactions, page, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list transactions failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if transactions == nil {
		transactions = []Transaction{}
	}
	httpx.OK(w, listResponse{Transactions: transactions, Pagination: page})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, t)
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

	date, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "transaction_date must be in YYYY-MM-DD format")
		return
	}

	created, err := h.service.Create(r.Context(), Transaction{
		PartnerID:       shared.OptionalRef(req.PartnerID),
		Type:            Type(req.Type),
		Amount:          req.Amount,
		Description:     req.Description,
		TransactionDate: date,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Transaction created successfully")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}

	patch := Patch{
		PartnerID:   req.PartnerID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Type != nil {
		t := Type(*req.Type)
		patch.Type = &t
	}
	if req.TransactionDate != nil {
		date, err := time.Parse("2006-01-02", *req.TransactionDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "transaction_date must be in YYYY-MM-DD format")
			return
		}
		patch.TransactionDate = &date
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
	httpx.Message(w, "Transaction deleted successfully")
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("transaction stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}
