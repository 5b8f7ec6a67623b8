package partner

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

// Handler maps partner endpoints to service calls.
type Handler struct {
	logger   *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service, validate: httpx.NewValidator()}
}

// MountRoutes registers partner routes. Literal segments go before /{id} so
// they are never captured as identifiers.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/balance", h.balance)
}

type createRequest struct {
	PartnerCode string `json:"partner_code" validate:"required"`
	PartnerName string `json:"partner_name" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=SUPPLIER BUYER WORKER"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Note        string `json:"note"`
}

type updateRequest struct {
	PartnerCode *string `json:"partner_code"`
	PartnerName *string `json:"partner_name"`
	Type        *string `json:"type" validate:"omitempty,oneof=SUPPLIER BUYER WORKER"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Note        *string `json:"note"`
}

type balanceResponse struct {
	ID      string  `json:"id"`
	Balance float64 `json:"balance"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{Search: r.URL.Query().Get("search")}
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := Type(raw)
		filters.Type = &t
	}

	partners, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list partners failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if partners == nil {
		partners = []Partner{}
	}
	httpx.OK(w, partners)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, p)
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

	created, err := h.service.Create(r.Context(), Partner{
		Code:    req.PartnerCode,
		Name:    req.PartnerName,
		Type:    Type(req.Type),
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Note:    req.Note,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Partner created successfully")
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
		Code:    req.PartnerCode,
		Name:    req.PartnerName,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Note:    req.Note,
	}
	if req.Type != nil {
		t := Type(*req.Type)
		patch.Type = &t
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
	httpx.Message(w, "Partner deleted successfully")
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	balance, err := h.service.Balance(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, balanceResponse{ID: id, Balance: balance})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("partner stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}
