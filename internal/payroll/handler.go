package payroll

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Handler maps payroll endpoints to service calls.
type Handler struct {
	logger   *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service, validate: httpx.NewValidator()}
}

// MountRoutes registers payroll routes. Literal segments go before /{id} so
// they are never captured as identifiers.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Get("/season/{seasonId}", h.listBySeason)
	r.Get("/partner/{partnerId}", h.listByPartner)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Put("/{id}/status", h.updateStatus)
}

type createRequest struct {
	PartnerID   string  `json:"partner_id" validate:"required"`
	SeasonID    string  `json:"season_id"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
	Bonus       float64 `json:"bonus" validate:"gte=0"`
	Deduction   float64 `json:"deduction" validate:"gte=0"`
	FinalAmount float64 `json:"final_amount" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=DRAFT APPROVED PAID CANCELLED"`
}

type updateRequest struct {
	SeasonID    *string  `json:"season_id"`
	TotalAmount *float64 `json:"total_amount"`
	Bonus       *float64 `json:"bonus"`
	Deduction   *float64 `json:"deduction"`
	FinalAmount *float64 `json:"final_amount"`
}

type statusRequest struct {
	Status      string `json:"status" validate:"required,oneof=DRAFT APPROVED PAID CANCELLED"`
	PaymentDate string `json:"payment_date"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := Status(raw)
		filters.Status = &st
	}

	h.respondList(w, r, filters)
}

func (h *Handler) listBySeason(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, ListFilters{SeasonID: chi.URLParam(r, "seasonId")})
}

func (h *Handler) listByPartner(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, ListFilters{PartnerID: chi.URLParam(r, "partnerId")})
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, filters ListFilters) {
	payrolls, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list payrolls failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if payrolls == nil {
		payrolls = []Payroll{}
	}
	httpx.OK(w, payrolls)
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

	created, err := h.service.Create(r.Context(), Payroll{
		PartnerID:   req.PartnerID,
		SeasonID:    shared.OptionalRef(req.SeasonID),
		TotalAmount: req.TotalAmount,
		Bonus:       req.Bonus,
		Deduction:   req.Deduction,
		FinalAmount: req.FinalAmount,
		Status:      Status(req.Status),
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Payroll created successfully")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), Patch{
		SeasonID:    req.SeasonID,
		TotalAmount: req.TotalAmount,
		Bonus:       req.Bonus,
		Deduction:   req.Deduction,
		FinalAmount: req.FinalAmount,
	})
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
	httpx.Message(w, "Payroll deleted successfully")
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, httpx.ValidationMessage(err))
		return
	}

	paymentDate, err := shared.OptionalDate(req.PaymentDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "payment_date must be in YYYY-MM-DD format")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), Status(req.Status), paymentDate)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, updated)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("payroll stats failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}
