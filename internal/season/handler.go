package season

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

// Handler maps season endpoints to service calls.
type Handler struct {
	logger   *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service, validate: httpx.NewValidator()}
}

// MountRoutes registers season routes. Literal segments go before /{id} so
// they are never captured as identifiers.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/next-code", h.nextCode)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/close", h.close)
}

type createRequest struct {
	SeasonName string `json:"season_name" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status" validate:"omitempty,oneof=ACTIVE PLANNED COMPLETED"`
}

type updateRequest struct {
	SeasonName *string `json:"season_name"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Status     *string `json:"status" validate:"omitempty,oneof=ACTIVE PLANNED COMPLETED"`
}

type nextCodeResponse struct {
	NextCode string `json:"next_code"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := Status(raw)
		filters.Status = &st
	}

	seasons, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list seasons failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if seasons == nil {
		seasons = []Season{}
	}
	httpx.OK(w, seasons)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, s)
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

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
		return
	}
	endDate, err := shared.OptionalDate(req.EndDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
		return
	}

	created, err := h.service.Create(r.Context(), Season{
		Name:      req.SeasonName,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    Status(req.Status),
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Season created successfully")
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

	patch := Patch{Name: req.SeasonName}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return
		}
		patch.StartDate = &startDate
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			// A blank end_date clears the column; the zero time is the
			// clear marker the repository binds as NULL.
			patch.EndDate = &time.Time{}
		} else {
			endDate, err := shared.OptionalDate(*req.EndDate)
			if err != nil {
				httpx.Fail(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
				return
			}
			patch.EndDate = endDate
		}
	}
	if req.Status != nil {
		st := Status(*req.Status)
		patch.Status = &st
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
	httpx.Message(w, "Season deleted successfully")
}

func (h *Handler) nextCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.service.NextCode(r.Context())
	if err != nil {
		h.logger.Error("season next code failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, nextCodeResponse{NextCode: code})
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	closed, err := h.service.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, closed)
}
