package schedule

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

// Handler maps work schedule endpoints to service calls.
type Handler struct {
	logger   *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service, validate: httpx.NewValidator()}
}

// MountRoutes registers schedule routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/confirm", h.confirm)
}

type createRequest struct {
	PartnerID string `json:"partner_id" validate:"required"`
	ShiftID   string `json:"shift_id" validate:"required"`
	JobTypeID string `json:"job_type_id" validate:"required"`
	SeasonID  string `json:"season_id"`
	WorkDate  string `json:"work_date" validate:"required"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

type updateRequest struct {
	PartnerID *string `json:"partner_id"`
	ShiftID   *string `json:"shift_id"`
	JobTypeID *string `json:"job_type_id"`
	SeasonID  *string `json:"season_id"`
	WorkDate  *string `json:"work_date"`
	Status    *string `json:"status"`
	Note      *string `json:"note"`
}

type listResponse struct {
	Schedules  []WorkSchedule    `json:"schedules"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		Status:    q.Get("status"),
		PartnerID: q.Get("partner_id"),
		SeasonID:  q.Get("season_id"),
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

	schedules, page, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list schedules failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if schedules == nil {
		schedules = []WorkSchedule{}
	}
	httpx.OK(w, listResponse{Schedules: schedules, Pagination: page})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ws, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, ws)
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

	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "work_date must be in YYYY-MM-DD format")
		return
	}

	created, err := h.service.Create(r.Context(), WorkSchedule{
		PartnerID: req.PartnerID,
		ShiftID:   req.ShiftID,
		JobTypeID: req.JobTypeID,
		SeasonID:  shared.OptionalRef(req.SeasonID),
		WorkDate:  workDate,
		Status:    req.Status,
		Note:      req.Note,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Work schedule created successfully")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := Patch{
		PartnerID: req.PartnerID,
		ShiftID:   req.ShiftID,
		JobTypeID: req.JobTypeID,
		SeasonID:  req.SeasonID,
		Status:    req.Status,
		Note:      req.Note,
	}
	if req.WorkDate != nil {
		workDate, err := time.Parse("2006-01-02", *req.WorkDate)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "work_date must be in YYYY-MM-DD format")
			return
		}
		patch.WorkDate = &workDate
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
	httpx.Message(w, "Work schedule deleted successfully")
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	ws, err := h.service.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, ws)
}
