package masterdata

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmgate-erp/farmgate-erp/internal/platform/httpx"
)

// Handler manages the lookup entity endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the lookup routes; mounted at the API root.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/job-types", func(r chi.Router) {
		r.Get("/", h.listJobTypes)
		r.Post("/", h.createJobType)
		r.Get("/{id}", h.getJobType)
		r.Put("/{id}", h.updateJobType)
		r.Delete("/{id}", h.deleteJobType)
	})
	r.Route("/work-shifts", func(r chi.Router) {
		r.Get("/", h.listWorkShifts)
		r.Post("/", h.createWorkShift)
		r.Get("/{id}", h.getWorkShift)
		r.Put("/{id}", h.updateWorkShift)
		r.Delete("/{id}", h.deleteWorkShift)
	})
	r.Route("/warehouse-types", func(r chi.Router) {
		r.Get("/", h.listWarehouseTypes)
		r.Post("/", h.createWarehouseType)
		r.Get("/{id}", h.getWarehouseType)
		r.Put("/{id}", h.updateWarehouseType)
		r.Delete("/{id}", h.deleteWarehouseType)
	})
}

// Job type handlers

type jobTypeRequest struct {
	JobName     *string `json:"job_name"`
	Description *string `json:"description"`
}

func (h *Handler) listJobTypes(w http.ResponseWriter, r *http.Request) {
	jobTypes, err := h.service.ListJobTypes(r.Context())
	if err != nil {
		h.logger.Error("list job types failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if jobTypes == nil {
		jobTypes = []JobType{}
	}
	httpx.OK(w, jobTypes)
}

func (h *Handler) getJobType(w http.ResponseWriter, r *http.Request) {
	jt, err := h.service.GetJobType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, jt)
}

func (h *Handler) createJobType(w http.ResponseWriter, r *http.Request) {
	var req jobTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	jt := JobType{}
	if req.JobName != nil {
		jt.Name = *req.JobName
	}
	if req.Description != nil {
		jt.Description = *req.Description
	}
	created, err := h.service.CreateJobType(r.Context(), jt)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Job type created successfully")
}

func (h *Handler) updateJobType(w http.ResponseWriter, r *http.Request) {
	var req jobTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.service.UpdateJobType(r.Context(), chi.URLParam(r, "id"), JobTypePatch{
		Name:        req.JobName,
		Description: req.Description,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, updated)
}

func (h *Handler) deleteJobType(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteJobType(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Job type deleted successfully")
}

// Work shift handlers

type workShiftRequest struct {
	ShiftName   *string `json:"shift_name"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Description *string `json:"description"`
}

func (h *Handler) listWorkShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.service.ListWorkShifts(r.Context())
	if err != nil {
		h.logger.Error("list work shifts failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if shifts == nil {
		shifts = []WorkShift{}
	}
	httpx.OK(w, shifts)
}

func (h *Handler) getWorkShift(w http.ResponseWriter, r *http.Request) {
	ws, err := h.service.GetWorkShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, ws)
}

func (h *Handler) createWorkShift(w http.ResponseWriter, r *http.Request) {
	var req workShiftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ws := WorkShift{}
	if req.ShiftName != nil {
		ws.Name = *req.ShiftName
	}
	if req.StartTime != nil {
		ws.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		ws.EndTime = *req.EndTime
	}
	if req.Description != nil {
		ws.Description = *req.Description
	}
	created, err := h.service.CreateWorkShift(r.Context(), ws)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Work shift created successfully")
}

func (h *Handler) updateWorkShift(w http.ResponseWriter, r *http.Request) {
	var req workShiftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.service.UpdateWorkShift(r.Context(), chi.URLParam(r, "id"), WorkShiftPatch{
		Name:        req.ShiftName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, updated)
}

func (h *Handler) deleteWorkShift(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteWorkShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Work shift deleted successfully")
}

// Warehouse type handlers

type warehouseTypeRequest struct {
	TypeName    *string `json:"type_name"`
	Description *string `json:"description"`
}

func (h *Handler) listWarehouseTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListWarehouseTypes(r.Context())
	if err != nil {
		h.logger.Error("list warehouse types failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if types == nil {
		types = []WarehouseType{}
	}
	httpx.OK(w, types)
}

func (h *Handler) getWarehouseType(w http.ResponseWriter, r *http.Request) {
	wt, err := h.service.GetWarehouseType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, wt)
}

func (h *Handler) createWarehouseType(w http.ResponseWriter, r *http.Request) {
	var req warehouseTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	wt := WarehouseType{}
	if req.TypeName != nil {
		wt.Name = *req.TypeName
	}
	if req.Description != nil {
		wt.Description = *req.Description
	}
	created, err := h.service.CreateWarehouseType(r.Context(), wt)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, created, "Warehouse type created successfully")
}

func (h *Handler) updateWarehouseType(w http.ResponseWriter, r *http.Request) {
	var req warehouseTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.service.UpdateWarehouseType(r.Context(), chi.URLParam(r, "id"), WarehouseTypePatch{
		Name:        req.TypeName,
		Description: req.Description,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, updated)
}

func (h *Handler) deleteWarehouseType(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteWarehouseType(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, "Warehouse type deleted successfully")
}
