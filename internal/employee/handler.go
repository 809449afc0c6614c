package employee

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hrsuite/hr-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, query *ListQuery) (*ListResponse, error)
	Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	Update(ctx context.Context, dto UpdateEmployeeDTO) (*Employee, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, groupBy string) ([]StatsRow, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// ListEmployees handles GET /employees with the filter, range, sort and
// pagination parameters.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	query, err := ParseListQuery(r.URL.Query())
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	resp, err := h.Service.List(r.Context(), query)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// CreateEmployee handles POST /employees.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, emp)
}

// UpdateEmployee handles PUT /employees; the record id travels in the body.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Update(r.Context(), dto)
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

// DeleteEmployee handles DELETE /employees/{id}.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "employee id is required")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EmployeeStats handles GET /employees/stats?groupBy=department.
func (h *Handler) EmployeeStats(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Stats(r.Context(), r.URL.Query().Get("groupBy"))
	if err != nil {
		h.WriteServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}
