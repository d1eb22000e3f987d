package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payrollhr/internal/domain/auth"
	"payrollhr/internal/domain/employee"
	"payrollhr/internal/transport/http/api"
	"payrollhr/internal/transport/http/middleware"
	"payrollhr/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
	Perms middleware.PermissionStore
}

func NewHandler(store *employee.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.HandleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.HandleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}", h.HandleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Put("/{employeeID}", h.HandleUpdate)
	})
}

type employeePayload struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	BaseSalary float64 `json:"baseSalary"`
	Currency   string  `json:"currency"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Status     string  `json:"status"`
}

func (p employeePayload) validate() (*shared.Validator, employee.Employee) {
	v := shared.NewValidator()
	v.Required("firstName", p.FirstName, "first name is required")
	v.Required("lastName", p.LastName, "last name is required")
	v.Required("email", p.Email, "email is required")
	if p.BaseSalary < 0 {
		v.Add("baseSalary", "base salary must not be negative")
	}

	emp := employee.Employee{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		BaseSalary: p.BaseSalary,
		Currency:   p.Currency,
		Status:     p.Status,
	}
	if emp.Currency == "" {
		emp.Currency = "PHP"
	}
	if emp.Status == "" {
		emp.Status = employee.StatusActive
	} else {
		v.Enum("status", emp.Status, []string{employee.StatusActive, employee.StatusTerminated}, "invalid status")
	}
	if p.StartDate != "" {
		if d, ok := v.Date("startDate", p.StartDate); ok {
			emp.StartDate = &d
		}
	}
	if p.EndDate != "" {
		if d, ok := v.Date("endDate", p.EndDate); ok {
			emp.EndDate = &d
		}
	}
	if emp.StartDate != nil && emp.EndDate != nil {
		v.DateOrder("startDate", *emp.StartDate, "endDate", *emp.EndDate)
	}
	return v, emp
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	employees, err := h.Store.List(r.Context(), user.TenantID, page.Limit, page.Offset)
	if err != nil {
		slog.Warn("employee list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "list_failed", "unable to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	emp, err := h.Store.Get(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		slog.Warn("employee get failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "get_failed", "unable to load employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v, emp := payload.validate()
	if v.Reject(w, requestID) {
		return
	}
	if emp.StartDate == nil {
		now := time.Now().UTC()
		emp.StartDate = &now
	}

	id, err := h.Store.Create(r.Context(), user.TenantID, emp)
	if err != nil {
		slog.Warn("employee create failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "create_failed", "unable to create employee", requestID)
		return
	}
	emp.ID = id
	api.Created(w, emp, requestID)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v, emp := payload.validate()
	if v.Reject(w, requestID) {
		return
	}
	emp.ID = chi.URLParam(r, "employeeID")

	err := h.Store.Update(r.Context(), user.TenantID, emp)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		slog.Warn("employee update failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "update_failed", "unable to update employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}
