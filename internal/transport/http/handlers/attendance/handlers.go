package attendancehandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payrollhr/internal/domain/attendance"
	"payrollhr/internal/domain/auth"
	"payrollhr/internal/transport/http/api"
	"payrollhr/internal/transport/http/middleware"
	"payrollhr/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *attendance.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		read := middleware.RequirePermission(auth.PermAttendanceRead, h.Perms)
		write := middleware.RequirePermission(auth.PermAttendanceWrite, h.Perms)

		r.With(write).Post("/records", h.HandleRecordDay)
		r.With(read).Get("/employees/{employeeID}/records", h.HandlePeriodDetail)
		r.With(read).Get("/employees/{employeeID}/summary", h.HandlePeriodSummary)
		r.With(read).Get("/employees/{employeeID}/schedule", h.HandleGetSchedule)
		r.With(write).Put("/employees/{employeeID}/schedule", h.HandleSetSchedule)
	})
}

type recordPayload struct {
	EmployeeID string     `json:"employeeId"`
	Date       string     `json:"date"`
	ClockIn    *time.Time `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut"`
	BreakStart *time.Time `json:"breakStart"`
	BreakEnd   *time.Time `json:"breakEnd"`
}

func (h *Handler) HandleRecordDay(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	date, _ := v.Date("date", payload.Date)
	if payload.ClockIn != nil && payload.ClockOut != nil && payload.ClockOut.Before(*payload.ClockIn) {
		v.Add("clockOut", "clock out must not be before clock in")
	}
	if v.Reject(w, requestID) {
		return
	}

	record := attendance.DayRecord{
		EmployeeID: payload.EmployeeID,
		Date:       date,
		ClockIn:    payload.ClockIn,
		ClockOut:   payload.ClockOut,
		BreakStart: payload.BreakStart,
		BreakEnd:   payload.BreakEnd,
	}
	id, err := h.Service.RecordDay(r.Context(), user.TenantID, record)
	if err != nil {
		slog.Warn("attendance record failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "create_failed", "unable to record attendance", requestID)
		return
	}
	record.ID = id
	api.Created(w, record, requestID)
}

func (h *Handler) parsePeriod(w http.ResponseWriter, r *http.Request, requestID string) (start, end time.Time, ok bool) {
	v := shared.NewValidator()
	start, startOK := v.Date("start", r.URL.Query().Get("start"))
	end, endOK := v.Date("end", r.URL.Query().Get("end"))
	if startOK && endOK {
		v.DateOrder("start", start, "end", end)
	}
	if v.Reject(w, requestID) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) HandlePeriodDetail(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	start, end, ok := h.parsePeriod(w, r, requestID)
	if !ok {
		return
	}

	days, err := h.Service.PeriodDetail(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"), start, end)
	if err != nil {
		slog.Warn("attendance detail failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "list_failed", "unable to load attendance", requestID)
		return
	}
	api.Success(w, days, requestID)
}

func (h *Handler) HandlePeriodSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	start, end, ok := h.parsePeriod(w, r, requestID)
	if !ok {
		return
	}

	summary, err := h.Service.PeriodSummary(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"), start, end)
	if err != nil {
		slog.Warn("attendance summary failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "unable to summarize attendance", requestID)
		return
	}
	api.Success(w, summary, requestID)
}

func (h *Handler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	schedule, err := h.Service.Schedule(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		slog.Warn("schedule load failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "get_failed", "unable to load schedule", requestID)
		return
	}
	api.Success(w, schedule, requestID)
}

func (h *Handler) HandleSetSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var schedule attendance.WorkSchedule
	if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	if _, err := attendance.ParseClock(schedule.StartTime); err != nil {
		v.Add("startTime", "must be HH:MM")
	}
	if _, err := attendance.ParseClock(schedule.EndTime); err != nil {
		v.Add("endTime", "must be HH:MM")
	}
	if schedule.RegularHoursPerDay <= 0 {
		v.Add("regularHoursPerDay", "must be greater than zero")
	}
	if schedule.BreakDuration < 0 {
		v.Add("breakDuration", "must not be negative")
	}
	if schedule.GraceMinutes < 0 {
		v.Add("graceMinutes", "must not be negative")
	}
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Service.SetSchedule(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"), schedule); err != nil {
		slog.Warn("schedule update failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "update_failed", "unable to update schedule", requestID)
		return
	}
	api.Success(w, schedule, requestID)
}
