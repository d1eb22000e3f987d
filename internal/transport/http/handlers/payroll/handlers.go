package payrollhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payrollhr/internal/domain/audit"
	"payrollhr/internal/domain/auth"
	"payrollhr/internal/domain/payroll"
	"payrollhr/internal/platform/metrics"
	"payrollhr/internal/transport/http/api"
	"payrollhr/internal/transport/http/middleware"
	"payrollhr/internal/transport/http/shared"
)

var frequencies = []string{
	payroll.FrequencyDaily,
	payroll.FrequencyWeekly,
	payroll.FrequencyBiweekly,
	payroll.FrequencyMonthly,
	payroll.FrequencyQuarterly,
	payroll.FrequencyAnnually,
	payroll.FrequencyOneTime,
}

type Handler struct {
	Service *payroll.Service
	Perms   middleware.PermissionStore
	Metrics *metrics.Collector
	Audit   *audit.Trail
}

func NewHandler(service *payroll.Service, perms middleware.PermissionStore, collector *metrics.Collector, trail *audit.Trail) *Handler {
	return &Handler{Service: service, Perms: perms, Metrics: collector, Audit: trail}
}

func (h *Handler) recordAudit(r *http.Request, actorID, action, entityType, entityID, requestID string, detail any) {
	if h.Audit == nil {
		return
	}
	user, ok := middleware.GetUser(r.Context())
	if ok && actorID == "" {
		actorID = user.UserID
	}
	tenantID := ""
	if ok {
		tenantID = user.TenantID
	}
	if err := h.Audit.Record(r.Context(), tenantID, actorID, action, entityType, entityID, requestID, detail); err != nil {
		slog.Warn("audit record failed", "err", err, "action", action, "requestId", requestID)
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		read := middleware.RequirePermission(auth.PermPayrollRead, h.Perms)
		write := middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)
		run := middleware.RequirePermission(auth.PermPayrollRun, h.Perms)

		r.With(read).Get("/settings", h.HandleGetSettings)
		r.With(write).Put("/settings", h.HandleUpdateSettings)

		r.With(read).Get("/employees/{employeeID}/earnings", h.HandleListEarnings)
		r.With(write).Post("/employees/{employeeID}/earnings", h.HandleCreateEarning)
		r.With(read).Get("/employees/{employeeID}/deductions", h.HandleListDeductions)
		r.With(write).Post("/employees/{employeeID}/deductions", h.HandleCreateDeduction)

		r.With(run).Post("/runs", h.HandleRunPeriod)
		r.With(read).Get("/runs", h.HandleListRuns)
		r.With(read).Get("/runs/{runID}", h.HandleGetRun)
		r.With(run).Post("/runs/{runID}/mark-paid", h.HandleMarkPaid)
		r.With(read).Get("/runs/{runID}/payslip", h.HandlePayslip)

		r.With(run).Post("/preview", h.HandlePreview)
	})
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	settings, err := h.Service.Settings(r.Context(), user.TenantID)
	if err != nil {
		slog.Warn("settings load failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "unable to load payroll settings", requestID)
		return
	}
	api.Success(w, settings, requestID)
}

func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var settings payroll.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	if settings.WorkingDaysPerMonth <= 0 {
		v.Add("workingDaysPerMonth", "must be greater than zero")
	}
	if settings.WorkingHoursPerDay <= 0 {
		v.Add("workingHoursPerDay", "must be greater than zero")
	}
	if settings.OvertimeMultiplier < 1 {
		v.Add("overtimeMultiplier", "must be at least 1")
	}
	if len(settings.TaxBrackets) == 0 {
		v.Add("taxBrackets", "at least one bracket is required")
	}
	for _, b := range settings.TaxBrackets {
		if b.Rate < 0 || b.Rate > 1 {
			v.Add("taxBrackets", "bracket rates must be between 0 and 1")
			break
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Service.UpdateSettings(r.Context(), user.TenantID, settings); err != nil {
		slog.Warn("settings update failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "unable to update payroll settings", requestID)
		return
	}
	h.recordAudit(r, "", audit.ActionSettingsUpdate, "payroll_settings", user.TenantID, requestID, settings)
	api.Success(w, settings, requestID)
}

func (h *Handler) HandleListEarnings(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	earnings, err := h.Service.ListEarnings(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		slog.Warn("earnings list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "list_failed", "unable to list earnings", requestID)
		return
	}
	api.Success(w, earnings, requestID)
}

type earningPayload struct {
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Frequency     string  `json:"frequency"`
	IsActive      *bool   `json:"isActive"`
	EffectiveDate string  `json:"effectiveDate"`
	EndDate       string  `json:"endDate"`
}

func (h *Handler) HandleCreateEarning(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload earningPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("type", payload.Type, "type is required")
	v.Enum("frequency", payload.Frequency, frequencies, "invalid frequency")
	if payload.Amount < 0 {
		v.Add("amount", "amount must not be negative")
	}

	earning := payroll.Earning{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Type:       payload.Type,
		Amount:     payload.Amount,
		Frequency:  payload.Frequency,
		IsActive:   true,
	}
	if payload.IsActive != nil {
		earning.IsActive = *payload.IsActive
	}
	if payload.EffectiveDate != "" {
		if d, ok := v.Date("effectiveDate", payload.EffectiveDate); ok {
			earning.EffectiveDate = &d
		}
	}
	if payload.EndDate != "" {
		if d, ok := v.Date("endDate", payload.EndDate); ok {
			earning.EndDate = &d
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Service.AddEarning(r.Context(), user.TenantID, earning)
	if err != nil {
		slog.Warn("earning create failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "create_failed", "unable to create earning", requestID)
		return
	}
	earning.ID = id
	api.Created(w, earning, requestID)
}

func (h *Handler) HandleListDeductions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	deductions, err := h.Service.ListDeductions(r.Context(), user.TenantID, chi.URLParam(r, "employeeID"))
	if err != nil {
		slog.Warn("deductions list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "list_failed", "unable to list deductions", requestID)
		return
	}
	api.Success(w, deductions, requestID)
}

type deductionPayload struct {
	Type          string   `json:"type"`
	Amount        *float64 `json:"amount"`
	Percentage    *float64 `json:"percentage"`
	Frequency     string   `json:"frequency"`
	IsActive      *bool    `json:"isActive"`
	EffectiveDate string   `json:"effectiveDate"`
	EndDate       string   `json:"endDate"`
}

func (h *Handler) HandleCreateDeduction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload deductionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("type", payload.Type, "type is required")
	v.Enum("frequency", payload.Frequency, frequencies, "invalid frequency")
	if payload.Amount == nil && payload.Percentage == nil {
		v.Add("amount", "either amount or percentage is required")
	}
	if payload.Amount != nil && *payload.Amount < 0 {
		v.Add("amount", "amount must not be negative")
	}
	if payload.Percentage != nil && (*payload.Percentage < 0 || *payload.Percentage > 100) {
		v.Add("percentage", "percentage must be between 0 and 100")
	}

	deduction := payroll.Deduction{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Type:       payload.Type,
		Amount:     payload.Amount,
		Percentage: payload.Percentage,
		Frequency:  payload.Frequency,
		IsActive:   true,
	}
	if payload.IsActive != nil {
		deduction.IsActive = *payload.IsActive
	}
	if payload.EffectiveDate != "" {
		if d, ok := v.Date("effectiveDate", payload.EffectiveDate); ok {
			deduction.EffectiveDate = &d
		}
	}
	if payload.EndDate != "" {
		if d, ok := v.Date("endDate", payload.EndDate); ok {
			deduction.EndDate = &d
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Service.AddDeduction(r.Context(), user.TenantID, deduction)
	if err != nil {
		slog.Warn("deduction create failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "create_failed", "unable to create deduction", requestID)
		return
	}
	deduction.ID = id
	api.Created(w, deduction, requestID)
}

type runPayload struct {
	EmployeeID  string `json:"employeeId"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
}

func (h *Handler) HandleRunPeriod(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	start, startOK := v.Date("periodStart", payload.PeriodStart)
	end, endOK := v.Date("periodEnd", payload.PeriodEnd)
	if startOK && endOK {
		v.DateOrder("periodStart", start, "periodEnd", end)
	}
	if v.Reject(w, requestID) {
		return
	}

	run, err := h.Service.RunPeriod(r.Context(), user.TenantID, payload.EmployeeID, start, end)
	switch {
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	case errors.Is(err, payroll.ErrRunAlreadyPaid):
		api.Fail(w, http.StatusConflict, "already_paid", "payroll run for this period is already paid", requestID)
		return
	case err != nil:
		slog.Warn("payroll run failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "run_failed", "unable to run payroll", requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordPayrollRun()
	}
	h.recordAudit(r, "", audit.ActionPayrollRun, "payroll_run", run.ID, requestID, run.Result)
	api.Created(w, run, requestID)
}

func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	runs, err := h.Service.ListRuns(r.Context(), user.TenantID, r.URL.Query().Get("employeeId"), page.Limit, page.Offset)
	if err != nil {
		slog.Warn("run list failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "list_failed", "unable to list payroll runs", requestID)
		return
	}
	api.Success(w, runs, requestID)
}

func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	run, err := h.Service.GetRun(r.Context(), user.TenantID, chi.URLParam(r, "runID"))
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll run not found", requestID)
		return
	}
	if err != nil {
		slog.Warn("run get failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "get_failed", "unable to load payroll run", requestID)
		return
	}
	api.Success(w, run, requestID)
}

func (h *Handler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	runID := chi.URLParam(r, "runID")
	err := h.Service.MarkRunPaid(r.Context(), user.TenantID, runID)
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll run not found", requestID)
		return
	}
	if err != nil {
		slog.Warn("mark paid failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "update_failed", "unable to mark payroll run paid", requestID)
		return
	}
	h.recordAudit(r, "", audit.ActionPayrollMarkPaid, "payroll_run", runID, requestID, nil)
	api.Success(w, map[string]string{"id": runID, "status": payroll.RunStatusPaid}, requestID)
}

func (h *Handler) HandlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	runID := chi.URLParam(r, "runID")
	path, err := h.Service.GeneratePayslipPDF(r.Context(), user.TenantID, runID)
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll run not found", requestID)
		return
	}
	if err != nil {
		slog.Warn("payslip generation failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "unable to generate payslip", requestID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordPayslip()
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip-`+runID+`.pdf"`)
	http.ServeFile(w, r, path)
}

type previewPayload struct {
	BaseSalary float64                   `json:"baseSalary"`
	Attendance payroll.AttendanceSummary `json:"attendance"`
	Earnings   []payroll.Earning         `json:"earnings"`
	Deductions []payroll.Deduction       `json:"deductions"`
}

// HandlePreview computes a breakdown from the supplied inputs without
// touching stored employees, attendance, or runs.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload previewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if payload.BaseSalary < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "base salary must not be negative", requestID)
		return
	}

	settings, err := h.Service.Settings(r.Context(), user.TenantID)
	if err != nil {
		slog.Warn("settings load failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "unable to load payroll settings", requestID)
		return
	}

	result := payroll.Calculate(payload.BaseSalary, payload.Attendance, payload.Earnings, payload.Deductions, settings)
	api.Success(w, result, requestID)
}
