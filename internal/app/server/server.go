package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"payrollhr/internal/domain/attendance"
	"payrollhr/internal/domain/audit"
	"payrollhr/internal/domain/auth"
	"payrollhr/internal/domain/employee"
	"payrollhr/internal/domain/payroll"
	"payrollhr/internal/platform/config"
	"payrollhr/internal/platform/db"
	"payrollhr/internal/platform/metrics"
	attendancehandler "payrollhr/internal/transport/http/handlers/attendance"
	audithandler "payrollhr/internal/transport/http/handlers/audit"
	authhandler "payrollhr/internal/transport/http/handlers/auth"
	employeehandler "payrollhr/internal/transport/http/handlers/employee"
	payrollhandler "payrollhr/internal/transport/http/handlers/payroll"
	"payrollhr/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	if err := os.MkdirAll(cfg.PayslipDir, 0o755); err != nil {
		log.Fatalf("payslip dir failed: %v", err)
	}

	collector := metrics.New()
	perms := auth.StaticPermissions{}
	trail := audit.NewTrail(pool)

	employeeStore := employee.NewStore(pool)
	attendanceService := attendance.NewService(attendance.NewStore(pool))
	payrollService := payroll.NewService(
		payroll.NewStore(pool),
		employeeStore,
		attendanceTotals{service: attendanceService},
		cfg.PayslipDir,
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(collector.Snapshot())
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore, perms).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceService, perms).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService, perms, collector, trail).RegisterRoutes(r)
		audithandler.NewHandler(trail, perms).RegisterRoutes(r)
	})

	log.Printf("payroll server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// attendanceTotals adapts the attendance service to the payroll
// service's period totals interface.
type attendanceTotals struct {
	service *attendance.Service
}

func (a attendanceTotals) PeriodTotals(ctx context.Context, tenantID, employeeID string, start, end time.Time) (payroll.AttendanceSummary, error) {
	summary, err := a.service.PeriodSummary(ctx, tenantID, employeeID, start, end)
	if err != nil {
		return payroll.AttendanceSummary{}, err
	}
	return payroll.AttendanceSummary{
		TotalWorkDays:  float64(summary.TotalWorkDays),
		TotalWorkHours: summary.TotalWorkHours,
		RegularHours:   summary.RegularHours,
		OvertimeHours:  summary.OvertimeHours,
	}, nil
}
