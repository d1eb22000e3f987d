package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"payrollhr/internal/domain/auth"
	"payrollhr/internal/domain/payroll"
	"payrollhr/internal/platform/config"
)

// Seed provisions the default tenant, an admin login, and the default
// payroll settings. Safe to run on every boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	tenantID, err := ensureTenant(ctx, pool, cfg.SeedTenantName)
	if err != nil {
		return err
	}

	if err := ensureAdminUser(ctx, pool, tenantID, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}

	return ensurePayrollSettings(ctx, pool, tenantID)
}

func ensureTenant(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM tenants WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO tenants (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, tenantID, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var existing string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE tenant_id = $1 AND lower(email) = $2", tenantID, email).Scan(&existing)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (tenant_id, email, password_hash, role_name, status)
    VALUES ($1, $2, $3, $4, 'active')
  `, tenantID, email, hash, auth.RoleAdmin)
	return err
}

func ensurePayrollSettings(ctx context.Context, pool *pgxpool.Pool, tenantID string) error {
	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_settings WHERE tenant_id = $1", tenantID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	store := payroll.NewStore(pool)
	return store.UpsertSettings(ctx, tenantID, payroll.DefaultSettings())
}
