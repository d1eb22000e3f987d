package auth

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// UserContext is the authenticated identity attached to a request.
type UserContext struct {
	UserID   string
	TenantID string
	RoleName string
}

type AuthUser struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	RoleName     string
	Status       string
}
