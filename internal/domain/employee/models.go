package employee

import "time"

const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	BaseSalary float64    `json:"baseSalary"`
	Currency   string     `json:"currency"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}
