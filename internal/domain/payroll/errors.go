package payroll

import "errors"

var (
	ErrRunNotFound      = errors.New("payroll run not found")
	ErrRunAlreadyPaid   = errors.New("payroll run already marked paid")
	ErrEmployeeNotFound = errors.New("employee not found for payroll run")
)
