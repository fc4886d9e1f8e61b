package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is inactive")
	ErrUsernameExists   = errors.New("username already registered")
)
