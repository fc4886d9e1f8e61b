package auth

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrEmployeeClaimMissing   = errors.New("token does not identify an employee")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
