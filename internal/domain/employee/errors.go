package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
