package service

import "errors"

// ErrInvalidCredentials covers both unknown email and wrong password,
// so a login probe cannot learn which emails are registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries the per-field failures from the shared rule
// set; handlers surface Fields verbatim so clients can render them
// inline.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
