package service

import (
	"fmt"
	"net/http"
)

// Error is an API-visible failure carried up to the HTTP layer.
type Error struct {
	Code        string
	Description string
	Status      int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func newError(code, desc string, status int) *Error {
	return &Error{Code: code, Description: desc, Status: status}
}

// Credential failures share one message so callers cannot tell a missing
// user from a wrong password.
func errInvalidCredentials() *Error {
	return newError("unauthorized", "Correo o contraseña inválidos", http.StatusUnauthorized)
}

func errUnauthorized(desc string) *Error {
	return newError("unauthorized", desc, http.StatusUnauthorized)
}

func errNotFound(desc string) *Error {
	return newError("not_found", desc, http.StatusNotFound)
}
