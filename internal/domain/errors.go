package domain

import "errors"

// ErrNotFound is returned when no entry carries the requested identifier.
var ErrNotFound = errors.New("video not found")

// Messages surfaced to clients on rejected input.
const (
	MsgEmptyName   = "El nombre del video no puede estar vacío"
	MsgEmptyLink   = "El link del video no puede estar vacío"
	MsgInvalidLink = "El link proporcionado no es una URL válida de YouTube"
)

// ValidationError carries a client-facing message for rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
