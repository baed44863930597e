package services

import (
	"errors"
	"fmt"
)

// ErrNotFound menandai target operasi tidak ada (bedakan dari input tidak valid).
var ErrNotFound = errors.New("not found")

// ValidationError: kesalahan input yang bisa diperbaiki pemanggil; selalu
// membawa nama field supaya handler bisa menampilkan pesan per field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}
