package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Kariqs/perfume-api/models"
	"github.com/Kariqs/perfume-api/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrInvalidSize        = models.ErrInvalidSize
	ErrInvalidStatus      = models.ErrInvalidStatus
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrImageStorageDisabled = errors.New("image storage is not configured")
)

// ValidationError reports malformed input, keyed by JSON field path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

type ProductNotFoundError struct {
	ID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product with ID %d not found", e.ID)
}

// PersistenceError wraps a store failure. Callers see it as a generic failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
