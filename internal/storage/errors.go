package storage

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mattn/go-sqlite3"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrReference is returned when a foreign reference does not resolve.
	ErrReference = errors.New("unresolved reference")
	// ErrValidation is returned when input is malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotEmpty marks a non-recursive folder delete blocked by content.
	ErrNotEmpty = errors.New("folder not empty")
)

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// Is allows errors.Is() to match against ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ReferenceError reports a reference to an entity that does not exist,
// or a denormalized reference that disagrees with its source.
type ReferenceError struct {
	Entity string
	ID     string
	Reason string
}

func (e *ReferenceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s reference %q: %s", e.Entity, e.ID, e.Reason)
	}
	return fmt.Sprintf("invalid %s reference %q: does not exist", e.Entity, e.ID)
}

// Is allows errors.Is() to match against ErrReference.
func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is allows errors.Is() to match against ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// fromValidation converts ozzo validation output into a ValidationError
// naming the first offending field.
func fromValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) && len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return &ValidationError{Field: fields[0], Message: errs[fields[0]].Error()}
	}
	return &ValidationError{Field: "input", Message: err.Error()}
}

// isForeignKeyError checks if error is a SQLite foreign key violation.
func isForeignKeyError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
