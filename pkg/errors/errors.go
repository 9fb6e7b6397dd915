// Package errors provides custom error types for the capsync system.
// These errors enable programmatic error checking across the reconciliation
// core and its source boundaries.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the capsync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpsertFailed indicates that the CRM rejected a record in a batch
	ErrUpsertFailed = errors.New("upsert failed")

	// ErrSourceUnavailable indicates that an external system could not be reached
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// InvalidTimeError reports a start or end time that could not be parsed
// as a 24-hour "HH:MM" value.
type InvalidTimeError struct {
	Raw    string
	Reason string
}

// Error implements the error interface
func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid meeting time %q: %s", e.Raw, e.Reason)
}

// Is implements errors.Is support
func (e *InvalidTimeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidTimeError creates a new InvalidTimeError
func NewInvalidTimeError(raw, reason string) *InvalidTimeError {
	return &InvalidTimeError{Raw: raw, Reason: reason}
}

// InvalidWeekdayError reports a meeting-days string that is not a
// concatenation of two-letter weekday codes.
type InvalidWeekdayError struct {
	Raw    string
	Reason string
}

// Error implements the error interface
func (e *InvalidWeekdayError) Error() string {
	return fmt.Sprintf("invalid meeting days %q: %s", e.Raw, e.Reason)
}

// Is implements errors.Is support
func (e *InvalidWeekdayError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidWeekdayError creates a new InvalidWeekdayError
func NewInvalidWeekdayError(raw, reason string) *InvalidWeekdayError {
	return &InvalidWeekdayError{Raw: raw, Reason: reason}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// UpsertError reports a record the CRM rejected during a bulk upsert.
// It carries the offending record payload for diagnosis; any single
// failure aborts the remainder of the run.
type UpsertError struct {
	Object  string // CRM object name, e.g. "Course__c" or "Contact"
	Record  any    // the rejected record payload
	Message string
}

// Error implements the error interface
func (e *UpsertError) Error() string {
	return fmt.Sprintf("upsert of %s record failed: %s (record: %+v)", e.Object, e.Message, e.Record)
}

// Is implements errors.Is support
func (e *UpsertError) Is(target error) bool {
	return target == ErrUpsertFailed
}

// NewUpsertError creates a new UpsertError
func NewUpsertError(object string, record any, message string) *UpsertError {
	return &UpsertError{Object: object, Record: record, Message: message}
}

// QueryError represents a failure at a read boundary (EDO, SIS, or CRM query)
type QueryError struct {
	Source    string // "edo", "sis", "crm"
	Operation string
	Err       error
}

// Error implements the error interface
func (e *QueryError) Error() string {
	return fmt.Sprintf("query error from %s during %s: %v", e.Source, e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *QueryError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewQueryError creates a new QueryError
func NewQueryError(source, operation string, err error) *QueryError {
	return &QueryError{Source: source, Operation: operation, Err: err}
}

// APIError represents an error from the CRM HTTP API
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("CRM API error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("CRM API error from %s: %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode >= 500 {
		return target == ErrSourceUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(endpoint string, statusCode int, message string) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if an error is a validation or normalization error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUpsertFailure checks if an error is an upsert failure
func IsUpsertFailure(err error) bool {
	return errors.Is(err, ErrUpsertFailed)
}

// IsSourceUnavailable checks if an error indicates an unreachable source system
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapQuery wraps an error as a QueryError
func WrapQuery(source, operation string, err error) error {
	if err == nil {
		return nil
	}
	return NewQueryError(source, operation, err)
}

// WrapAPI wraps an error as an APIError
func WrapAPI(endpoint string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
