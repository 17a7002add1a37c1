// Package errors defines the typed failures of the metadata pipeline.
// CatalogError carries a type classification, and for upstream failures the
// status the provider answered with.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// CatalogError represents a failure while fetching or resolving catalog data.
type CatalogError struct {
	Type    string
	Message string
	Status  int
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeConfiguration = "CONFIGURATION"
	ErrorTypeUpstream      = "UPSTREAM"
	ErrorTypeTransport     = "TRANSPORT"
	ErrorTypeNotFound      = "NOT_FOUND"
	ErrorTypeDecode        = "DECODE"
)

// NewCatalogError creates a new CatalogError
func NewCatalogError(errorType, message string, cause error) *CatalogError {
	return &CatalogError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError reports a missing or invalid server-side setting.
func NewConfigurationError(message string) *CatalogError {
	return NewCatalogError(ErrorTypeConfiguration, message, nil)
}

// NewUpstreamError reports a non-2xx answer from the metadata provider.
func NewUpstreamError(status int) *CatalogError {
	e := NewCatalogError(ErrorTypeUpstream, fmt.Sprintf("TMDB API error: %d", status), nil)
	e.Status = status
	return e
}

// NewTransportError reports a network-level failure (DNS, connect, timeout).
func NewTransportError(message string, cause error) *CatalogError {
	return NewCatalogError(ErrorTypeTransport, message, cause)
}

// NewNotFoundError reports that a lookup chain found nothing.
func NewNotFoundError(what string) *CatalogError {
	return NewCatalogError(ErrorTypeNotFound, fmt.Sprintf("not found: %s", what), nil)
}

// NewDecodeError reports an upstream body that could not be decoded.
func NewDecodeError(message string, cause error) *CatalogError {
	return NewCatalogError(ErrorTypeDecode, message, cause)
}

func typeOf(err error) (*CatalogError, bool) {
	var ce *CatalogError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func hasType(err error, t string) bool {
	ce, ok := typeOf(err)
	return ok && ce.Type == t
}

func IsConfiguration(err error) bool { return hasType(err, ErrorTypeConfiguration) }
func IsTransport(err error) bool     { return hasType(err, ErrorTypeTransport) }
func IsNotFound(err error) bool      { return hasType(err, ErrorTypeNotFound) }

// IsUpstream reports whether err is an upstream failure and its status.
func IsUpstream(err error) (int, bool) {
	ce, ok := typeOf(err)
	if !ok || ce.Type != ErrorTypeUpstream {
		return 0, false
	}
	return ce.Status, true
}

// HTTPStatus maps err to the status a handler should answer with.
// Upstream statuses are mirrored, missing lookups are 404 and everything else
// is 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	ce, ok := typeOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch ce.Type {
	case ErrorTypeUpstream:
		if ce.Status >= 400 && ce.Status <= 599 {
			return ce.Status
		}
		return http.StatusBadGateway
	case ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
