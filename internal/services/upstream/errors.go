// Package upstream defines the error taxonomy shared by the headline,
// completion and geocoding clients.
package upstream

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v2"
)

// Service names used in errors, logs and metrics.
const (
	ServiceHeadlines = "headlines"
	ServiceLLM       = "llm"
	ServiceGeocoding = "geocoding"
)

// TransportError is a network-level failure reaching an upstream: timeouts,
// DNS failures, connection resets, cancelled contexts.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError means the upstream answered but reported a failure or
// returned an unexpected shape.
type UpstreamError struct {
	Service    string
	StatusCode int
	Status     string
	Message    string
	// Err is the underlying cause, if any.
	Err error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Status != "":
		return fmt.Sprintf("%s upstream error (%d %s): %s", e.Service, e.StatusCode, e.Status, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s upstream error (%d): %s", e.Service, e.StatusCode, e.Message)
	case e.Status != "":
		return fmt.Sprintf("%s upstream error (%s): %s", e.Service, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s upstream error: %s", e.Service, e.Message)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// GeocodingError means the geocoder found nothing for a place or refused the
// query.
type GeocodingError struct {
	Place   string
	Status  string
	Message string
	Err     error
}

func (e *GeocodingError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("geocoding %q failed: %s: %s", e.Place, e.Status, e.Message)
	}
	return fmt.Sprintf("geocoding %q failed: %s", e.Place, e.Status)
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// Transport wraps err as a TransportError unless it already carries a
// classification.
func Transport(service string, err error) error {
	if err == nil || IsClassified(err) {
		return err
	}
	return &TransportError{Service: service, Err: err}
}

// FromSDK maps an error returned by one of the LLM SDKs onto the taxonomy:
// API errors become UpstreamError, everything else TransportError.
func FromSDK(service string, err error) error {
	if err == nil {
		return nil
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return &UpstreamError{
			Service:    service,
			StatusCode: openaiErr.StatusCode,
			Message:    openaiErr.Message,
			Err:        err,
		}
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return &UpstreamError{
			Service:    service,
			StatusCode: anthropicErr.StatusCode,
			Message:    http.StatusText(anthropicErr.StatusCode),
			Err:        err,
		}
	}

	return Transport(service, err)
}

// IsTransport reports whether err is or wraps a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsUpstream reports whether err is or wraps an UpstreamError.
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// IsGeocoding reports whether err is or wraps a GeocodingError.
func IsGeocoding(err error) bool {
	var target *GeocodingError
	return errors.As(err, &target)
}

// IsClassified reports whether err already belongs to the taxonomy.
func IsClassified(err error) bool {
	return IsTransport(err) || IsUpstream(err) || IsGeocoding(err)
}
