package models

import (
	"fmt"
	"strings"
)

// ConfigurationError reports settings that must be present before any call to
// the provider can succeed.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing configuration: " + strings.Join(e.Missing, ", ")
}

// AuthenticationError is returned when the token exchange fails. Status is
// zero when no HTTP response was received.
type AuthenticationError struct {
	Status     int
	StatusText string
	Reason     string
	Err        error
}

func (e *AuthenticationError) Error() string {
	msg := "authentication failed"
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d %s", e.Status, e.StatusText)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ProviderError is a non-success response from one of the data endpoints.
type ProviderError struct {
	Endpoint   string
	Status     int
	StatusText string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider responded %d %s", e.Endpoint, e.Status, e.StatusText)
}

type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return e.Endpoint + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
