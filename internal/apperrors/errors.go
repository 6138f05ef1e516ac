// Package apperrors holds the closed set of errors the resolver pipeline can
// return. Every type matches itself with errors.Is regardless of field values,
// so callers can branch on the kind of failure through any amount of wrapping.
package apperrors

import "fmt"

// ErrCreateURL is returned when a request URL cannot be built or parsed.
type ErrCreateURL struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *ErrCreateURL) Error() string {
	return fmt.Sprintf("failed to create URL from %q: %v", e.Raw, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *ErrCreateURL) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrCreateURL) Is(target error) bool {
	_, ok := target.(*ErrCreateURL)
	return ok
}

// ErrSendGetRequest is returned when a GET request fails at the network level.
// The response status never produces it; error pages are parsed like any other.
type ErrSendGetRequest struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrSendGetRequest) Error() string {
	return fmt.Sprintf("GET %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ErrSendGetRequest) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrSendGetRequest) Is(target error) bool {
	_, ok := target.(*ErrSendGetRequest)
	return ok
}

// ErrRequestText is returned when a response body cannot be read or decoded.
type ErrRequestText struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrRequestText) Error() string {
	return fmt.Sprintf("failed to read response body from %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying read error.
func (e *ErrRequestText) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrRequestText) Is(target error) bool {
	_, ok := target.(*ErrRequestText)
	return ok
}

// ErrParseJSON is returned when the source lookup endpoint answers with invalid JSON.
type ErrParseJSON struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ErrParseJSON) Error() string {
	return fmt.Sprintf("failed to parse JSON from %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ErrParseJSON) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrParseJSON) Is(target error) bool {
	_, ok := target.(*ErrParseJSON)
	return ok
}

// ErrNotFound is returned when an element the pipeline depends on is absent
// from a page. URL is the resolved (post-redirect) page URL.
type ErrNotFound struct {
	Resource string
	URL      string
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s not found at %s", e.Resource, e.URL)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource, url string) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		URL:      url,
	}
}

// ErrMalformedOrigin is returned when an element exists but one of its
// attributes (or JSON fields) is missing or cannot be interpreted.
type ErrMalformedOrigin struct {
	Resource  string
	Attribute string
	Value     string
	URL       string
}

// Error implements the error interface.
func (e *ErrMalformedOrigin) Error() string {
	msg := fmt.Sprintf("malformed %s: attribute %q", e.Resource, e.Attribute)
	if e.Value != "" {
		msg += fmt.Sprintf(" has invalid value %q", e.Value)
	} else {
		msg += " is missing"
	}
	if e.URL != "" {
		msg += " at " + e.URL
	}
	return msg
}

// Is allows for error checking with errors.Is().
func (e *ErrMalformedOrigin) Is(target error) bool {
	_, ok := target.(*ErrMalformedOrigin)
	return ok
}
