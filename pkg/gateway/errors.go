package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrInvalidBaseURL is returned by New for a base URL that is not
	// an absolute http or https URL.
	ErrInvalidBaseURL = errors.New("gateway: invalid base URL")

	// ErrRequestFailed is returned when a request could not be built
	// or sent at the transport level.
	ErrRequestFailed = errors.New("gateway: request failed")

	// ErrDecodeFailed is returned when a success response body cannot
	// be decoded.
	ErrDecodeFailed = errors.New("gateway: failed to decode response")

	// ErrEmptyOrder is returned by OrderFromItems for an empty cart.
	ErrEmptyOrder = errors.New("gateway: cannot build an order from an empty cart")

	// ErrInvalidItemID is returned by OrderFromItems when a cart item
	// carries an ID the backend will not accept.
	ErrInvalidItemID = errors.New("gateway: cart item ID is not a backend product ID")
)

// APIError is a non-2xx response from the backend, carrying the status
// code and the message from the backend's {"error": "..."} payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether the error is a 401 response.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
