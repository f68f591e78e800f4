package utils

import "errors"

// --- Sentinel Errors for Categorization ---
var (
	ErrInvalidBaseURL  = errors.New("invalid base URL")              // The one fatal configuration error
	ErrClientHTTPError = errors.New("client HTTP error (4xx)")       // Wraps original status
	ErrServerHTTPError = errors.New("server HTTP error (5xx)")       // Wraps original status
	ErrOtherHTTPError  = errors.New("other HTTP error (non-2xx)")    // Wraps original status
	ErrEmptyContent    = errors.New("response below content floor")  // Body too small to be a real page
	ErrRequestCreation = errors.New("failed to create HTTP request") // Malformed URL at request time
	ErrParsing         = errors.New("parsing error")                 // Wraps URL/HTML/XML parse errors
)

// CategorizeError maps an error to a category string for logging.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}
	switch {
	case errors.Is(err, ErrInvalidBaseURL):
		return "InvalidBaseURL"
	case errors.Is(err, ErrClientHTTPError):
		return "HTTPClient"
	case errors.Is(err, ErrServerHTTPError):
		return "HTTPServer"
	case errors.Is(err, ErrOtherHTTPError):
		return "HTTPOther"
	case errors.Is(err, ErrEmptyContent):
		return "EmptyContent"
	case errors.Is(err, ErrRequestCreation):
		return "RequestCreation"
	case errors.Is(err, ErrParsing):
		return "Parsing"
	default:
		return "Unknown"
	}
}
