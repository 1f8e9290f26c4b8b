package shared

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Record errors
	ErrInvalidID      = fmt.Errorf("invalid record id")
	ErrRecordNotFound = fmt.Errorf("record not found")
	ErrDecode         = fmt.Errorf("spreadsheet could not be decoded")
	ErrValidation     = fmt.Errorf("validation failed")
	ErrStore          = fmt.Errorf("record store failure")
	ErrMissingFile    = fmt.Errorf("no file uploaded")
	ErrRateLimited    = fmt.Errorf("too many requests")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// Machine readable error codes returned by the record API.
const (
	CodeInvalidID   = "invalid_id"
	CodeNotFound    = "not_found"
	CodeDecode      = "decode"
	CodeValidation  = "validation"
	CodeMissingFile = "missing_file"
	CodeStore       = "store"
	CodeRateLimited = "rate_limited"
)

var codeErrors = map[string]error{
	CodeInvalidID:   ErrInvalidID,
	CodeNotFound:    ErrRecordNotFound,
	CodeDecode:      ErrDecode,
	CodeValidation:  ErrValidation,
	CodeMissingFile: ErrMissingFile,
	CodeStore:       ErrStore,
	CodeRateLimited: ErrRateLimited,
}

// Classify maps an error onto its HTTP status and API error code.
//
// Anything outside the record taxonomy is reported as a store failure.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest, CodeInvalidID
	case errors.Is(err, ErrMissingFile):
		return http.StatusBadRequest, CodeMissingFile
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, ErrRecordNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, ErrDecode):
		return http.StatusUnprocessableEntity, CodeDecode
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, CodeRateLimited
	default:
		return http.StatusInternalServerError, CodeStore
	}
}

// ErrorForCode returns the sentinel matching an API error code, or nil when the code is unknown.
func ErrorForCode(code string) error {
	return codeErrors[code]
}
