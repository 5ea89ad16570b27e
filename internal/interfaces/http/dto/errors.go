package dto

import (
	"net/http"
	"strings"
)

// API error codes, format ERR_<CATEGORY>
const (
	ErrCodeInternal          = "ERR_INTERNAL"
	ErrCodeValidation        = "ERR_VALIDATION"
	ErrCodeUnauthorized      = "ERR_UNAUTHORIZED"
	ErrCodeForbidden         = "ERR_FORBIDDEN"
	ErrCodeNotFound          = "ERR_NOT_FOUND"
	ErrCodeConflict          = "ERR_CONFLICT"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	ErrCodeBadRequest        = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON       = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeConflict:          http.StatusConflict,
	ErrCodeInsufficientStock: http.StatusConflict,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInvalidJSON:       http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to API error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeConflict,
	"CONCURRENCY_CONFLICT":  ErrCodeConflict,
	"INSUFFICIENT_STOCK":    ErrCodeInsufficientStock,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"FORBIDDEN":             ErrCodeForbidden,
	"INVALID_CREDENTIALS":   ErrCodeUnauthorized,
	"INVALID_REFRESH_TOKEN": ErrCodeUnauthorized,
	"ACCOUNT_DISABLED":      ErrCodeForbidden,
	"SKU_EXISTS":            ErrCodeConflict,
	"INVALID_STATE":         ErrCodeConflict,
	"INTERNAL_ERROR":        ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// INVALID_* codes collapse into ERR_VALIDATION; codes already in API
// format pass through unchanged.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeValidation
	}
	return ErrCodeInternal
}
