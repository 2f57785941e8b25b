package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeTooLarge     = "ERR_REQUEST_TOO_LARGE"
)

// Quantity arithmetic error codes
const (
	ErrCodeDimensionMismatch = "ERR_DIMENSION_MISMATCH"
	ErrCodeDivisionByZero    = "ERR_DIVISION_BY_ZERO"
	ErrCodeOverflow          = "ERR_OVERFLOW"
	ErrCodeInvalidPrecision  = "ERR_INVALID_PRECISION"
)

// Bench error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeCapacityExceeded  = "ERR_CAPACITY_EXCEEDED"
	ErrCodeApparatusEmpty    = "ERR_APPARATUS_EMPTY"
	ErrCodeApparatusOccupied = "ERR_APPARATUS_OCCUPIED"
	ErrCodeSubstanceMismatch = "ERR_SUBSTANCE_MISMATCH"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,

	// Arithmetic on well-formed input that cannot be carried out -> 422
	ErrCodeDimensionMismatch: http.StatusUnprocessableEntity,
	ErrCodeDivisionByZero:    http.StatusUnprocessableEntity,
	ErrCodeOverflow:          http.StatusUnprocessableEntity,
	ErrCodeInvalidPrecision:  http.StatusBadRequest,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeCapacityExceeded:  http.StatusUnprocessableEntity,
	ErrCodeApparatusEmpty:    http.StatusUnprocessableEntity,
	ErrCodeApparatusOccupied: http.StatusUnprocessableEntity,
	ErrCodeSubstanceMismatch: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to API error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"ALREADY_EXISTS":     ErrCodeAlreadyExists,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"INVALID_STATE":      ErrCodeInvalidState,
	"VALIDATION_ERROR":   ErrCodeValidation,
	"BAD_REQUEST":        ErrCodeBadRequest,
	"INTERNAL_ERROR":     ErrCodeInternal,
	"DIMENSION_MISMATCH": ErrCodeDimensionMismatch,
	"DIVISION_BY_ZERO":   ErrCodeDivisionByZero,
	"OVERFLOW":           ErrCodeOverflow,
	"INVALID_PRECISION":  ErrCodeInvalidPrecision,
	"CAPACITY_EXCEEDED":  ErrCodeCapacityExceeded,
	"APPARATUS_EMPTY":    ErrCodeApparatusEmpty,
	"APPARATUS_OCCUPIED": ErrCodeApparatusOccupied,
	"SUBSTANCE_MISMATCH": ErrCodeSubstanceMismatch,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown ones, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
