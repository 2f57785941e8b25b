package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Quantity arithmetic errors
var (
	ErrDimensionMismatch = NewDomainError("DIMENSION_MISMATCH", "Quantities have different physical dimensions")
	ErrDivisionByZero    = NewDomainError("DIVISION_BY_ZERO", "Division by a zero-valued quantity")
	ErrOverflow          = NewDomainError("OVERFLOW", "Value exceeds the representable range")
	ErrInvalidPrecision  = NewDomainError("INVALID_PRECISION", "Significant digit count is out of range")
)

// Laboratory errors
var (
	ErrCapacityExceeded  = NewDomainError("CAPACITY_EXCEEDED", "Volume exceeds apparatus capacity")
	ErrApparatusEmpty    = NewDomainError("APPARATUS_EMPTY", "Apparatus holds no solution")
	ErrApparatusOccupied = NewDomainError("APPARATUS_OCCUPIED", "Apparatus already holds a solution")
	ErrSubstanceMismatch = NewDomainError("SUBSTANCE_MISMATCH", "Substances with the same name differ")
)
