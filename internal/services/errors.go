// Package services provides the business logic layer between handlers
// and the analytics packages. Services own the loaded dataset, its
// enrichment, and goal persistence.
package services

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Error codes returned by the analysis service.
const (
	CodeNoData       = "NO_DATA"
	CodeEmptyImport  = "EMPTY_IMPORT"
	CodeInvalidRange = "INVALID_RANGE"
	CodeInvalidGoal  = "INVALID_GOAL"
	CodeSourceFailed = "SOURCE_FAILED"
	CodeStoreFailed  = "STORE_FAILED"
)
