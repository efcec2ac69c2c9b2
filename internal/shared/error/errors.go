package error

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// DomainError is a sentinel error identified by its errInfo (e.g. "MEMBER_NOT_FOUND").
type DomainError interface {
	error
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string {
	return e.errInfo
}

func (e *domainSentinel) Info() string {
	return e.errInfo
}

// ErrorResponse is the JSON response structure for errors
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"` // client message
}

// WithMessage returns a copy with the client message replaced.
func (r ErrorResponse) WithMessage(message string) ErrorResponse {
	r.Message = message
	return r
}

// Common errors
var (
	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-001", // METHOD_ARGUMENT_NOT_VALID
		Message: "잘못된 요청입니다.",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-002", // INVALID_REQUEST
		Message: "잘못된 요청 형식입니다.",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "ERROR-003", // INTERNAL_SERVER_ERROR
		Message: "서버 내부 오류가 발생했습니다.",
	}

	// Unauthorized indicates a missing or rejected access token
	Unauthorized = ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "로그인을 해주세요.",
	}

	// RequestTimeout indicates the request deadline passed before a response was written
	RequestTimeout = ErrorResponse{
		Status:  http.StatusGatewayTimeout,
		Code:    "ERROR-004", // REQUEST_TIMEOUT
		Message: "요청 처리 시간이 초과되었습니다.",
	}
)

var (
	registryMu           sync.RWMutex
	domainErrorResponses = map[string]ErrorResponse{}
)

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// RegisterDomainErrorResponse maps a domain errInfo to its HTTP response.
// Registrations happen in package init; registering the same errInfo twice panics.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := domainErrorResponses[errInfo]; exists {
		panic(fmt.Sprintf("error: duplicate domain error registration: %s", errInfo))
	}
	domainErrorResponses[errInfo] = resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	var domainErr DomainError
	if !errors.As(err, &domainErr) {
		return ErrorResponse{}, false
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	resp, ok := domainErrorResponses[domainErr.Info()]
	return resp, ok
}

// ResponseFor resolves err, falling back to InternalServerError for unregistered errors.
func ResponseFor(err error) ErrorResponse {
	if resp, ok := ResolveDomainError(err); ok {
		return resp
	}
	return InternalServerError
}
