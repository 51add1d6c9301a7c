package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// AppError is the application error returned to HTTP callers
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error to errors.Is
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Interview Errors
func ErrInvalidState(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_INTERVIEW_INVALID_STATE,
		Message:  "Operation not allowed in current interview state",
	}
}

func ErrEmptyAnswer() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INTERVIEW_EMPTY_ANSWER,
		Message:  "Please enter your answer before submitting",
	}
}

func ErrNoQuestionsAvailable() AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_INTERVIEW_NO_QUESTIONS,
		Message:  "No questions available for this interview",
	}
}

func ErrSessionNotFound(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_INTERVIEW_SESSION_NOT_FOUND,
		Message:  "Interview session not found",
	}.WithDetail("session_id", sessionID)
}

func ErrSessionBusy(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_INTERVIEW_SESSION_BUSY,
		Message:  "Interview session is processing another request",
	}.WithDetail("session_id", sessionID)
}

func ErrInvalidCandidate(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INTERVIEW_INVALID_CANDIDATE,
		Message:  "Invalid candidate profile",
	}
}

func ErrDuplicateQuestion(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INTERVIEW_DUPLICATE_QUESTION,
		Message:  "Question ids must be unique",
	}
}

// Realtime Errors
func ErrUnknownConnection(connectionID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_REALTIME_UNKNOWN_CONNECTION,
		Message:  "Connection not registered",
	}.WithDetail("connection_id", connectionID)
}

// Integration Errors
func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}

// FromDomain maps a domain error onto its AppError. The key identifies the
// session or connection the error refers to.
func FromDomain(err error, key string) AppError {
	var appErr AppError
	switch {
	case stdErrors.As(err, &appErr):
		return appErr
	case stdErrors.Is(err, entities.ErrEmptyAnswer):
		return ErrEmptyAnswer()
	case stdErrors.Is(err, entities.ErrInvalidState), stdErrors.Is(err, entities.ErrAlreadyAnswered):
		return ErrInvalidState(err).WithDetail("session_id", key)
	case stdErrors.Is(err, entities.ErrNoQuestionsAvailable):
		return ErrNoQuestionsAvailable()
	case stdErrors.Is(err, entities.ErrSessionNotFound):
		return ErrSessionNotFound(key)
	case stdErrors.Is(err, entities.ErrSessionBusy):
		return ErrSessionBusy(key)
	case stdErrors.Is(err, entities.ErrInvalidCandidate):
		return ErrInvalidCandidate(err)
	case stdErrors.Is(err, entities.ErrDuplicateQuestion):
		return ErrDuplicateQuestion(err)
	case stdErrors.Is(err, entities.ErrUnknownConnection):
		return ErrUnknownConnection(key)
	}
	return ErrInternal(err)
}
