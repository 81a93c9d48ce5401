package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindUnauthenticated    Kind = "AuthenticationError"
	KindAuthorization      Kind = "AuthorizationError"
	KindNotFound           Kind = "NotFoundError"
	KindConflict           Kind = "ConflictError"
	KindOptimisticConflict Kind = "OptimisticConflict"
	KindInvalidTransition  Kind = "InvalidTransitionError"
	KindConfiguration      Kind = "ConfigurationError"
	KindStorage            Kind = "StorageError"
	KindSubmission         Kind = "SubmissionError"
)

// Error is the single error type crossing the service boundary. Controllers
// never inspect messages, only Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, "%s", message)
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(KindAuthorization, format, args...)
}

func NotFound(entity string, id interface{}) *Error {
	return New(KindNotFound, "%s %v not found", entity, id)
}

func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, format, args...)
}

func OptimisticConflict(entity string, id interface{}) *Error {
	return New(KindOptimisticConflict, "%s %v was modified concurrently, reload and retry", entity, id)
}

func InvalidTransition(format string, args ...interface{}) *Error {
	return New(KindInvalidTransition, format, args...)
}

func Configuration(format string, args ...interface{}) *Error {
	return New(KindConfiguration, format, args...)
}

func Storage(err error, message string) *Error {
	return Wrap(err, KindStorage, message)
}

// Submission hides the underlying cause from the caller; the cause stays
// reachable through Unwrap for logging.
func Submission(err error) *Error {
	return Wrap(err, KindSubmission, "payment request submission failed")
}

// KindOf reports the Kind of err, or KindStorage for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindOptimisticConflict, KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromStorage translates a gorm/pgx error into the taxonomy. Errors that are
// already *Error pass through untouched.
func FromStorage(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(err, KindNotFound, message)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Wrap(err, KindConflict, message)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return Wrap(err, KindConflict, message)
		case "23503":
			return Wrap(err, KindConflict, message+": referenced by other records")
		}
	}
	return Storage(err, message)
}
