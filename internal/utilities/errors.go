package utilities

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies failure of an operation
type Kind string

// Error kinds
const (
	KindValidation   Kind = "validation_error"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindAuthRequired Kind = "auth_required"
	KindForbidden    Kind = "forbidden"
	KindInternal     Kind = "internal_error"
)

// Postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Status maps kind to HTTP status code
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindAuthRequired:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// AppError is error returned across operation boundary
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Validation is missing or malformed input
func Validation(msg string) *AppError { return &AppError{Kind: KindValidation, Message: msg} }

// NotFound is referenced entity absent
func NotFound(msg string) *AppError { return &AppError{Kind: KindNotFound, Message: msg} }

// Conflict is duplicate record or state that forbids the operation
func Conflict(msg string) *AppError { return &AppError{Kind: KindConflict, Message: msg} }

// AuthRequired is missing or invalid credential
func AuthRequired(msg string) *AppError { return &AppError{Kind: KindAuthRequired, Message: msg} }

// Forbidden is authenticated user without required role
func Forbidden(msg string) *AppError { return &AppError{Kind: KindForbidden, Message: msg} }

// Internal is storage failure or unexpected error
func Internal(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns kind of err, unknown errors are internal
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns user visible message of err
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// ClassifyDBError converts storage error into AppError.
// Unique violation become conflict, foreign key violation become not found.
func ClassifyDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AppError{Kind: KindNotFound, Message: msg, Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &AppError{Kind: KindConflict, Message: msg, Err: err}
		case pgForeignKeyViolation:
			return &AppError{Kind: KindNotFound, Message: msg, Err: err}
		}
	}
	return Internal(msg, err)
}
