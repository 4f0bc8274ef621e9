package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the machine-readable classification attached to every error
// that crosses an operation boundary.
type Code string

const (
	CodeValidation          Code = "validation_error"
	CodeNotFound            Code = "not_found"
	CodeStorage             Code = "storage_error"
	CodeUnsupportedLanguage Code = "unsupported_language"
	CodeExecTransport       Code = "execution_transport_error"
	CodeExecRuntime         Code = "execution_runtime_error"
	CodeUpstream            Code = "upstream_error"
)

// Error carries a classification code, a human-readable message and an
// optional wrapped cause. Raw driver errors never leave a service without
// being wrapped into one of these.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes two classified errors match on code, so errors.Is can be used
// with the sentinel helpers below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return newf(CodeValidation, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newf(CodeNotFound, format, args...)
}

func Storagef(err error, format string, args ...any) *Error {
	e := newf(CodeStorage, format, args...)
	e.Err = err
	return e
}

func UnsupportedLanguagef(format string, args ...any) *Error {
	return newf(CodeUnsupportedLanguage, format, args...)
}

func ExecTransport(err error, message string) *Error {
	return &Error{Code: CodeExecTransport, Message: message, Err: err}
}

func ExecRuntime(message string) *Error {
	return &Error{Code: CodeExecRuntime, Message: message}
}

func Upstream(err error, message string) *Error {
	return &Error{Code: CodeUpstream, Message: message, Err: err}
}

// CodeOf returns the classification of err, or ("", false) when err was
// never classified.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// MessageOf returns the human-readable message, falling back to
// err.Error() for unclassified errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a classified error to the status the external surface
// responds with. Unclassified errors are treated as internal faults.
func HTTPStatus(err error) int {
	code, ok := CodeOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch code {
	case CodeValidation, CodeUnsupportedLanguage:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
