package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	ConfigurationIncomplete Kind = "configuration_incomplete"
	InvalidURL              Kind = "invalid_url"
	ServerError             Kind = "server_error"
	NetworkFailure          Kind = "network_failure"
	ParseWarning            Kind = "parse_warning"
	ParseFailure            Kind = "parse_failure"
	Canceled                Kind = "canceled"
	IOFailure               Kind = "io_failure"
	Internal                Kind = "internal"
)

type AppError struct {
	Kind       Kind
	Op         string
	Path       string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	msg := "unknown error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Path, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Status builds a ServerError for a non-2xx response.
func Status(op, path string, code int) error {
	return &AppError{
		Kind:       ServerError,
		Op:         op,
		Path:       path,
		StatusCode: code,
		Err:        fmt.Errorf("unexpected status %d %s", code, http.StatusText(code)),
	}
}

// KindOf returns the Kind of the outermost AppError in err's chain, or
// Internal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}

func UserMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case ConfigurationIncomplete:
		return fmt.Sprintf("Setup incomplete: %v. Configure the server address, credentials and folder first.", appErr.Err)
	case InvalidURL:
		return fmt.Sprintf("Invalid server address: %v", appErr.Err)
	case ServerError:
		return fmt.Sprintf("Server error: %d. Check the server address and credentials.", appErr.StatusCode)
	case NetworkFailure:
		return "Network error: could not reach the server. Check your connection."
	case ParseFailure:
		return fmt.Sprintf("Could not read the server response: %v", appErr.Err)
	case ParseWarning:
		return fmt.Sprintf("Unreadable date %q", appErr.Path)
	case Canceled:
		return "Check canceled."
	case IOFailure:
		return fmt.Sprintf("I/O error: %s", appErr.Path)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
