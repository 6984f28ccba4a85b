package common

import (
	"fmt"
	"go-card-bank/logger"
	"io"

	"github.com/sirupsen/logrus"
)

// Kind classifies an AppError for logging and metrics.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindUnauthorized      Kind = "unauthorized"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// AppError is a failed console command: Message is what the user sees,
// Err is the internal cause and is only logged.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(kind Kind, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Send prints the user message to w and logs the internal cause, if any.
func (e *AppError) Send(w io.Writer) {
	if e.Err != nil {
		entry := logger.Log.WithFields(logrus.Fields{
			"kind":           e.Kind,
			"internal_error": e.Err.Error(),
		})
		if e.Kind == KindInternal {
			entry.Error(e.Message)
		} else {
			entry.Info(e.Message)
		}
	}

	fmt.Fprintln(w, e.Message)
}
