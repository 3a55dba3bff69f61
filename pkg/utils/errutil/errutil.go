package errutil

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/utils/logging"
)

var sentryEnabled atomic.Bool

// EnableSentry turns on Sentry capture for errors passed to Handle and
// HandleHTTP. sentry.Init must have been called by the logger configuration.
func EnableSentry() {
	sentryEnabled.Store(true)
}

// Handle logs the error with a message and returns an appropriate user-facing error.
// This function ensures that all errors, especially 5xx errors, are properly logged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	// Extract goerr values for structured logging
	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	if sentryEnabled.Load() {
		sentry.CaptureException(err)
	}

	return err
}

// HandleHTTP logs the error and writes an appropriate HTTP error response.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	if sentryEnabled.Load() && statusCode >= 500 {
		sentry.CaptureException(err)
	}

	http.Error(w, err.Error(), statusCode)
}
