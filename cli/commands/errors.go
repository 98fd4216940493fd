package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/petal-labs/runware/cli/config"
	"github.com/petal-labs/runware/core"
	"github.com/petal-labs/runware/logging"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitProvider   = 2
	ExitNetwork    = 3
)

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, core.ErrInvalidInput), errors.Is(err, config.ErrNoAPIKey):
		return ExitValidation
	case errors.Is(err, core.ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		return ExitNetwork
	default:
		return ExitProvider
	}
}

// handleError reports err on stderr and attaches its exit code.
func (a *App) handleError(err error) error {
	if err == nil {
		return nil
	}

	var provErr *core.ProviderError
	isProvider := errors.As(err, &provErr)

	if a.jsonOutput {
		body := map[string]any{
			"type":    logging.ErrorClass(err),
			"message": err.Error(),
		}
		if isProvider {
			body["code"] = provErr.Code
			body["message"] = provErr.Message
			body["status"] = provErr.Status
			body["task_uuid"] = provErr.RequestID
			if provErr.Parameter != "" {
				body["parameter"] = provErr.Parameter
			}
		}
		enc := json.NewEncoder(a.stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"error": body})
	} else if isProvider {
		fmt.Fprintf(a.stderr, "Error: %s\n", provErr.Message)
		if provErr.RequestID != "" {
			fmt.Fprintf(a.stderr, "  Code: %s, Task UUID: %s\n", provErr.Code, provErr.RequestID)
		}
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}

	return exitWithCode(exitCodeFor(err), err)
}
