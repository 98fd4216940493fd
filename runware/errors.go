package runware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/petal-labs/runware/core"
)

// normalizeError converts a non-2xx response into a ProviderError carrying the
// sentinel for the status code.
func normalizeError(status int, body []byte, taskUUID string) error {
	var resp apiResponse
	_ = json.Unmarshal(body, &resp)

	if len(resp.Errors) > 0 {
		return newProviderError(status, resp.Errors[0], taskUUID, sentinelForStatus(status))
	}

	message := http.StatusText(status)
	if len(body) > 0 && !json.Valid(body) {
		message = string(body)
	}
	return &core.ProviderError{
		Provider:  providerID,
		Status:    status,
		RequestID: taskUUID,
		Code:      "unknown",
		Message:   message,
		Err:       sentinelForStatus(status),
	}
}

// taskError converts an "errors" entry delivered with a 2xx status.
func taskError(status int, e apiError, taskUUID string) error {
	return newProviderError(status, e, taskUUID, core.ErrBadRequest)
}

func newProviderError(status int, e apiError, taskUUID string, sentinel error) error {
	message := e.Message
	if message == "" {
		message = http.StatusText(status)
	}
	id := e.TaskUUID
	if id == "" {
		id = taskUUID
	}
	return &core.ProviderError{
		Provider:  providerID,
		Status:    status,
		RequestID: id,
		Code:      e.Code,
		Parameter: e.Parameter,
		Message:   message,
		Err:       sentinel,
	}
}

// sentinelForStatus maps an HTTP status code to a core sentinel error.
func sentinelForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return core.ErrBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return core.ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return core.ErrRateLimited
	case status >= 500:
		return core.ErrServer
	default:
		return core.ErrBadRequest
	}
}

// newNetworkError wraps transport failures.
func newNetworkError(err error) error {
	return &core.ProviderError{
		Provider: providerID,
		Code:     "network_error",
		Message:  err.Error(),
		Err:      core.ErrNetwork,
	}
}

// newDecodeError wraps JSON decode failures.
func newDecodeError(err error) error {
	return &core.ProviderError{
		Provider: providerID,
		Code:     "decode_error",
		Message:  err.Error(),
		Err:      core.ErrDecode,
	}
}

// invalidInput reports a builder validation failure.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("runware: %w: %s", core.ErrInvalidInput, fmt.Sprintf(format, args...))
}
