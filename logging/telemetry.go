package logging

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/petal-labs/runware/core"
)

var _ core.TelemetryHook = (*TelemetryHook)(nil)

// TelemetryHook logs SDK requests. Prompts and keys are never part of the
// events, so nothing sensitive reaches the log.
type TelemetryHook struct {
	logger *zap.Logger
}

// NewTelemetryHook returns a hook that logs to logger. A nil logger disables
// logging.
func NewTelemetryHook(logger *zap.Logger) *TelemetryHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelemetryHook{logger: logger.Named("runware")}
}

// OnRequestStart logs the task at debug level.
func (h *TelemetryHook) OnRequestStart(e core.RequestStartEvent) {
	h.logger.Debug("request started",
		zap.String("task_type", e.TaskType),
		zap.String("task_uuid", e.TaskUUID),
		zap.String("model", e.Model),
	)
}

// OnRequestEnd logs the outcome. Failures are logged at warn level with their
// error class.
func (h *TelemetryHook) OnRequestEnd(e core.RequestEndEvent) {
	fields := []zap.Field{
		zap.String("task_type", e.TaskType),
		zap.String("task_uuid", e.TaskUUID),
		zap.String("model", e.Model),
		zap.Duration("duration", e.Duration()),
	}

	if e.Err != nil {
		fields = append(fields, zap.String("error_class", ErrorClass(e.Err)), zap.Error(e.Err))
		h.logger.Warn("request failed", fields...)
		return
	}

	fields = append(fields, zap.Int("results", e.Results))
	h.logger.Info("request completed", fields...)
}

// ErrorClass names the category of err for logs and exit codes.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, core.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, core.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, core.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, core.ErrBadRequest):
		return "bad_request"
	case errors.Is(err, core.ErrServer):
		return "server"
	case errors.Is(err, core.ErrNetwork):
		return "network"
	case errors.Is(err, core.ErrDecode):
		return "decode"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}
