package core

import "time"

// TelemetryHook receives notifications about each API round trip.
//
// Events carry operational metadata only. API keys, prompts and image data are
// never included, so events can be logged or exported as they are.
type TelemetryHook interface {
	// OnRequestStart is called before the request is sent.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called once the response was decoded or the request failed.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting request.
type RequestStartEvent struct {
	Provider string    // Always "runware" for this SDK
	TaskType string    // e.g. "imageInference", "imageUpload"
	TaskUUID string    // Client generated task identifier
	Model    string    // Model AIR, empty for tasks without a model
	Start    time.Time // When the request started
}

// RequestEndEvent contains metadata about a completed request.
type RequestEndEvent struct {
	Provider string
	TaskType string
	TaskUUID string
	Model    string
	Start    time.Time
	End      time.Time
	Results  int   // Number of result objects returned
	Err      error // nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

var _ TelemetryHook = NoopTelemetryHook{}
