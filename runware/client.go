package runware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/petal-labs/runware/core"
)

// DefaultAPIKeyEnvVar is the environment variable name for the Runware API key.
const DefaultAPIKeyEnvVar = "RUNWARE_API_KEY"

// ErrAPIKeyNotFound is returned when the API key environment variable is not set.
var ErrAPIKeyNotFound = errors.New("runware: RUNWARE_API_KEY environment variable not set")

const providerID = "runware"

// Client talks to the Runware task API. It holds no per-request state and is
// safe for concurrent use; the capability builders it hands out are not.
type Client struct {
	config Config
}

// New creates a client with the given API key and options. The key is not
// checked until the API rejects it.
func New(apiKey string, opts ...Option) *Client {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Telemetry:  core.NoopTelemetryHook{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{config: cfg}
}

// NewFromEnv creates a client using the RUNWARE_API_KEY environment variable.
func NewFromEnv(opts ...Option) (*Client, error) {
	apiKey := os.Getenv(DefaultAPIKeyEnvVar)
	if apiKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	return New(apiKey, opts...), nil
}

// ID returns the provider identifier.
func (c *Client) ID() string {
	return providerID
}

// BaseURL returns the configured task endpoint.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// ImageInference starts a new text-to-image task.
func (c *Client) ImageInference() *ImageInference {
	return newImageInference(c)
}

// TextToImage is an alias of ImageInference.
func (c *Client) TextToImage() *ImageInference {
	return newImageInference(c)
}

// Inpainting starts a new inpainting task.
func (c *Client) Inpainting() *Inpainting {
	return newInpainting(c)
}

// ImageUpload starts a new upload task.
func (c *Client) ImageUpload() *ImageUpload {
	return &ImageUpload{client: c}
}

// PhotoMaker starts a new PhotoMaker task.
func (c *Client) PhotoMaker() *PhotoMaker {
	return newPhotoMaker(c)
}

func (c *Client) buildHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+c.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	for key, values := range c.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}
	return headers
}

// execute posts a single task and returns the result objects that belong to it.
func (c *Client) execute(ctx context.Context, t taskMeta, payload any) (core.Records, error) {
	start := time.Now()
	c.config.Telemetry.OnRequestStart(core.RequestStartEvent{
		Provider: providerID,
		TaskType: t.TaskType,
		TaskUUID: t.TaskUUID,
		Model:    t.Model,
		Start:    start,
	})

	records, err := c.post(ctx, t, payload)

	c.config.Telemetry.OnRequestEnd(core.RequestEndEvent{
		Provider: providerID,
		TaskType: t.TaskType,
		TaskUUID: t.TaskUUID,
		Model:    t.Model,
		Start:    start,
		End:      time.Now(),
		Results:  len(records),
		Err:      err,
	})
	return records, err
}

func (c *Client) post(ctx context.Context, t taskMeta, payload any) (core.Records, error) {
	// The API accepts a batch of tasks; the SDK always sends one.
	body, err := json.Marshal([]any{payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header = c.buildHeaders()

	resp, err := c.config.HTTPClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("runware: %w", ctxErr)
		}
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, normalizeError(resp.StatusCode, raw, t.TaskUUID)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, newDecodeError(err)
	}
	if len(apiResp.Errors) > 0 {
		return nil, taskError(resp.StatusCode, apiResp.Errors[0], t.TaskUUID)
	}

	return apiResp.recordsFor(t.TaskUUID), nil
}

func newTaskUUID() string {
	return uuid.NewString()
}
