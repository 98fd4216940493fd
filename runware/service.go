package runware

import (
	"context"

	"github.com/petal-labs/runware/core"
)

// Service is the application-facing entry point bound as "runware". It turns a
// loose parameter set into an image inference task and normalizes the result.
// Service is safe for concurrent use.
type Service struct {
	client *Client
}

// NewService creates a Service backed by client.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Client returns the underlying SDK client.
func (s *Service) Client() *Client {
	return s.client
}

// ImageInference generates images. Each non-nil field of p is applied to a fresh
// ImageInference builder exactly once; nil fields keep the SDK defaults. The
// output type is always forced to URL.
//
// The result is always a list: a single URL becomes [{"imageURL": url}], record
// lists are returned as the API sent them. Errors from the API call are
// returned unchanged.
func (s *Service) ImageInference(ctx context.Context, p ImageInferenceParams) ([]core.Record, error) {
	b := s.client.ImageInference()

	if p.PositivePrompt != nil {
		b.PositivePrompt(*p.PositivePrompt)
	}
	if p.NegativePrompt != nil {
		b.NegativePrompt(*p.NegativePrompt)
	}
	if p.Model != nil {
		b.Model(*p.Model)
	}
	if p.Height != nil {
		b.Height(*p.Height)
	}
	if p.Width != nil {
		b.Width(*p.Width)
	}
	if p.Steps != nil {
		b.Steps(*p.Steps)
	}
	if p.CFGScale != nil {
		b.CFGScale(*p.CFGScale)
	}
	if p.NumberResults != nil {
		b.NumberResults(*p.NumberResults)
	}
	if p.OutputFormat != nil {
		b.OutputFormat(core.ParseOutputFormat(*p.OutputFormat))
	}

	b.OutputType(core.OutputTypeURL)

	res, err := b.Run(ctx)
	if err != nil {
		return nil, err
	}
	return core.NormalizeResult(res), nil
}

// ImageInferenceMap is ImageInference for a loosely typed parameter map; see
// ParamsFromMap for the accepted keys and coercions.
func (s *Service) ImageInferenceMap(ctx context.Context, params map[string]any) ([]core.Record, error) {
	return s.ImageInference(ctx, ParamsFromMap(params))
}
