package runware

import (
	"context"

	"github.com/petal-labs/runware/core"
)

// Inpainting builds and runs an imageInference task that repaints the masked
// area of a seed image. Seed and mask accept an uploaded image UUID, a URL or a
// data URI.
type Inpainting struct {
	client *Client
	req    imageTask
}

func newInpainting(c *Client) *Inpainting {
	return &Inpainting{client: c, req: defaultImageTask()}
}

// SeedImage sets the image to repaint.
func (b *Inpainting) SeedImage(image string) *Inpainting {
	b.req.SeedImage = image
	return b
}

// MaskImage sets the mask; white areas are repainted.
func (b *Inpainting) MaskImage(image string) *Inpainting {
	b.req.MaskImage = image
	return b
}

// Strength sets how far the result may depart from the seed image (0..1).
func (b *Inpainting) Strength(v float64) *Inpainting {
	b.req.Strength = &v
	return b
}

// PositivePrompt sets the text describing the repainted area.
func (b *Inpainting) PositivePrompt(s string) *Inpainting {
	b.req.PositivePrompt = s
	return b
}

// NegativePrompt sets the text describing what to avoid.
func (b *Inpainting) NegativePrompt(s string) *Inpainting {
	b.req.NegativePrompt = s
	return b
}

// Model sets the model AIR identifier.
func (b *Inpainting) Model(air string) *Inpainting {
	b.req.Model = air
	return b
}

// Height sets the image height in pixels.
func (b *Inpainting) Height(px int) *Inpainting {
	b.req.Height = px
	return b
}

// Width sets the image width in pixels.
func (b *Inpainting) Width(px int) *Inpainting {
	b.req.Width = px
	return b
}

// Steps sets the number of denoising steps.
func (b *Inpainting) Steps(n int) *Inpainting {
	b.req.Steps = &n
	return b
}

// CFGScale sets the classifier-free guidance scale.
func (b *Inpainting) CFGScale(v float64) *Inpainting {
	b.req.CFGScale = &v
	return b
}

// NumberResults sets how many images to generate.
func (b *Inpainting) NumberResults(n int) *Inpainting {
	b.req.NumberResults = n
	return b
}

// OutputFormat sets the image encoding.
func (b *Inpainting) OutputFormat(f core.OutputFormat) *Inpainting {
	b.req.OutputFormat = f
	return b
}

// OutputType sets how images are delivered.
func (b *Inpainting) OutputType(t core.OutputType) *Inpainting {
	b.req.OutputType = t
	return b
}

// Run sends the task.
func (b *Inpainting) Run(ctx context.Context) (core.Result, error) {
	switch {
	case b.req.SeedImage == "":
		return nil, invalidInput("seed image is required for inpainting")
	case b.req.MaskImage == "":
		return nil, invalidInput("mask image is required for inpainting")
	case b.req.PositivePrompt == "":
		return nil, invalidInput("positive prompt is required")
	}
	return b.client.runImageTask(ctx, b.req)
}
