package runware

import (
	"context"

	"github.com/petal-labs/runware/core"
)

// Defaults applied to every new image task.
const (
	DefaultModel         = "runware:100@1"
	DefaultWidth         = 512
	DefaultHeight        = 512
	DefaultNumberResults = 1
)

// ImageInference builds and runs a text-to-image task.
// It is NOT safe for concurrent use; create one per request.
type ImageInference struct {
	client *Client
	req    imageTask
}

func newImageInference(c *Client) *ImageInference {
	return &ImageInference{client: c, req: defaultImageTask()}
}

func defaultImageTask() imageTask {
	return imageTask{
		TaskType:      TaskTypeImageInference,
		Model:         DefaultModel,
		Height:        DefaultHeight,
		Width:         DefaultWidth,
		NumberResults: DefaultNumberResults,
		OutputType:    core.OutputTypeURL,
		OutputFormat:  core.OutputFormatPNG,
	}
}

// PositivePrompt sets the text guiding the generation.
func (b *ImageInference) PositivePrompt(s string) *ImageInference {
	b.req.PositivePrompt = s
	return b
}

// NegativePrompt sets the text describing what to avoid.
func (b *ImageInference) NegativePrompt(s string) *ImageInference {
	b.req.NegativePrompt = s
	return b
}

// Model sets the model AIR identifier, e.g. "runware:100@1".
func (b *ImageInference) Model(air string) *ImageInference {
	b.req.Model = air
	return b
}

// ModelAir is an alias of Model.
func (b *ImageInference) ModelAir(air string) *ImageInference {
	return b.Model(air)
}

// Height sets the image height in pixels.
func (b *ImageInference) Height(px int) *ImageInference {
	b.req.Height = px
	return b
}

// Width sets the image width in pixels.
func (b *ImageInference) Width(px int) *ImageInference {
	b.req.Width = px
	return b
}

// Steps sets the number of denoising steps.
func (b *ImageInference) Steps(n int) *ImageInference {
	b.req.Steps = &n
	return b
}

// CFGScale sets the classifier-free guidance scale.
func (b *ImageInference) CFGScale(v float64) *ImageInference {
	b.req.CFGScale = &v
	return b
}

// NumberResults sets how many images to generate.
func (b *ImageInference) NumberResults(n int) *ImageInference {
	b.req.NumberResults = n
	return b
}

// OutputFormat sets the image encoding.
func (b *ImageInference) OutputFormat(f core.OutputFormat) *ImageInference {
	b.req.OutputFormat = f
	return b
}

// OutputType sets how images are delivered.
func (b *ImageInference) OutputType(t core.OutputType) *ImageInference {
	b.req.OutputType = t
	return b
}

// Seed fixes the random seed.
func (b *ImageInference) Seed(seed int64) *ImageInference {
	b.req.Seed = &seed
	return b
}

// Run sends the task. With the URL output type and a single image the result is
// a core.URLResult; otherwise it is core.Records.
func (b *ImageInference) Run(ctx context.Context) (core.Result, error) {
	if b.req.PositivePrompt == "" {
		return nil, invalidInput("positive prompt is required")
	}
	return b.client.runImageTask(ctx, b.req)
}

// runImageTask sends a copy of req under a fresh task UUID so builders can be
// run more than once.
func (c *Client) runImageTask(ctx context.Context, req imageTask) (core.Result, error) {
	req.TaskUUID = newTaskUUID()

	records, err := c.execute(ctx, taskMeta{TaskType: req.TaskType, TaskUUID: req.TaskUUID, Model: req.Model}, req)
	if err != nil {
		return nil, err
	}
	return imageResult(req.OutputType, records), nil
}

func imageResult(outputType core.OutputType, records core.Records) core.Result {
	if outputType == core.OutputTypeURL && len(records) == 1 {
		if url := records[0].ImageURL(); url != "" {
			return core.URLResult(url)
		}
	}
	return records
}
