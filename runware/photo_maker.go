package runware

import (
	"context"

	"github.com/petal-labs/runware/core"
)

// DefaultPhotoMakerModel is the SDXL checkpoint used when no model is set.
const DefaultPhotoMakerModel = "civitai:139562@344487"

// PhotoMaker accepts between one and four reference images.
const maxPhotoMakerInputs = 4

// PhotoMakerStyle is a preset style applied by the photoMaker task.
type PhotoMakerStyle string

const (
	PhotoMakerStyleNone            PhotoMakerStyle = "No style"
	PhotoMakerStyleCinematic       PhotoMakerStyle = "Cinematic"
	PhotoMakerStyleDisneyCharacter PhotoMakerStyle = "Disney Character"
	PhotoMakerStyleDigitalArt      PhotoMakerStyle = "Digital Art"
	PhotoMakerStylePhotographic    PhotoMakerStyle = "Photographic"
	PhotoMakerStyleFantasyArt      PhotoMakerStyle = "Fantasy art"
	PhotoMakerStyleNeonpunk        PhotoMakerStyle = "Neonpunk"
	PhotoMakerStyleEnhance         PhotoMakerStyle = "Enhance"
	PhotoMakerStyleComicBook       PhotoMakerStyle = "Comic book"
	PhotoMakerStyleLowpoly         PhotoMakerStyle = "Lowpoly"
	PhotoMakerStyleLineArt         PhotoMakerStyle = "Line art"
)

// PhotoMaker builds and runs a photoMaker task that composes a subject from
// reference images into new scenes.
type PhotoMaker struct {
	client *Client
	req    photoMakerTask
}

func newPhotoMaker(c *Client) *PhotoMaker {
	return &PhotoMaker{client: c, req: photoMakerTask{
		TaskType:      TaskTypePhotoMaker,
		Model:         DefaultPhotoMakerModel,
		Height:        DefaultHeight,
		Width:         DefaultWidth,
		NumberResults: DefaultNumberResults,
		OutputType:    core.OutputTypeURL,
		OutputFormat:  core.OutputFormatPNG,
	}}
}

// InputImages appends reference images (UUIDs, URLs or data URIs).
func (b *PhotoMaker) InputImages(images ...string) *PhotoMaker {
	b.req.InputImages = append(b.req.InputImages, images...)
	return b
}

// Style sets the preset style.
func (b *PhotoMaker) Style(s PhotoMakerStyle) *PhotoMaker {
	b.req.Style = s
	return b
}

// Strength sets how strongly the references are followed (15..50).
func (b *PhotoMaker) Strength(v int) *PhotoMaker {
	b.req.Strength = &v
	return b
}

// PositivePrompt sets the scene description.
func (b *PhotoMaker) PositivePrompt(s string) *PhotoMaker {
	b.req.PositivePrompt = s
	return b
}

// NegativePrompt sets the text describing what to avoid.
func (b *PhotoMaker) NegativePrompt(s string) *PhotoMaker {
	b.req.NegativePrompt = s
	return b
}

// Model sets the model AIR identifier.
func (b *PhotoMaker) Model(air string) *PhotoMaker {
	b.req.Model = air
	return b
}

// Height sets the image height in pixels.
func (b *PhotoMaker) Height(px int) *PhotoMaker {
	b.req.Height = px
	return b
}

// Width sets the image width in pixels.
func (b *PhotoMaker) Width(px int) *PhotoMaker {
	b.req.Width = px
	return b
}

// Steps sets the number of denoising steps.
func (b *PhotoMaker) Steps(n int) *PhotoMaker {
	b.req.Steps = &n
	return b
}

// CFGScale sets the classifier-free guidance scale.
func (b *PhotoMaker) CFGScale(v float64) *PhotoMaker {
	b.req.CFGScale = &v
	return b
}

// NumberResults sets how many images to generate.
func (b *PhotoMaker) NumberResults(n int) *PhotoMaker {
	b.req.NumberResults = n
	return b
}

// OutputFormat sets the image encoding.
func (b *PhotoMaker) OutputFormat(f core.OutputFormat) *PhotoMaker {
	b.req.OutputFormat = f
	return b
}

// OutputType sets how images are delivered.
func (b *PhotoMaker) OutputType(t core.OutputType) *PhotoMaker {
	b.req.OutputType = t
	return b
}

// Run sends the task. The result shape matches ImageInference.Run.
func (b *PhotoMaker) Run(ctx context.Context) (core.Result, error) {
	switch n := len(b.req.InputImages); {
	case n == 0:
		return nil, invalidInput("at least one input image is required")
	case n > maxPhotoMakerInputs:
		return nil, invalidInput("at most %d input images are accepted, got %d", maxPhotoMakerInputs, n)
	}
	if b.req.PositivePrompt == "" {
		return nil, invalidInput("positive prompt is required")
	}

	req := b.req
	req.TaskUUID = newTaskUUID()

	records, err := b.client.execute(ctx, taskMeta{TaskType: req.TaskType, TaskUUID: req.TaskUUID, Model: req.Model}, req)
	if err != nil {
		return nil, err
	}
	return imageResult(req.OutputType, records), nil
}
