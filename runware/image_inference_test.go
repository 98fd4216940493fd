package runware

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/petal-labs/runware/core"
)

func TestImageInferenceDefaults(t *testing.T) {
	c, seen := newTestClient(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "https://im.runware.ai/1.png")
	})

	if _, err := c.ImageInference().PositivePrompt("a cat").Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	task := seen.last(t)
	want := map[string]any{
		"taskType":       "imageInference",
		"positivePrompt": "a cat",
		"model":          DefaultModel,
		"height":         float64(DefaultHeight),
		"width":          float64(DefaultWidth),
		"numberResults":  float64(1),
		"outputType":     "URL",
		"outputFormat":   "PNG",
	}
	for k, v := range want {
		if task[k] != v {
			t.Errorf("task[%q] = %v, want %v", k, task[k], v)
		}
	}
	for _, k := range []string{"negativePrompt", "steps", "CFGScale", "seed", "seedImage", "maskImage", "strength"} {
		if _, ok := task[k]; ok {
			t.Errorf("task[%q] should be omitted when unset", k)
		}
	}
	if id, _ := task["taskUUID"].(string); len(id) != 36 {
		t.Errorf("taskUUID = %q, want a UUID", id)
	}
}

func TestImageInferenceSetters(t *testing.T) {
	c, seen := newTestClient(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "https://im.runware.ai/1.webp")
	})

	_, err := c.TextToImage().
		PositivePrompt("A beautiful sunset").
		NegativePrompt("blur").
		ModelAir("civitai:4384@128713").
		Width(1024).
		Height(768).
		Steps(30).
		CFGScale(7.5).
		NumberResults(1).
		Seed(42).
		OutputFormat(core.OutputFormatWEBP).
		OutputType(core.OutputTypeURL).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	task := seen.last(t)
	want := map[string]any{
		"negativePrompt": "blur",
		"model":          "civitai:4384@128713",
		"width":          float64(1024),
		"height":         float64(768),
		"steps":          float64(30),
		"CFGScale":       7.5,
		"seed":           float64(42),
		"outputFormat":   "WEBP",
	}
	for k, v := range want {
		if task[k] != v {
			t.Errorf("task[%q] = %v, want %v", k, task[k], v)
		}
	}
}

func TestImageInferenceResultShapes(t *testing.T) {
	tests := []struct {
		name       string
		outputType core.OutputType
		urls       []string
		want       core.Result
	}{
		{
			name:       "single url",
			outputType: core.OutputTypeURL,
			urls:       []string{"https://example.com/image.png"},
			want:       core.URLResult("https://example.com/image.png"),
		},
		{
			name:       "no images",
			outputType: core.OutputTypeURL,
			urls:       nil,
			want:       core.Records{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(task map[string]any) (int, any) {
				return http.StatusOK, imageData(task, tt.urls...)
			})

			got, err := c.ImageInference().PositivePrompt("x").OutputType(tt.outputType).Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Run() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestImageInferenceMultipleResultsAreRecords(t *testing.T) {
	c, _ := newTestClient(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "https://x/1.png", "https://x/2.png")
	})

	got, err := c.ImageInference().PositivePrompt("x").NumberResults(2).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	records, ok := got.(core.Records)
	if !ok {
		t.Fatalf("Run() = %T, want core.Records", got)
	}
	if len(records) != 2 || records[1].ImageURL() != "https://x/2.png" || records[0].ImageUUID() != "image-a" {
		t.Errorf("records = %v", records)
	}
}

func TestImageInferenceBase64OutputIsRecords(t *testing.T) {
	c, _ := newTestClient(t, func(task map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"data": []map[string]any{{
			"taskUUID":        task["taskUUID"],
			"imageBase64Data": "aGVsbG8=",
		}}}
	})

	got, err := c.ImageInference().PositivePrompt("x").OutputType(core.OutputTypeBase64Data).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	records, ok := got.(core.Records)
	if !ok || records[0]["imageBase64Data"] != "aGVsbG8=" {
		t.Errorf("Run() = %#v", got)
	}
}

func TestImageInferenceRequiresPrompt(t *testing.T) {
	c := New("k", WithHTTPClient(failingDoer{err: errors.New("must not be called")}))

	_, err := c.ImageInference().Run(context.Background())
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestImageInferenceFreshTaskUUIDPerRun(t *testing.T) {
	c, seen := newTestClient(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "https://x/1.png")
	})

	b := c.ImageInference().PositivePrompt("x")
	for i := 0; i < 2; i++ {
		if _, err := b.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}

	if seen.tasks[0]["taskUUID"] == seen.tasks[1]["taskUUID"] {
		t.Error("each Run should use a new taskUUID")
	}
}
