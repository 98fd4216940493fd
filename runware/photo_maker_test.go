package runware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/petal-labs/runware/core"
)

func TestPhotoMakerRun(t *testing.T) {
	c, seen := newTestClient(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "https://im.runware.ai/p1.png", "https://im.runware.ai/p2.png")
	})

	got, err := c.PhotoMaker().
		InputImages("uuid-1", "uuid-2").
		InputImages("https://example.com/face.jpg").
		Style(PhotoMakerStyleCinematic).
		Strength(20).
		PositivePrompt("rwre woman as an astronaut").
		NumberResults(2).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	records, ok := got.(core.Records)
	if !ok || len(records) != 2 {
		t.Fatalf("Run() = %#v, want two records", got)
	}

	task := seen.last(t)
	if task["taskType"] != "photoMaker" || task["style"] != "Cinematic" || task["strength"] != float64(20) {
		t.Errorf("task = %v", task)
	}
	if task["model"] != DefaultPhotoMakerModel {
		t.Errorf("model = %v, want %s", task["model"], DefaultPhotoMakerModel)
	}
	inputs, _ := task["inputImages"].([]any)
	if len(inputs) != 3 || inputs[2] != "https://example.com/face.jpg" {
		t.Errorf("inputImages = %v", task["inputImages"])
	}
}

func TestPhotoMakerValidation(t *testing.T) {
	c := New("k", WithHTTPClient(failingDoer{err: errors.New("must not be called")}))

	tests := []struct {
		name string
		b    *PhotoMaker
	}{
		{"no inputs", c.PhotoMaker().PositivePrompt("p")},
		{"too many inputs", c.PhotoMaker().InputImages("1", "2", "3", "4", "5").PositivePrompt("p")},
		{"no prompt", c.PhotoMaker().InputImages("1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.b.Run(context.Background()); !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
