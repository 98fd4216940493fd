package runware

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petal-labs/runware/core"
)

func uploadReply(task map[string]any) (int, any) {
	return http.StatusOK, map[string]any{"data": []map[string]any{{
		"taskType":  "imageUpload",
		"taskUUID":  task["taskUUID"],
		"imageUUID": "989ba605-1449-4e1e-b462-cd83ec9c1a67",
	}}}
}

func TestImageUploadFromURL(t *testing.T) {
	c, seen := newTestClient(t, uploadReply)

	id, err := c.ImageUpload().UploadFromURL("https://example.com/cat.png").Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if id != "989ba605-1449-4e1e-b462-cd83ec9c1a67" {
		t.Errorf("Run() = %q", id)
	}

	task := seen.last(t)
	if task["taskType"] != "imageUpload" || task["image"] != "https://example.com/cat.png" {
		t.Errorf("task = %v", task)
	}
}

func TestImageUploadFromLocalPath(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D}
	path := filepath.Join(t.TempDir(), "mask")
	if err := os.WriteFile(path, png, 0o600); err != nil {
		t.Fatal(err)
	}

	c, seen := newTestClient(t, uploadReply)
	if _, err := c.ImageUpload().UploadFromLocalPath(path).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	image, _ := seen.last(t)["image"].(string)
	if !strings.HasPrefix(image, "data:image/png;base64,") {
		t.Errorf("image = %q, want a PNG data URI", image)
	}
}

func TestImageUploadFromBase64(t *testing.T) {
	c, seen := newTestClient(t, uploadReply)

	if _, err := c.ImageUpload().UploadFromBase64("data:image/webp;base64,UklGRg==").Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := seen.last(t)["image"]; got != "data:image/webp;base64,UklGRg==" {
		t.Errorf("image = %v", got)
	}
}

func TestImageUploadInvalidInput(t *testing.T) {
	c := New("k", WithHTTPClient(failingDoer{err: errors.New("must not be called")}))
	missing := filepath.Join(t.TempDir(), "missing.png")

	tests := []struct {
		name string
		b    *ImageUpload
	}{
		{"no source", c.ImageUpload()},
		{"empty url", c.ImageUpload().UploadFromURL("")},
		{"empty path", c.ImageUpload().UploadFromLocalPath("")},
		{"empty base64", c.ImageUpload().UploadFromBase64("")},
		{"missing file", c.ImageUpload().UploadFromLocalPath(missing)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.b.Run(context.Background()); !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestImageUploadWithoutUUID(t *testing.T) {
	c, _ := newTestClient(t, func(task map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"data": []map[string]any{}}
	})

	_, err := c.ImageUpload().UploadFromURL("https://example.com/cat.png").Run(context.Background())
	if !errors.Is(err, core.ErrDecode) {
		t.Errorf("error = %v, want ErrDecode", err)
	}
}

func TestDetectImageMIME(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{"png ext", "a.PNG", nil, "image/png"},
		{"jpeg ext", "a.jpeg", nil, "image/jpeg"},
		{"webp ext", "a.webp", nil, "image/webp"},
		{"jpeg magic", "blob", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0, 0, 0, 0, 0}, "image/jpeg"},
		{"webp magic", "blob", []byte("RIFF\x00\x00\x00\x00WEBP"), "image/webp"},
		{"unknown", "blob", []byte("short"), "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectImageMIME(tt.filename, tt.data); got != tt.want {
				t.Errorf("detectImageMIME() = %q, want %q", got, tt.want)
			}
		})
	}
}
