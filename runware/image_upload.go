package runware

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/petal-labs/runware/core"
)

// ImageUpload builds and runs an imageUpload task. The uploaded image can then
// be referenced by its UUID in other tasks.
type ImageUpload struct {
	client *Client
	source uploadSource
	value  string
}

type uploadSource int

const (
	sourceNone uploadSource = iota
	sourceURL
	sourceLocalPath
	sourceBase64
)

// UploadFromURL uploads the image at a public URL.
func (b *ImageUpload) UploadFromURL(url string) *ImageUpload {
	b.source, b.value = sourceURL, url
	return b
}

// UploadFromLocalPath uploads a file from disk. The file is read when Run is
// called.
func (b *ImageUpload) UploadFromLocalPath(path string) *ImageUpload {
	b.source, b.value = sourceLocalPath, path
	return b
}

// UploadFromBase64 uploads raw base64 image data or a data URI.
func (b *ImageUpload) UploadFromBase64(data string) *ImageUpload {
	b.source, b.value = sourceBase64, data
	return b
}

// Run uploads the image and returns its imageUUID.
func (b *ImageUpload) Run(ctx context.Context) (string, error) {
	image, err := b.image()
	if err != nil {
		return "", err
	}

	req := uploadTask{
		TaskType: TaskTypeImageUpload,
		TaskUUID: newTaskUUID(),
		Image:    image,
	}

	records, err := b.client.execute(ctx, taskMeta{TaskType: req.TaskType, TaskUUID: req.TaskUUID}, req)
	if err != nil {
		return "", err
	}

	for _, rec := range records {
		if id := rec.ImageUUID(); id != "" {
			return id, nil
		}
	}
	return "", &core.ProviderError{
		Provider:  providerID,
		RequestID: req.TaskUUID,
		Code:      "decode_error",
		Message:   "response contained no imageUUID",
		Err:       core.ErrDecode,
	}
}

// image resolves the configured source into the value sent as "image".
func (b *ImageUpload) image() (string, error) {
	switch b.source {
	case sourceURL:
		if b.value == "" {
			return "", invalidInput("image URL is empty")
		}
		return b.value, nil
	case sourceBase64:
		if b.value == "" {
			return "", invalidInput("image data is empty")
		}
		return b.value, nil
	case sourceLocalPath:
		if b.value == "" {
			return "", invalidInput("image path is empty")
		}
		data, err := os.ReadFile(b.value)
		if err != nil {
			return "", invalidInput("cannot read image %q: %v", b.value, err)
		}
		return dataURI(b.value, data), nil
	default:
		return "", invalidInput("image is required for upload")
	}
}

func dataURI(filename string, data []byte) string {
	return "data:" + detectImageMIME(filename, data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// detectImageMIME detects the MIME type from filename extension or magic bytes.
func detectImageMIME(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	}

	if len(data) >= 12 {
		switch {
		case data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G':
			return "image/png"
		case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
			return "image/jpeg"
		case string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
			return "image/webp"
		}
	}

	return "image/png"
}
