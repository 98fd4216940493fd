package runware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/runware/core"
)

func newTestService(t *testing.T, respond func(task map[string]any) (int, any)) (*Service, *capture) {
	t.Helper()
	c, seen := newTestClient(t, respond)
	return NewService(c), seen
}

func TestServiceImageInferenceMap(t *testing.T) {
	svc, seen := newTestService(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "http://e/1.png")
	})

	got, err := svc.ImageInferenceMap(context.Background(), map[string]any{
		"positivePrompt": "cat",
		"width":          "512",
		"height":         512,
		"outputFormat":   "jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, []core.Record{{"imageURL": "http://e/1.png"}}, got)

	task := seen.last(t)
	assert.Equal(t, "cat", task["positivePrompt"])
	assert.Equal(t, float64(512), task["width"])
	assert.Equal(t, float64(512), task["height"])
	assert.Equal(t, "JPG", task["outputFormat"])
	assert.Equal(t, "URL", task["outputType"])
}

func TestServiceIgnoresUnknownKeys(t *testing.T) {
	run := func(params map[string]any) map[string]any {
		svc, seen := newTestService(t, func(task map[string]any) (int, any) {
			return http.StatusOK, imageData(task, "http://e/1.png")
		})
		_, err := svc.ImageInferenceMap(context.Background(), params)
		require.NoError(t, err)

		task := seen.last(t)
		delete(task, "taskUUID")
		return task
	}

	without := run(map[string]any{"positivePrompt": "cat"})
	with := run(map[string]any{"positivePrompt": "cat", "foo": "bar"})

	assert.Equal(t, without, with)
	assert.NotContains(t, with, "foo")
}

func TestServiceAbsentKeysKeepDefaults(t *testing.T) {
	svc, seen := newTestService(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "http://e/1.png")
	})

	_, err := svc.ImageInference(context.Background(), ImageInferenceParams{PositivePrompt: Ptr("cat")})
	require.NoError(t, err)

	task := seen.last(t)
	for _, k := range []string{"negativePrompt", "steps", "CFGScale"} {
		assert.NotContains(t, task, k)
	}
	assert.Equal(t, DefaultModel, task["model"])
	assert.Equal(t, "PNG", task["outputFormat"])
	assert.Equal(t, float64(DefaultNumberResults), task["numberResults"])
}

func TestServiceAppliesEveryField(t *testing.T) {
	svc, seen := newTestService(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "http://e/1.webp", "http://e/2.webp")
	})

	got, err := svc.ImageInference(context.Background(), ImageInferenceParams{
		PositivePrompt: Ptr("cat"),
		NegativePrompt: Ptr("dog"),
		Model:          Ptr("runware:101@1"),
		Height:         Ptr(1024),
		Width:          Ptr(768),
		Steps:          Ptr(20),
		CFGScale:       Ptr(6.5),
		NumberResults:  Ptr(2),
		OutputFormat:   Ptr("WebP"),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "http://e/2.webp", got[1].ImageURL())
	assert.Equal(t, "image-a", got[0].ImageUUID())

	task := seen.last(t)
	assert.Equal(t, "dog", task["negativePrompt"])
	assert.Equal(t, "runware:101@1", task["model"])
	assert.Equal(t, float64(1024), task["height"])
	assert.Equal(t, float64(768), task["width"])
	assert.Equal(t, float64(20), task["steps"])
	assert.Equal(t, 6.5, task["CFGScale"])
	assert.Equal(t, float64(2), task["numberResults"])
	assert.Equal(t, "WEBP", task["outputFormat"])
}

func TestServiceUnknownFormatFallsBackToPNG(t *testing.T) {
	svc, seen := newTestService(t, func(task map[string]any) (int, any) {
		return http.StatusOK, imageData(task, "http://e/1.png")
	})

	_, err := svc.ImageInferenceMap(context.Background(), map[string]any{
		"positivePrompt": "cat",
		"outputFormat":   "tiff",
	})
	require.NoError(t, err)
	assert.Equal(t, "PNG", seen.last(t)["outputFormat"])
}

func TestServicePropagatesErrors(t *testing.T) {
	svc, _ := newTestService(t, func(task map[string]any) (int, any) {
		return http.StatusUnauthorized, map[string]any{
			"errors": []map[string]any{{"code": "invalidApiKey", "message": "Invalid API key"}},
		}
	})

	got, err := svc.ImageInferenceMap(context.Background(), map[string]any{"positivePrompt": "cat"})
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, core.ErrUnauthorized), "error = %v", err)

	var pe *core.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "invalidApiKey", pe.Code)
}

func TestServiceMissingPrompt(t *testing.T) {
	svc := NewService(New("k", WithHTTPClient(failingDoer{err: errors.New("must not be called")})))

	_, err := svc.ImageInferenceMap(context.Background(), map[string]any{"width": 512})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestServiceEmptyResult(t *testing.T) {
	svc, _ := newTestService(t, func(task map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"data": []map[string]any{}}
	})

	got, err := svc.ImageInferenceMap(context.Background(), map[string]any{"positivePrompt": "cat"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
