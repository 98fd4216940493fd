//go:build integration

package runware_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/runware/core"
	"github.com/petal-labs/runware/runware"
)

// isCI reports whether the tests run in a CI environment.
func isCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "TRAVIS", "JENKINS_URL"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// integrationClient returns a client backed by RUNWARE_API_KEY.
// In CI a missing key fails the test unless RUNWARE_SKIP_INTEGRATION is set.
func integrationClient(t *testing.T) *runware.Client {
	t.Helper()
	c, err := runware.NewFromEnv()
	if errors.Is(err, runware.ErrAPIKeyNotFound) {
		if isCI() && os.Getenv("RUNWARE_SKIP_INTEGRATION") == "" {
			t.Fatalf("%s not set (CI environment detected; set RUNWARE_SKIP_INTEGRATION=1 to skip)", runware.DefaultAPIKeyEnvVar)
		}
		t.Skipf("%s not set", runware.DefaultAPIKeyEnvVar)
	}
	require.NoError(t, err)
	return c
}

func integrationContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)
	return ctx
}

func TestIntegrationImageInference(t *testing.T) {
	c := integrationClient(t)

	res, err := c.ImageInference().
		PositivePrompt("a red bicycle leaning against a brick wall").
		Width(512).
		Height(512).
		Run(integrationContext(t))
	require.NoError(t, err)

	url, ok := res.(core.URLResult)
	require.True(t, ok, "single URL result expected, got %T", res)
	assert.True(t, strings.HasPrefix(string(url), "https://"))
}

func TestIntegrationImageInferenceMap(t *testing.T) {
	svc := runware.NewService(integrationClient(t))

	records, err := svc.ImageInferenceMap(integrationContext(t), map[string]any{
		"positivePrompt": "a lighthouse on a cliff, watercolor",
		"width":          "512",
		"height":         512,
		"numberResults":  2,
		"outputFormat":   "jpeg",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.NotEmpty(t, rec.ImageURL())
	}
}

func TestIntegrationUploadThenInpaint(t *testing.T) {
	c := integrationClient(t)
	ctx := integrationContext(t)

	seed, err := c.ImageUpload().
		UploadFromURL("https://upload.wikimedia.org/wikipedia/commons/4/47/PNG_transparency_demonstration_1.png").
		Run(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seed)

	res, err := c.Inpainting().
		SeedImage(seed).
		MaskImage(seed).
		PositivePrompt("a field of sunflowers").
		Run(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, core.NormalizeResult(res))
}

func TestIntegrationInvalidKey(t *testing.T) {
	integrationClient(t)

	_, err := runware.New("invalid-key").ImageInference().
		PositivePrompt("anything").
		Run(integrationContext(t))
	var pe *core.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "runware", pe.Provider)
}
