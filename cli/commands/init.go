package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/petal-labs/runware/cli/config"
	"github.com/petal-labs/runware/runware"
)

func (a *App) newInitCommand() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "init <project-name>",
		Short: "Initialize a new project using the runware module",
		Long: `Initialize a new project with a starter program.

Creates a project directory with:
  - main.go: generates an image through the binding container
  - runware.yaml: config file with image defaults
  - .env.example: environment variables read at startup

Example:
  runware init thumbnails
  runware init thumbnails --model runware:101@1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runInitWithPath(args[0], model); err != nil {
				return a.handleError(err)
			}

			projectPath := args[0]
			fmt.Fprintf(a.stdout, "Created runware project: %s\n\n", filepath.Base(projectPath))
			fmt.Fprintln(a.stdout, "Next steps:")
			fmt.Fprintf(a.stdout, "  cd %s\n", projectPath)
			fmt.Fprintf(a.stdout, "  export %s=<your-key>\n", config.EnvAPIKey)
			fmt.Fprintln(a.stdout, "  go run main.go")
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", runware.DefaultModel, "default model for the generated config")
	return cmd
}

func runInitWithPath(projectPath, model string) error {
	projectName := filepath.Base(projectPath)

	// Validate project name (just the base name, not full path)
	if err := validateProjectName(projectName); err != nil {
		return exitWithCode(ExitValidation, err)
	}

	if _, err := os.Stat(projectPath); err == nil {
		return exitWithCode(ExitValidation, fmt.Errorf("directory %q already exists", projectPath))
	}

	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", projectPath, err)
	}

	data := templateData{
		Model:     model,
		EnvAPIKey: config.EnvAPIKey,
	}

	if err := generateFile(filepath.Join(projectPath, "main.go"), mainGoTemplate, data); err != nil {
		return fmt.Errorf("failed to create main.go: %w", err)
	}
	if err := generateFile(filepath.Join(projectPath, ".env.example"), envExampleTemplate, data); err != nil {
		return fmt.Errorf("failed to create .env.example: %w", err)
	}
	if err := writeProjectConfig(filepath.Join(projectPath, "runware.yaml"), model); err != nil {
		return fmt.Errorf("failed to create runware.yaml: %w", err)
	}

	return nil
}

var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	if !validProjectName.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must start with a letter and contain only letters, numbers, underscores, and hyphens", name)
	}

	if name == "runware" {
		return fmt.Errorf("invalid project name %q: reserved name", name)
	}

	return nil
}

// writeProjectConfig writes a config file in the same schema the CLI reads.
func writeProjectConfig(path, model string) error {
	cfg := config.Config{
		Runware: config.RunwareConfig{APIKeyRef: config.DefaultAPIKeyRef},
		Defaults: config.Defaults{
			Model:        model,
			Width:        runware.DefaultWidth,
			Height:       runware.DefaultHeight,
			OutputFormat: "PNG",
		},
	}

	body, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	header := "# runware configuration\n# Store the key with 'runware keys set' or set " + config.EnvAPIKey + ".\n"
	return os.WriteFile(path, append([]byte(header), body...), 0644)
}

type templateData struct {
	Model     string
	EnvAPIKey string
}

func generateFile(path string, tmplContent string, data templateData) error {
	tmpl, err := template.New("file").Parse(tmplContent)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// Templates

var mainGoTemplate = `package main

import (
	"context"
	"fmt"
	"os"

	"github.com/petal-labs/runware/container"
)

func main() {
	apiKey := os.Getenv("{{.EnvAPIKey}}")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "{{.EnvAPIKey}} not set")
		os.Exit(1)
	}

	c := container.New(container.Config{APIKey: apiKey})

	images, err := c.Runware().ImageInferenceMap(context.Background(), map[string]any{
		"positivePrompt": "a lighthouse on a cliff at dusk",
		"model":          "{{.Model}}",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	for _, img := range images {
		fmt.Println(img.ImageURL())
	}
}
`

var envExampleTemplate = `{{.EnvAPIKey}}=
# RUNWARE_BASE_URL=https://api.runware.ai/v1
`
