package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/petal-labs/runware/cli/config"
)

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "thumbnails", false},
		{"valid with numbers", "gen123", false},
		{"valid with underscore", "my_images", false},
		{"valid with hyphen", "my-images", false},
		{"empty", "", true},
		{"starts with number", "123gen", true},
		{"starts with hyphen", "-gen", true},
		{"contains space", "my gen", true},
		{"contains dot", "my.gen", true},
		{"reserved dot", ".", true},
		{"reserved dotdot", "..", true},
		{"reserved runware", "runware", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProjectName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")

	err := generateFile(path, "key={{.EnvAPIKey}} model={{.Model}}", templateData{Model: "m@1", EnvAPIKey: "K"})
	if err != nil {
		t.Fatalf("generateFile() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "key=K model=m@1" {
		t.Errorf("generateFile() content = %q", content)
	}
}

func TestInitCreatesProjectStructure(t *testing.T) {
	projectPath := filepath.Join(t.TempDir(), "thumbnails")

	if err := runInitWithPath(projectPath, "runware:101@1"); err != nil {
		t.Fatalf("runInitWithPath() error = %v", err)
	}

	mainContent, err := os.ReadFile(filepath.Join(projectPath, "main.go"))
	if err != nil {
		t.Fatalf("main.go not created: %v", err)
	}
	for _, want := range []string{"package main", "container.New", "RUNWARE_API_KEY", `"runware:101@1"`} {
		if !strings.Contains(string(mainContent), want) {
			t.Errorf("main.go missing %q", want)
		}
	}

	env, err := os.ReadFile(filepath.Join(projectPath, ".env.example"))
	if err != nil || !strings.HasPrefix(string(env), "RUNWARE_API_KEY=") {
		t.Errorf(".env.example = %q, %v", env, err)
	}

	raw, err := os.ReadFile(filepath.Join(projectPath, "runware.yaml"))
	if err != nil {
		t.Fatalf("runware.yaml not created: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("runware.yaml is not valid yaml: %v", err)
	}
	if cfg.Defaults.Model != "runware:101@1" || cfg.Defaults.Width != 512 || cfg.Runware.APIKeyRef != "runware" {
		t.Errorf("runware.yaml = %+v", cfg)
	}
}

func TestInitErrorOnExistingDirectory(t *testing.T) {
	projectPath := filepath.Join(t.TempDir(), "existing")
	if err := os.MkdirAll(projectPath, 0755); err != nil {
		t.Fatal(err)
	}

	err := runInitWithPath(projectPath, "m")
	if exitCode(err) != ExitValidation {
		t.Errorf("runInitWithPath() error = %v, want validation error", err)
	}
}

func TestInitCommand(t *testing.T) {
	env := newTestEnv(t, config.Config{}, "")
	projectPath := filepath.Join(t.TempDir(), "demo")

	if err := env.app.Run([]string{"init", projectPath}); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Created runware project: demo") {
		t.Errorf("output = %q", env.stdout.String())
	}
	if _, err := os.Stat(filepath.Join(projectPath, "main.go")); err != nil {
		t.Errorf("main.go not created: %v", err)
	}
}

func TestInitCommandInvalidName(t *testing.T) {
	env := newTestEnv(t, config.Config{}, "")

	err := env.app.Run([]string{"init", filepath.Join(t.TempDir(), "9lives")})
	if exitCode(err) != ExitValidation {
		t.Errorf("init error = %v, want validation exit", err)
	}
}
