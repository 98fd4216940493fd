package commands

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/petal-labs/runware/cli/config"
)

func TestVersionVariables(t *testing.T) {
	// Verify default values are set
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t, config.Config{}, "")

	if err := env.app.Run([]string{"version"}); err != nil {
		t.Fatalf("version error = %v", err)
	}

	out := env.stdout.String()
	if !strings.HasPrefix(out, "runware "+Version+"\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, runtime.Version()) {
		t.Errorf("output missing Go version: %q", out)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	env := newTestEnv(t, config.Config{}, "")

	if err := env.app.Run([]string{"version", "--json"}); err != nil {
		t.Fatalf("version error = %v", err)
	}

	var info map[string]string
	if err := json.Unmarshal(env.stdout.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if info["version"] != Version || info["platform"] != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("info = %v", info)
	}
}
