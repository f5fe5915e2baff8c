package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
)

func TestExportProject_ToStdout(t *testing.T) {
	env := setupTestDeps(t)
	seedResult(t, env, "Training", "run", []model.Lap{{Number: 1, Time: 5000, Cumulative: 5000}})

	exportProject("Training", "")

	if env.exitCode != -1 {
		t.Fatalf("unexpected exit, stderr: %s", env.stderr.String())
	}

	var bundle model.ProjectPayload
	if err := json.Unmarshal(env.stdout.Bytes(), &bundle); err != nil {
		t.Fatalf("output is not a valid bundle: %v", err)
	}
	if bundle.Project == nil || bundle.Project.Name != "Training" {
		t.Errorf("unexpected project in bundle: %+v", bundle.Project)
	}
	if len(bundle.Results) != 1 || bundle.Results[0].TotalTime != 5000 {
		t.Errorf("unexpected results in bundle: %+v", bundle.Results)
	}
}

func TestExportProject_ToFile(t *testing.T) {
	env := setupTestDeps(t)
	seedResult(t, env, "Training", "run", nil)
	out := filepath.Join(env.dir, "training.json")

	exportProject("Training", out)

	if !strings.Contains(env.stdout.String(), "Exported Training (1 session)") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"Training"`) {
		t.Errorf("unexpected file contents: %s", data)
	}
}

func TestExportProject_Unknown(t *testing.T) {
	env := setupTestDeps(t)

	exportProject("missing", "")

	if env.exitCode != 1 {
		t.Fatalf("expected exit 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "not found") {
		t.Errorf("expected not-found error, got: %s", env.stderr.String())
	}
}
