package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeBundle(t *testing.T, env *testEnv, content string) string {
	t.Helper()
	path := filepath.Join(env.dir, "bundle.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportBundle(t *testing.T) {
	env := setupTestDeps(t)
	path := writeBundle(t, env, `{
		"project": {"id": "ext-1", "name": "Trip"},
		"results": [
			{"id": "ext-r1", "folderId": "ext-1", "name": "day one", "totalTime": 5000,
			 "laps": [{"number": 1, "time": 5000, "cumulative": 5000}]}
		]
	}`)

	importBundle(path)

	if env.exitCode != -1 {
		t.Fatalf("unexpected exit, stderr: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Imported: Trip (1 session)") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}

	svc := env.service()
	p, err := svc.FindProject("Trip")
	if err != nil {
		t.Fatal("expected imported project")
	}
	if p.ID == "ext-1" {
		t.Error("expected fresh project id")
	}
	results, _ := svc.Results(p.ID)
	if len(results) != 1 || results[0].ID == "ext-r1" {
		t.Errorf("expected fresh result ids, got: %+v", results)
	}
}

func TestImportBundle_RoundTripFromExport(t *testing.T) {
	env := setupTestDeps(t)
	seedResult(t, env, "Training", "run", nil)
	out := filepath.Join(env.dir, "training.json")
	exportProject("Training", out)
	env.stdout.Reset()

	importBundle(out)

	if !strings.Contains(env.stdout.String(), "Imported: Training (") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}
	// The re-import got the dated suffix, so both projects exist.
	projects, _ := env.service().Projects()
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[1].Name == "Training" {
		t.Errorf("expected dated rename on collision, got %q", projects[1].Name)
	}
}

func TestImportBundle_NotJSON(t *testing.T) {
	env := setupTestDeps(t)
	path := writeBundle(t, env, "{broken")

	importBundle(path)

	if env.exitCode != 1 {
		t.Fatalf("expected exit 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "not a valid project bundle") {
		t.Errorf("expected parse error, got: %s", env.stderr.String())
	}
}

func TestImportBundle_MalformedPayload(t *testing.T) {
	env := setupTestDeps(t)
	path := writeBundle(t, env, `{"results": [{"name": "orphan"}]}`)

	importBundle(path)

	if env.exitCode != 1 {
		t.Fatalf("expected exit 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Nothing was imported") {
		t.Errorf("expected rejection hint, got: %s", env.stderr.String())
	}
	projects, _ := env.service().Projects()
	if len(projects) != 0 {
		t.Errorf("expected nothing committed, got %d projects", len(projects))
	}
}

func TestImportBundle_MissingFile(t *testing.T) {
	env := setupTestDeps(t)

	importBundle(filepath.Join(env.dir, "nope.json"))

	if env.exitCode != 1 {
		t.Fatalf("expected exit 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Failed to read") {
		t.Errorf("expected read error, got: %s", env.stderr.String())
	}
}
