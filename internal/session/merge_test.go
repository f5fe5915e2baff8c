package session

import (
	"errors"
	"testing"
	"time"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func payload(name string, results ...model.Result) model.ProjectPayload {
	return model.ProjectPayload{
		Project: &model.Project{ID: "incoming-project", Name: name},
		Results: results,
	}
}

func TestMerge_GeneratesFreshIDs(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.MergeProjectFromPayload(payload("Trip",
		model.Result{ID: "x", Name: "day one", TotalTime: 1000,
			Laps: []model.Lap{{Number: 1, Time: 1000, Cumulative: 1000}}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "incoming-project" {
		t.Error("expected fresh project id")
	}

	results, _ := svc.Results(p.ID)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID == "x" {
		t.Error("expected fresh result id")
	}
	if results[0].FolderID != p.ID {
		t.Errorf("expected folderId rewritten to %s, got %s", p.ID, results[0].FolderID)
	}
	if results[0].CreatedAt.IsZero() {
		t.Error("expected createdAt assigned")
	}
}

// Importing the same bundle twice yields two distinct projects, the
// second renamed with today's date, and result ids distinct from the
// incoming ones and from each other.
func TestMerge_TwiceProducesDistinctProjects(t *testing.T) {
	svc := newTestService(t)
	bundle := payload("Trip", model.Result{ID: "x"})

	first, err := svc.MergeProjectFromPayload(bundle)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.MergeProjectFromPayload(bundle)
	if err != nil {
		t.Fatal(err)
	}

	if first.ID == second.ID {
		t.Error("expected distinct project ids")
	}
	if first.Name != "Trip" {
		t.Errorf("expected first project named Trip, got %q", first.Name)
	}
	if second.Name != "Trip (2024-03-01)" {
		t.Errorf("expected dated rename, got %q", second.Name)
	}

	all, _ := svc.Results("")
	if len(all) != 2 {
		t.Fatalf("expected 2 results, got %d", len(all))
	}
	if all[0].ID == all[1].ID || all[0].ID == "x" || all[1].ID == "x" {
		t.Errorf("expected fresh distinct result ids, got %s and %s", all[0].ID, all[1].ID)
	}
}

func TestMerge_IsStrictlyAdditive(t *testing.T) {
	svc := newTestService(t)
	existing, _ := svc.CreateProject("Local", "", "")
	kept, _ := svc.SaveResult(model.Result{FolderID: existing.ID, Name: "local run"})

	if _, err := svc.MergeProjectFromPayload(payload("Imported", model.Result{Name: "r"})); err != nil {
		t.Fatal(err)
	}

	projects, _ := svc.Projects()
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ID != existing.ID || projects[0].Name != "Local" {
		t.Errorf("expected existing project untouched, got %+v", projects[0])
	}
	got, err := svc.FindResult(kept.ID)
	if err != nil {
		t.Fatal("expected existing result untouched")
	}
	if got.Name != "local run" {
		t.Errorf("expected existing result untouched, got %+v", got)
	}
}

func TestMerge_PositionsContinueFromGlobalCount(t *testing.T) {
	svc := newTestService(t)
	svc.SaveResult(model.Result{FolderID: "p", Name: "a"})
	svc.SaveResult(model.Result{FolderID: "p", Name: "b"})

	p, err := svc.MergeProjectFromPayload(payload("Imported",
		model.Result{Name: "c"}, model.Result{Name: "d"}))
	if err != nil {
		t.Fatal(err)
	}

	imported, _ := svc.Results(p.ID)
	if len(imported) != 2 {
		t.Fatalf("expected 2 imported results, got %d", len(imported))
	}
	if imported[0].Position != 3 || imported[1].Position != 4 {
		t.Errorf("expected positions 3 and 4, got %g and %g",
			imported[0].Position, imported[1].Position)
	}
}

func TestMerge_PreservesIncomingCreatedAt(t *testing.T) {
	svc := newTestService(t)
	created := mustParse(t, "2020-06-15T10:00:00Z")

	p, err := svc.MergeProjectFromPayload(payload("Imported",
		model.Result{Name: "old", CreatedAt: created}))
	if err != nil {
		t.Fatal(err)
	}
	results, _ := svc.Results(p.ID)
	if !results[0].CreatedAt.Equal(created) {
		t.Errorf("expected original createdAt preserved, got %v", results[0].CreatedAt)
	}
}

func TestMerge_RejectsMalformedPayloads(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		payload model.ProjectPayload
	}{
		{"missing project", model.ProjectPayload{Results: []model.Result{{Name: "r"}}}},
		{"unnamed project", model.ProjectPayload{Project: &model.Project{}}},
		{"negative total", payload("p", model.Result{TotalTime: -1})},
		{"negative lap", payload("p", model.Result{Laps: []model.Lap{{Number: 1, Time: -5}}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.MergeProjectFromPayload(tt.payload); !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}

	// Nothing was committed by the refused merges.
	projects, _ := svc.Projects()
	if len(projects) != 0 {
		t.Errorf("expected no projects after refused merges, got %d", len(projects))
	}
	results, _ := svc.Results("")
	if len(results) != 0 {
		t.Errorf("expected no results after refused merges, got %d", len(results))
	}
}

func TestExportProject_RoundTripsThroughMerge(t *testing.T) {
	svc := newTestService(t)
	p, _ := svc.CreateProject("Training", "#f00", "#fff")
	svc.SaveResult(model.Result{FolderID: p.ID, Name: "run",
		Laps: []model.Lap{{Number: 1, Time: 5000, Cumulative: 5000}}})

	bundle, err := svc.ExportProject(p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Project == nil || bundle.Project.Name != "Training" {
		t.Fatalf("unexpected project in bundle: %+v", bundle.Project)
	}
	if len(bundle.Results) != 1 {
		t.Fatalf("expected 1 result in bundle, got %d", len(bundle.Results))
	}

	merged, err := svc.MergeProjectFromPayload(bundle)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Name != "Training (2024-03-01)" {
		t.Errorf("expected dated rename on re-import, got %q", merged.Name)
	}
	results, _ := svc.Results(merged.ID)
	if len(results) != 1 || results[0].TotalTime != 5000 {
		t.Errorf("expected lap data preserved, got %+v", results)
	}
}

func TestExportProject_Unknown(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ExportProject("missing"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}
