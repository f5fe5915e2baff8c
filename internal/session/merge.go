package session

import (
	"fmt"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
)

// MergeProjectFromPayload adds an externally supplied project bundle to
// the local collections. Strictly additive: existing projects and results
// are never mutated or removed, and no incoming id is ever reused.
//
// The new project gets a fresh id and a position one past the current
// maximum. When a local project already carries the exact same name, the
// incoming one is renamed to "<name> (<today>)" to keep listings
// unambiguous.
// Every incoming result gets a fresh id, its folderId rewritten to the
// new project, its original createdAt when present (now otherwise), and a
// position continuing from the current global result count.
func (s *Service) MergeProjectFromPayload(payload model.ProjectPayload) (model.Project, error) {
	if err := validatePayload(payload); err != nil {
		return model.Project{}, err
	}

	projects, err := s.store.ReadProjects()
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read projects: %w", err)
	}
	results, err := s.store.ReadResults()
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read results: %w", err)
	}

	project := *payload.Project
	project.ID = s.newID()
	project.Position = nextProjectPosition(projects)
	if project.CreatedAt.IsZero() {
		project.CreatedAt = s.now()
	}
	for _, p := range projects {
		if p.Name == project.Name {
			project.Name = fmt.Sprintf("%s (%s)", project.Name, s.now().Format("2006-01-02"))
			break
		}
	}

	merged := results
	position := float64(len(results))
	for _, incoming := range payload.Results {
		r := incoming
		r.ID = s.newID()
		r.FolderID = project.ID
		if r.CreatedAt.IsZero() {
			r.CreatedAt = s.now()
		}
		position++
		r.Position = position
		merged = append(merged, r)
	}

	// Results first: if the second write fails, the half-imported data is
	// invisible (no project references it) instead of a project with
	// missing results.
	if err := s.store.WriteResults(merged); err != nil {
		return model.Project{}, fmt.Errorf("failed to save results: %w", err)
	}
	if err := s.store.WriteProjects(append(projects, project)); err != nil {
		return model.Project{}, fmt.Errorf("failed to save projects: %w", err)
	}
	return project, nil
}

// validatePayload refuses malformed bundles before anything is written,
// so a merge is all-or-nothing.
func validatePayload(payload model.ProjectPayload) error {
	if payload.Project == nil {
		return fmt.Errorf("%w: missing project object", ErrInvalidPayload)
	}
	if payload.Project.Name == "" {
		return fmt.Errorf("%w: project has no name", ErrInvalidPayload)
	}
	for i, r := range payload.Results {
		if r.TotalTime < 0 {
			return fmt.Errorf("%w: result %d has negative total time", ErrInvalidPayload, i)
		}
		for j, lap := range r.Laps {
			if lap.Time < 0 || lap.Cumulative < 0 {
				return fmt.Errorf("%w: result %d lap %d has negative duration", ErrInvalidPayload, i, j)
			}
		}
	}
	return nil
}

// ExportProject builds the portable payload bundle for one project.
func (s *Service) ExportProject(projectID string) (model.ProjectPayload, error) {
	projects, err := s.store.ReadProjects()
	if err != nil {
		return model.ProjectPayload{}, fmt.Errorf("failed to read projects: %w", err)
	}
	var project *model.Project
	for i := range projects {
		if projects[i].ID == projectID {
			project = &projects[i]
			break
		}
	}
	if project == nil {
		return model.ProjectPayload{}, ErrProjectNotFound
	}

	results, err := s.Results(projectID)
	if err != nil {
		return model.ProjectPayload{}, fmt.Errorf("failed to read results: %w", err)
	}
	return model.ProjectPayload{Project: project, Results: results}, nil
}
