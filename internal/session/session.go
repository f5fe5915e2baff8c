// Package session turns finished timing sessions into stored Results and
// manages the Project/Result collections, including merge-import of
// externally supplied payloads.
//
// Every mutation follows the same shape: read the full collection,
// compute the full replacement, write once. Storage failures leave both
// the collections and the caller's in-memory session untouched, so a
// failed save can be retried or exported.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/store"
)

// Session-specific errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrResultNotFound  = errors.New("result not found")
	ErrProjectExists   = errors.New("a project with that name already exists")
	ErrInvalidPayload  = errors.New("invalid import payload")
	ErrLapOutOfRange   = errors.New("lap index out of range")
)

// Service provides persistence operations over a Store.
type Service struct {
	store store.Store
	newID func() string
	now   func() time.Time
}

// NewService creates a Service with uuid-based id generation and the
// system clock.
func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// NewServiceWithDeps creates a Service with custom id and time sources
// (useful for testing).
func NewServiceWithDeps(st store.Store, newID func() string, now func() time.Time) *Service {
	return &Service{store: st, newID: newID, now: now}
}

// Projects returns all projects in stored order.
func (s *Service) Projects() ([]model.Project, error) {
	return s.store.ReadProjects()
}

// Results returns all results, or only those in the given project when
// projectID is non-empty.
func (s *Service) Results(projectID string) ([]model.Result, error) {
	results, err := s.store.ReadResults()
	if err != nil {
		return nil, err
	}
	if projectID == "" {
		return results, nil
	}
	filtered := make([]model.Result, 0, len(results))
	for _, r := range results {
		if r.FolderID == projectID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// FindProject looks a project up by id or exact name.
func (s *Service) FindProject(idOrName string) (model.Project, error) {
	projects, err := s.store.ReadProjects()
	if err != nil {
		return model.Project{}, err
	}
	for _, p := range projects {
		if p.ID == idOrName || p.Name == idOrName {
			return p, nil
		}
	}
	return model.Project{}, ErrProjectNotFound
}

// CreateProject adds a project with the given name and colors. Names must
// be unique.
func (s *Service) CreateProject(name, color, textColor string) (model.Project, error) {
	projects, err := s.store.ReadProjects()
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read projects: %w", err)
	}
	for _, p := range projects {
		if p.Name == name {
			return model.Project{}, ErrProjectExists
		}
	}

	project := model.Project{
		ID:        s.newID(),
		Name:      name,
		Color:     color,
		TextColor: textColor,
		Position:  nextProjectPosition(projects),
		CreatedAt: s.now(),
	}
	if err := s.store.WriteProjects(append(projects, project)); err != nil {
		return model.Project{}, fmt.Errorf("failed to save project: %w", err)
	}
	return project, nil
}

// RenameProject changes a project's name.
func (s *Service) RenameProject(id, newName string) (model.Project, error) {
	projects, err := s.store.ReadProjects()
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read projects: %w", err)
	}
	for i, p := range projects {
		if p.ID == id {
			projects[i].Name = newName
			if err := s.store.WriteProjects(projects); err != nil {
				return model.Project{}, fmt.Errorf("failed to save projects: %w", err)
			}
			return projects[i], nil
		}
	}
	return model.Project{}, ErrProjectNotFound
}

// DeleteProject removes a project and all of its results (cascade).
// Returns the number of results deleted.
func (s *Service) DeleteProject(id string) (int, error) {
	projects, err := s.store.ReadProjects()
	if err != nil {
		return 0, fmt.Errorf("failed to read projects: %w", err)
	}
	kept := make([]model.Project, 0, len(projects))
	found := false
	for _, p := range projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return 0, ErrProjectNotFound
	}

	results, err := s.store.ReadResults()
	if err != nil {
		return 0, fmt.Errorf("failed to read results: %w", err)
	}
	keptResults := make([]model.Result, 0, len(results))
	removed := 0
	for _, r := range results {
		if r.FolderID == id {
			removed++
			continue
		}
		keptResults = append(keptResults, r)
	}

	// Results first so an interrupted delete never leaves orphans that
	// reference a missing project.
	if err := s.store.WriteResults(keptResults); err != nil {
		return 0, fmt.Errorf("failed to save results: %w", err)
	}
	if err := s.store.WriteProjects(kept); err != nil {
		return 0, fmt.Errorf("failed to save projects: %w", err)
	}
	return removed, nil
}

// SaveResult stores a finished session as a Result in the given project.
// A missing id is assigned from the generator; position is placed
// strictly after every existing result in the same project. The draft is
// not modified on failure.
func (s *Service) SaveResult(draft model.Result) (model.Result, error) {
	results, err := s.store.ReadResults()
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to read results: %w", err)
	}

	saved := draft
	if saved.ID == "" {
		saved.ID = s.newID()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = s.now()
	}
	saved.TotalTime = model.TotalTime(saved.Laps)
	saved.Position = nextResultPosition(saved.FolderID, results)

	if err := s.store.WriteResults(append(results, saved)); err != nil {
		return model.Result{}, fmt.Errorf("failed to save result: %w", err)
	}
	return saved, nil
}

// ResultPatch is a shallow patch for UpdateResult. Nil fields are left
// unchanged.
type ResultPatch struct {
	Name       *string
	Image      *string
	HourlyWage *float64
	FolderID   *string
}

// UpdateResult shallow-merges the patch onto the stored result. A no-op
// when the id is unknown: the updated result and false are returned, not
// an error, because racing deletes are routine.
func (s *Service) UpdateResult(id string, patch ResultPatch) (model.Result, bool, error) {
	results, err := s.store.ReadResults()
	if err != nil {
		return model.Result{}, false, fmt.Errorf("failed to read results: %w", err)
	}
	for i, r := range results {
		if r.ID != id {
			continue
		}
		if patch.Name != nil {
			results[i].Name = *patch.Name
		}
		if patch.Image != nil {
			results[i].Image = *patch.Image
		}
		if patch.HourlyWage != nil {
			results[i].HourlyWage = patch.HourlyWage
		}
		if patch.FolderID != nil {
			results[i].FolderID = *patch.FolderID
		}
		if err := s.store.WriteResults(results); err != nil {
			return model.Result{}, false, fmt.Errorf("failed to save results: %w", err)
		}
		return results[i], true, nil
	}
	return model.Result{}, false, nil
}

// DeleteResult removes a single result.
func (s *Service) DeleteResult(id string) error {
	results, err := s.store.ReadResults()
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}
	kept := make([]model.Result, 0, len(results))
	found := false
	for _, r := range results {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return ErrResultNotFound
	}
	if err := s.store.WriteResults(kept); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}

// FindResult looks a result up by id or exact name.
func (s *Service) FindResult(idOrName string) (model.Result, error) {
	results, err := s.store.ReadResults()
	if err != nil {
		return model.Result{}, err
	}
	for _, r := range results {
		if r.ID == idOrName || r.Name == idOrName {
			return r, nil
		}
	}
	return model.Result{}, ErrResultNotFound
}

// RemoveLap removes the lap at the 0-based index from a stored result,
// renumbers the remaining laps and recomputes cumulative times and the
// result's total. The change is written in a single collection write, so
// no partial state is ever persisted.
func (s *Service) RemoveLap(resultID string, index int) (model.Result, error) {
	results, err := s.store.ReadResults()
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to read results: %w", err)
	}
	for i, r := range results {
		if r.ID != resultID {
			continue
		}
		if index < 0 || index >= len(r.Laps) {
			return model.Result{}, ErrLapOutOfRange
		}
		remaining := make([]model.Lap, 0, len(r.Laps)-1)
		remaining = append(remaining, r.Laps[:index]...)
		remaining = append(remaining, r.Laps[index+1:]...)
		results[i].Laps = model.RenumberLaps(remaining)
		results[i].TotalTime = model.TotalTime(results[i].Laps)
		if err := s.store.WriteResults(results); err != nil {
			return model.Result{}, fmt.Errorf("failed to save results: %w", err)
		}
		return results[i], nil
	}
	return model.Result{}, ErrResultNotFound
}

func nextProjectPosition(projects []model.Project) float64 {
	max := 0.0
	for _, p := range projects {
		if p.Position > max {
			max = p.Position
		}
	}
	return max + 1
}

func nextResultPosition(projectID string, results []model.Result) float64 {
	max := 0.0
	for _, r := range results {
		if r.FolderID == projectID && r.Position > max {
			max = r.Position
		}
	}
	return max + 1
}
