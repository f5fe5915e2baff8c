// Package model defines the persisted data types shared by the stopwatch
// core, the persistence layer, and the import/export payload format.
// All durations are stored as integral milliseconds to keep the JSON
// representation portable across exports from other installations.
package model

import "time"

// Lap is a single timed segment of a session.
// Number is 1-based and contiguous; Cumulative is the time since session
// start at the moment the lap was recorded.
type Lap struct {
	Number     int   `json:"number"`
	Time       int64 `json:"time"`
	Cumulative int64 `json:"cumulative"`
}

// Result is a saved session belonging to a Project.
type Result struct {
	ID         string    `json:"id"`
	FolderID   string    `json:"folderId"`
	Name       string    `json:"name"`
	TotalTime  int64     `json:"totalTime"`
	Laps       []Lap     `json:"laps"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Position   float64   `json:"position"`
	HourlyWage *float64  `json:"hourlyWage,omitempty"`
}

// Project groups saved results. The UI calls this a folder.
// ParentID is carried for payload compatibility but never interpreted as
// hierarchy beyond one level.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parentId,omitempty"`
	Color     string    `json:"color,omitempty"`
	TextColor string    `json:"textColor,omitempty"`
	Position  float64   `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectPayload is the import/export bundle format: one project and its
// results. Project is a pointer so a missing object can be told apart from
// an empty one during validation.
type ProjectPayload struct {
	Project *Project `json:"project"`
	Results []Result `json:"results"`
}

// RenumberLaps returns laps renumbered contiguously from 1 with Cumulative
// recomputed as a running sum of the preserved per-lap Time deltas.
// The input slice is not modified.
func RenumberLaps(laps []Lap) []Lap {
	out := make([]Lap, len(laps))
	var cumulative int64
	for i, lap := range laps {
		cumulative += lap.Time
		out[i] = Lap{
			Number:     i + 1,
			Time:       lap.Time,
			Cumulative: cumulative,
		}
	}
	return out
}

// TotalTime returns the cumulative time of the last lap, or 0 when the
// sequence is empty.
func TotalTime(laps []Lap) int64 {
	if len(laps) == 0 {
		return 0
	}
	return laps[len(laps)-1].Cumulative
}
