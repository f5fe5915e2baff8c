// Package stats computes lap and earnings statistics for sessions and
// projects. All functions are total: empty input yields zero values, never
// NaN or an error.
package stats

import (
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
)

// LapStats contains aggregate statistics for a lap sequence.
type LapStats struct {
	Count     int
	TotalMs   int64
	AverageMs int64
	Fastest   model.Lap // zero value when Count == 0
	Slowest   model.Lap // zero value when Count == 0
}

// CalculateLapStats computes count, total, average, fastest and slowest
// for the given laps. Ties for fastest/slowest resolve to the first
// occurrence in ledger order.
func CalculateLapStats(laps []model.Lap) LapStats {
	s := LapStats{Count: len(laps)}
	if len(laps) == 0 {
		return s
	}

	s.Fastest = laps[0]
	s.Slowest = laps[0]
	for _, lap := range laps {
		s.TotalMs += lap.Time
		if lap.Time < s.Fastest.Time {
			s.Fastest = lap
		}
		if lap.Time > s.Slowest.Time {
			s.Slowest = lap
		}
	}
	s.AverageMs = s.TotalMs / int64(len(laps))
	return s
}

// AverageLapMs returns the arithmetic mean lap time in milliseconds,
// 0 when no laps exist.
func AverageLapMs(laps []model.Lap) int64 {
	if len(laps) == 0 {
		return 0
	}
	var total int64
	for _, lap := range laps {
		total += lap.Time
	}
	return total / int64(len(laps))
}

// Earnings returns the wage earned over totalTime milliseconds at the
// given hourly rate.
func Earnings(totalTimeMs int64, hourlyWage float64) float64 {
	if totalTimeMs <= 0 || hourlyWage <= 0 {
		return 0
	}
	return hourlyWage * float64(totalTimeMs) / float64(3600_000)
}

// ResultEarnings returns the earnings for a saved result, 0 when the
// result has no hourly wage set.
func ResultEarnings(r model.Result) float64 {
	if r.HourlyWage == nil {
		return 0
	}
	return Earnings(r.TotalTime, *r.HourlyWage)
}

// ProjectTotals contains aggregates over one project's results.
type ProjectTotals struct {
	ResultCount int
	TotalMs     int64
	Earnings    float64
}

// CalculateProjectTotals aggregates total time and earnings for the
// results belonging to the given project.
func CalculateProjectTotals(projectID string, results []model.Result) ProjectTotals {
	var t ProjectTotals
	for _, r := range results {
		if r.FolderID != projectID {
			continue
		}
		t.ResultCount++
		t.TotalMs += r.TotalTime
		t.Earnings += ResultEarnings(r)
	}
	return t
}
