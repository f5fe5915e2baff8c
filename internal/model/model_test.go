package model

import "testing"

func TestRenumberLaps(t *testing.T) {
	laps := []Lap{
		{Number: 3, Time: 1000, Cumulative: 9999},
		{Number: 7, Time: 500, Cumulative: 1},
		{Number: 1, Time: 2500, Cumulative: 42},
	}

	out := RenumberLaps(laps)

	want := []Lap{
		{Number: 1, Time: 1000, Cumulative: 1000},
		{Number: 2, Time: 500, Cumulative: 1500},
		{Number: 3, Time: 2500, Cumulative: 4000},
	}
	for i, lap := range out {
		if lap != want[i] {
			t.Errorf("lap %d: got %+v, want %+v", i, lap, want[i])
		}
	}

	// Input untouched
	if laps[0].Number != 3 || laps[0].Cumulative != 9999 {
		t.Error("expected input slice to be unmodified")
	}
}

func TestRenumberLaps_Empty(t *testing.T) {
	out := RenumberLaps(nil)
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d laps", len(out))
	}
}

func TestTotalTime(t *testing.T) {
	if got := TotalTime(nil); got != 0 {
		t.Errorf("expected 0 for empty laps, got %d", got)
	}
	laps := []Lap{
		{Number: 1, Time: 1000, Cumulative: 1000},
		{Number: 2, Time: 2000, Cumulative: 3000},
	}
	if got := TotalTime(laps); got != 3000 {
		t.Errorf("expected 3000, got %d", got)
	}
}
