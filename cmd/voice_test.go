package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stopwatch"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/voice"
)

func TestRunVoice_SavesSessionToProject(t *testing.T) {
	env := setupTestDeps(t)
	env.setStdin("start\nstop\n")

	runVoice("", "Training", "Interval run", "en")

	if env.exitCode != -1 {
		t.Fatalf("unexpected exit, stderr: %s", env.stderr.String())
	}
	out := env.stdout.String()
	if !strings.Contains(out, "Started") {
		t.Errorf("expected start report, got: %s", out)
	}
	if !strings.Contains(out, "Stopped at") {
		t.Errorf("expected stop report, got: %s", out)
	}
	if !strings.Contains(out, "Saved: Interval run in Training") {
		t.Errorf("expected save report, got: %s", out)
	}

	svc := env.service()
	r, err := svc.FindResult("Interval run")
	if err != nil {
		t.Fatal("expected saved session")
	}
	// No lap was spoken, so the whole session is one synthesized lap.
	if len(r.Laps) != 1 {
		t.Errorf("expected 1 synthesized lap, got %d", len(r.Laps))
	}
}

func TestRunVoice_NoProjectKeepsDraft(t *testing.T) {
	env := setupTestDeps(t)
	env.setStdin("start\nstop\n")

	runVoice("", "", "", "en")

	if !strings.Contains(env.stdout.String(), "Session kept as draft") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}
	draftPath, _ := deps.DraftPath()
	pending, err := stopwatch.HasDraft(draftPath)
	if err != nil {
		t.Fatal(err)
	}
	if !pending {
		t.Error("expected a pending draft")
	}
}

func TestRunVoice_ChoicePendingInterceptsStart(t *testing.T) {
	env := setupTestDeps(t)
	draftPath, _ := deps.DraftPath()
	if err := stopwatch.SaveDraft(draftPath, stopwatch.Draft{ElapsedMs: 5000, StoppedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	env.setStdin("start\n")

	runVoice("", "Training", "", "en")

	if !strings.Contains(env.stdout.String(), "A stopped session is waiting") {
		t.Errorf("expected choice prompt, got: %s", env.stdout.String())
	}
	// Nothing was started, so nothing was saved.
	if _, err := env.service().FindProject("Training"); err == nil {
		t.Error("expected no project created for an unstarted session")
	}
}

func TestRunVoice_UnknownLanguageWarnsAndFallsBack(t *testing.T) {
	env := setupTestDeps(t)
	env.setStdin("start\nstop\n")

	runVoice("", "Training", "", "xx")

	if !strings.Contains(env.stderr.String(), "Unknown voice language 'xx'") {
		t.Errorf("expected language warning, got: %s", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Saved:") {
		t.Errorf("expected English commands to still work, got: %s", env.stdout.String())
	}
}

func TestReportVoiceEvent(t *testing.T) {
	lap := model.Lap{Number: 2, Time: 5000, Cumulative: 12_000}

	tests := []struct {
		name     string
		event    voice.Event
		expected string
	}{
		{"start", voice.Event{Command: voice.CommandStart, Executed: true}, "Started"},
		{"lap", voice.Event{Command: voice.CommandNext, Executed: true, Lap: &lap},
			"Lap 2: 00:05.00 (at 00:12.00)"},
		{"pause", voice.Event{Command: voice.CommandPause, Executed: true}, "Paused"},
		{"resume", voice.Event{Command: voice.CommandResume, Executed: true}, "Resumed"},
		{"choice prompt", voice.Event{Command: voice.CommandStart, Executed: true, ChoicePrompted: true},
			"A stopped session is waiting"},
		{"rollback", voice.Event{Command: voice.CommandStop, Executed: true, RolledBack: &lap},
			"Discarded lap 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestDeps(t)
			reportVoiceEvent(tt.event)
			if !strings.Contains(env.stdout.String(), tt.expected) {
				t.Errorf("expected %q in output, got: %s", tt.expected, env.stdout.String())
			}
		})
	}
}

func TestReportVoiceEvent_IgnoredCommandIsSilent(t *testing.T) {
	env := setupTestDeps(t)

	reportVoiceEvent(voice.Event{Command: voice.CommandStart, Executed: false})

	if env.stdout.Len() != 0 {
		t.Errorf("expected no output, got: %s", env.stdout.String())
	}
}
