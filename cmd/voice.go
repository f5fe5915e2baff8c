package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/config"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stopwatch"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/voice"
)

// voiceCmd represents the voice command
var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Drive the stopwatch from speech transcripts",
	Long: `Drive the stopwatch from a stream of speech transcript events.

Transcripts are read one per line from stdin (or from --script). Lines
prefixed with "~" are interim recognizer results; everything else is a
final result. Recognized commands: start, lap/next, pause, resume, reset,
stop, in English plus the configured secondary language.

A spoken stop ends the session. With --project the finished session is
saved there; otherwise it is kept as a pending draft for the TUI.

Examples:
  swpro voice < transcripts.txt
  swpro voice --script run.txt --project Training --name "Interval run"
  echo -e "start\nlap\nstop" | swpro voice --project Training`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		script, _ := cmd.Flags().GetString("script")
		project, _ := cmd.Flags().GetString("project")
		name, _ := cmd.Flags().GetString("name")
		language, _ := cmd.Flags().GetString("language")
		runVoice(script, project, name, language)
	},
}

func init() {
	rootCmd.AddCommand(voiceCmd)
	voiceCmd.Flags().String("script", "", "read transcripts from a file instead of stdin")
	voiceCmd.Flags().String("project", "", "save the finished session to this project")
	voiceCmd.Flags().String("name", "", "name for the saved session (default: Voice session)")
	voiceCmd.Flags().String("language", "", "secondary command language (overrides config)")
}

func runVoice(script, project, name, language string) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	if language == "" {
		language = cfg.VoiceLanguage
	}

	sets := []voice.StemSet{voice.EnglishStems()}
	if language != "" && language != "en" {
		secondary, known := voice.StemsForLanguage(language)
		if !known {
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: Unknown voice language '%s', using English only\n", language)
		} else {
			sets = append(sets, secondary)
		}
	}

	sw := stopwatch.New(nil)
	controller := voice.NewController(sw, voice.NewClassifier(sets...), nil)
	controller.Enable()

	draftPath, err := deps.DraftPath()
	if err == nil {
		if pending, err := stopwatch.HasDraft(draftPath); err == nil && pending {
			controller.SetChoicePending(true)
		}
	}

	input := deps.Stdin
	if script != "" {
		f, err := os.Open(script)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to open script '%s'\n", script)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	var outcome *stopwatch.Outcome
	sup := voice.NewSupervisor(voice.NewReaderSource(input), controller)
	sup.OnEvent = func(ev voice.Event) {
		reportVoiceEvent(ev)
		if ev.Outcome != nil && ev.Outcome.Finalize {
			outcome = ev.Outcome
		}
	}
	sup.OnEnd = func(err error) {
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Warning: Recognizer ended with error: %v\n", err)
		}
		// A drained transcript stream is the end of the session, not a
		// transient recognizer failure.
		controller.Disable()
	}

	if err := sup.Run(context.Background()); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Voice session failed")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if outcome == nil {
		return
	}
	saveVoiceOutcome(*outcome, project, name)
}

// reportVoiceEvent prints one line per executed command.
func reportVoiceEvent(ev voice.Event) {
	if ev.ChoicePrompted {
		_, _ = fmt.Fprintln(deps.Stdout, "A stopped session is waiting: resume or discard it before starting a new one")
		return
	}
	if !ev.Executed {
		return
	}

	switch ev.Command {
	case voice.CommandStart:
		_, _ = fmt.Fprintln(deps.Stdout, "Started")
	case voice.CommandNext:
		if ev.Lap != nil {
			_, _ = fmt.Fprintf(deps.Stdout, "Lap %d: %s (at %s)\n",
				ev.Lap.Number, formatStopwatch(ev.Lap.Time), formatStopwatch(ev.Lap.Cumulative))
		}
	case voice.CommandPause:
		_, _ = fmt.Fprintln(deps.Stdout, "Paused")
	case voice.CommandResume:
		_, _ = fmt.Fprintln(deps.Stdout, "Resumed")
	case voice.CommandReset:
		_, _ = fmt.Fprintln(deps.Stdout, "Reset")
	case voice.CommandStop:
		if ev.RolledBack != nil {
			_, _ = fmt.Fprintf(deps.Stdout, "Discarded lap %d (recorded just before stop)\n", ev.RolledBack.Number)
		}
		if ev.Outcome != nil && ev.Outcome.Finalize {
			_, _ = fmt.Fprintf(deps.Stdout, "Stopped at %s (%d %s)\n",
				formatStopwatch(ev.Outcome.Elapsed.Milliseconds()),
				len(ev.Outcome.Laps), pluralize("lap", len(ev.Outcome.Laps)))
		} else {
			_, _ = fmt.Fprintln(deps.Stdout, "Stopped")
		}
	}
}

// saveVoiceOutcome stores the finished session in the given project, or
// keeps it as a pending draft when no project was named.
func saveVoiceOutcome(outcome stopwatch.Outcome, project, name string) {
	if project == "" {
		draftPath, err := deps.DraftPath()
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine draft location")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		draft := stopwatch.Draft{
			ElapsedMs: outcome.Elapsed.Milliseconds(),
			Laps:      outcome.Laps,
			StoppedAt: time.Now(),
		}
		if err := stopwatch.SaveDraft(draftPath, draft); err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save session draft")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, "Session kept as draft; save it from the TUI or rerun with --project")
		return
	}

	svc, ok := newService()
	if !ok {
		return
	}
	p, err := svc.FindProject(project)
	if err != nil {
		p, err = svc.CreateProject(project, "", "")
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create project '%s'\n", project)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
	}

	if name == "" {
		name = "Voice session"
	}
	saved, err := svc.SaveResult(model.Result{
		FolderID: p.ID,
		Name:     name,
		Laps:     outcome.Laps,
	})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save session")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: The session is not lost; rerun with a writable data directory")
		deps.Exit(1)
		return
	}

	if draftPath, err := deps.DraftPath(); err == nil {
		_ = stopwatch.ClearDraft(draftPath)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Saved: %s in %s (%s)\n",
		saved.Name, p.Name, formatStopwatch(saved.TotalTime))
}
