// Package voice turns noisy speech transcripts into stopwatch commands.
//
// It is layered so each policy is testable on its own: Normalize and
// Classifier map raw text to a command category, Debouncer decides whether
// a classified candidate may execute, and Controller applies
// state-dependent guards and dispatches to the stopwatch. Microphone
// acquisition is an external collaborator behind the Source interface.
package voice

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Command is a recognized stopwatch command category.
type Command int

const (
	CommandNone Command = iota
	CommandStop
	CommandPause
	CommandResume
	CommandReset
	CommandStart
	CommandNext
)

// String returns the command name for display and logging.
func (c Command) String() string {
	switch c {
	case CommandStop:
		return "stop"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandReset:
		return "reset"
	case CommandStart:
		return "start"
	case CommandNext:
		return "next"
	default:
		return "none"
	}
}

// classifyOrder is the priority order used when an utterance contains
// stems from more than one category. Stop wins over everything so a
// trailing "…and stop" never triggers two actions.
var classifyOrder = []Command{
	CommandStop,
	CommandPause,
	CommandResume,
	CommandReset,
	CommandStart,
	CommandNext,
}

// normalizer folds text to a diacritic-free form: NFD decomposition,
// removal of combining marks, NFC recomposition.
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the text and strips diacritics, so "Pausé" and
// "pause" classify identically and echo suppression compares stable
// strings.
func Normalize(text string) string {
	folded := strings.ToLower(strings.TrimSpace(text))
	out, _, err := transform.String(normalizer, folded)
	if err != nil {
		return folded
	}
	return out
}

// StemSet holds the per-command stem table for one language. Stems are
// matched by substring containment against normalized text.
type StemSet struct {
	Start  []string
	Next   []string
	Pause  []string
	Resume []string
	Stop   []string
	Reset  []string
}

// EnglishStems returns the primary (English) stem table.
func EnglishStems() StemSet {
	return StemSet{
		Start:  []string{"start", "begin"},
		Next:   []string{"lap", "next", "split"},
		Pause:  []string{"pause", "hold"},
		Resume: []string{"resume", "continue"},
		Stop:   []string{"stop", "finish", "done"},
		Reset:  []string{"reset", "clear"},
	}
}

// NorwegianStems returns the Norwegian stem table. Stems with diacritics
// are normalized at classification time, so they are listed in folded
// form here.
func NorwegianStems() StemSet {
	return StemSet{
		Start:  []string{"start", "begynn", "ga i gang"},
		Next:   []string{"runde", "neste", "etappe"},
		Pause:  []string{"pause", "vent"},
		Resume: []string{"fortsett", "gjenoppta"},
		Stop:   []string{"stopp", "ferdig", "slutt"},
		Reset:  []string{"nullstill", "tilbakestill"},
	}
}

// StemsForLanguage returns the stem table for a secondary language code.
// Returns false for unknown codes.
func StemsForLanguage(lang string) (StemSet, bool) {
	switch lang {
	case "en":
		return EnglishStems(), true
	case "no", "nb", "nn":
		return NorwegianStems(), true
	default:
		return StemSet{}, false
	}
}

func (s StemSet) stems(c Command) []string {
	switch c {
	case CommandStart:
		return s.Start
	case CommandNext:
		return s.Next
	case CommandPause:
		return s.Pause
	case CommandResume:
		return s.Resume
	case CommandStop:
		return s.Stop
	case CommandReset:
		return s.Reset
	default:
		return nil
	}
}

// Classifier maps normalized transcript text to exactly one command
// category across one or more stem tables.
type Classifier struct {
	sets []StemSet
}

// NewClassifier creates a classifier over the given stem tables. Stems
// are normalized once up front.
func NewClassifier(sets ...StemSet) *Classifier {
	normalized := make([]StemSet, len(sets))
	for i, s := range sets {
		normalized[i] = StemSet{
			Start:  normalizeStems(s.Start),
			Next:   normalizeStems(s.Next),
			Pause:  normalizeStems(s.Pause),
			Resume: normalizeStems(s.Resume),
			Stop:   normalizeStems(s.Stop),
			Reset:  normalizeStems(s.Reset),
		}
	}
	return &Classifier{sets: normalized}
}

func normalizeStems(stems []string) []string {
	out := make([]string, len(stems))
	for i, s := range stems {
		out[i] = Normalize(s)
	}
	return out
}

// Classify normalizes text and returns the first matching category in
// priority order, or CommandNone when no stem matches.
func (c *Classifier) Classify(text string) Command {
	normalized := Normalize(text)
	if normalized == "" {
		return CommandNone
	}
	for _, cmd := range classifyOrder {
		for _, set := range c.sets {
			for _, stem := range set.stems(cmd) {
				if strings.Contains(normalized, stem) {
					return cmd
				}
			}
		}
	}
	return CommandNone
}
