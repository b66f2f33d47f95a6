package mockgit

import (
	"strings"

	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
)

// Environment owns the live RepoState for the duration of one test case.
// All mutation goes through Reset and ApplyEffect, which keeps a
// single-writer discipline even though the harness is fully synchronous.
type Environment struct {
	state     *RepoState
	baseline  string
	snapshots int
}

// NewEnvironment returns an environment with no state; Reset must be called
// before the first snapshot or effect.
func NewEnvironment() *Environment {
	return &Environment{}
}

// Reset sets all state attributes to the named baseline's canonical values.
// Resetting twice in a row with the same baseline yields identical snapshots.
func (e *Environment) Reset(baseline string) error {
	state, err := baselineState(baseline)
	if err != nil {
		return err
	}
	e.state = state
	e.baseline = baseline
	traceState("reset", baseline, *state)
	return nil
}

// Baseline returns the name of the most recent reset.
func (e *Environment) Baseline() string {
	return e.baseline
}

// Snapshot returns an immutable copy of the current state for assertion
// inspection.
func (e *Environment) Snapshot() RepoState {
	e.snapshots++
	if e.state == nil {
		return RepoState{}
	}
	return e.state.Copy()
}

// SnapshotCount returns how many snapshots have been taken since creation.
// List mode verifies zero cases executed by checking this stays at zero.
func (e *Environment) SnapshotCount() int {
	return e.snapshots
}

// Effect descriptors understood by ApplyEffect. Parameterised effects carry
// their argument after a colon, e.g. "set-branch:feature/x".
const (
	EffectClearStaged     = "clear-staged"
	EffectSetClean        = "set-clean"
	EffectSetDirty        = "set-dirty"
	EffectStage           = "stage"
	EffectUnstage         = "unstage"
	EffectSetBranch       = "set-branch"
	EffectMarkConflict    = "mark-conflict"
	EffectClearConflicts  = "clear-conflicts"
	EffectClearLargeFiles = "clear-large-files"
)

// ApplyEffect mutates the state according to a side-effect descriptor
// proposed by the command executor. Unknown descriptors are rejected rather
// than ignored.
func (e *Environment) ApplyEffect(effect string) error {
	if e.state == nil {
		return gerr.ErrUnknownBaseline
	}
	name, arg := splitEffect(effect)
	switch name {
	case EffectClearStaged:
		e.state.Staged = nil
	case EffectSetClean:
		e.state.Clean = true
	case EffectSetDirty:
		e.state.Clean = false
	case EffectStage:
		e.state.Clean = false
		e.state.Staged = appendPath(e.state.Staged, arg)
		e.state.Unstaged = removePath(e.state.Unstaged, arg)
	case EffectUnstage:
		e.state.Staged = removePath(e.state.Staged, arg)
	case EffectSetBranch:
		e.state.Branch = arg
		e.state.Protected = false
	case EffectMarkConflict:
		e.state.Clean = false
		e.state.Conflicts = appendPath(e.state.Conflicts, arg)
	case EffectClearConflicts:
		e.state.Conflicts = nil
	case EffectClearLargeFiles:
		e.state.LargeFiles = nil
	default:
		return gerr.ErrUnknownEffect
	}
	traceState(effect, e.baseline, *e.state)
	return nil
}

func splitEffect(effect string) (string, string) {
	if i := strings.IndexByte(effect, ':'); i >= 0 {
		return effect[:i], effect[i+1:]
	}
	return effect, ""
}

func appendPath(paths []string, p string) []string {
	if p == "" {
		return paths
	}
	for _, existing := range paths {
		if existing == p {
			return paths
		}
	}
	return append(paths, p)
}

func removePath(paths []string, p string) []string {
	kept := paths[:0]
	for _, existing := range paths {
		if existing != p {
			kept = append(kept, existing)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
