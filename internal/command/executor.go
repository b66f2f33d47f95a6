package command

import (
	"strconv"
	"strings"

	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
	"github.com/thorstenhirsch/gitmock/internal/fixture"
	"github.com/thorstenhirsch/gitmock/internal/mockgit"
)

// Intent identifies the git operation an invocation simulates.
type Intent string

const (
	IntentCommit Intent = "commit"
	IntentBranch Intent = "branch"
	IntentPush   Intent = "push"
	IntentStatus Intent = "status"
	IntentMerge  Intent = "merge"
)

// Invocation represents one simulated command call: a template with $NAME
// placeholder tokens, the bindings to substitute, and the declared intent.
type Invocation struct {
	Template string
	Bindings map[string]string
	Intent   Intent
}

// Result is produced once per invocation. Effects lists the state mutations
// that were actually applied; it stays empty for blocked invocations.
type Result struct {
	// Command is the fully substituted command string
	Command string
	// Status is the simulated exit status
	Status fixture.Status
	// Output is the matched fixture text
	Output string
	// Reason describes why an invocation was blocked
	Reason string
	// Effects holds the applied side-effect descriptors
	Effects []string
}

// Executor performs placeholder substitution, selects canned responses and
// derives state-mutating effects. It never executes anything for real and
// never mutates repository state directly; mutation goes through the
// environment's ApplyEffect so the single-writer discipline holds.
type Executor struct {
	registry *fixture.Registry
	policy   SecurityPolicy
}

// NewExecutor returns an executor backed by a loaded fixture registry.
func NewExecutor(registry *fixture.Registry, policy SecurityPolicy) *Executor {
	return &Executor{
		registry: registry,
		policy:   policy,
	}
}

// Execute runs one invocation against the environment's current state.
//
// Order matters: substitution first, then the security scan of the
// substituted string, then fixture matching. A blocked invocation
// short-circuits before any effect is proposed, so repository state is
// guaranteed unchanged on block.
func (e *Executor) Execute(inv Invocation, env *mockgit.Environment) (Result, error) {
	cmd, err := Substitute(inv.Template, inv.Bindings)
	if err != nil {
		return Result{}, err
	}

	if reason, blocked := e.policy.Scan(cmd); blocked {
		mockgit.Trace("F", "intent=%s blocked reason=%q", inv.Intent, reason)
		return Result{
			Command: cmd,
			Status:  fixture.Blocked,
			Reason:  reason,
		}, nil
	}

	switch inv.Intent {
	case IntentCommit, IntentBranch, IntentPush, IntentStatus, IntentMerge:
	default:
		return Result{}, gerr.ErrUnknownIntent
	}

	snap := env.Snapshot()
	signature := stateSignature(snap)
	signature[fixture.AttrForce] = strconv.FormatBool(strings.Contains(cmd, "--force"))
	f, err := e.registry.Match(string(inv.Intent), signature)
	if err != nil {
		return Result{}, err
	}
	mockgit.Trace("F", "intent=%s scenario=%s status=%s", inv.Intent, f.Scenario, f.Status)

	result := Result{
		Command: cmd,
		Status:  f.Status,
		Output:  f.Output,
		Reason:  f.Reason,
	}
	if f.Status == fixture.Blocked {
		return result, nil
	}

	for _, effect := range f.Effects {
		resolved, err := Substitute(effect, inv.Bindings)
		if err != nil {
			return Result{}, err
		}
		if err := env.ApplyEffect(resolved); err != nil {
			return Result{}, err
		}
		result.Effects = append(result.Effects, resolved)
	}
	return result, nil
}

// stateSignature flattens a state snapshot into the attribute map fixtures
// condition on.
func stateSignature(s mockgit.RepoState) map[string]string {
	return map[string]string{
		fixture.AttrClean:       strconv.FormatBool(s.Clean),
		fixture.AttrStaged:      strconv.FormatBool(len(s.Staged) > 0),
		fixture.AttrProtected:   strconv.FormatBool(s.Protected),
		fixture.AttrConflicts:   strconv.FormatBool(s.HasConflicts()),
		fixture.AttrLargeStaged: strconv.FormatBool(s.HasStagedLargeFile()),
	}
}
