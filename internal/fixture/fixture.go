package fixture

import (
	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
)

// Status is the simulated exit status a fixture carries.
type Status string

const (
	// Success simulates a zero exit code
	Success Status = "success"
	// Failure simulates a non-zero exit code
	Failure Status = "failure"
	// Blocked simulates a policy rejection; blocked invocations never
	// mutate repository state
	Blocked Status = "blocked"
)

// Fixture binds a canned output text to an intent plus the state attributes
// it applies to. Output is filled by a loader; everything else is declared
// at registration time.
type Fixture struct {
	// Intent is the command intent this fixture answers
	Intent string
	// Scenario names the situation; together with Intent it encodes the
	// backing file name, e.g. git-commit-success.txt
	Scenario string
	// Status is the simulated exit status
	Status Status
	// Conditions maps state attribute names to required values. A fixture
	// applies only when every condition holds.
	Conditions map[string]string
	// Reason names the policy behind a Blocked status, e.g.
	// "protected-branch policy"
	Reason string
	// Effects are the state mutations a matching invocation proposes.
	// Placeholder tokens in effects are substituted from the invocation's
	// bindings before being applied.
	Effects []string
	// Output is the canned response text
	Output string
}

// FileName returns the conventional backing file name for the fixture.
func (f *Fixture) FileName() string {
	return "git-" + f.Intent + "-" + f.Scenario + ".txt"
}

// Registry is the static lookup table from (intent, state signature) to
// canned output. Registration order is significant: on an exact specificity
// tie the fixture registered first wins, which keeps matching deterministic.
type Registry struct {
	fixtures []*Fixture
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fixtures: make([]*Fixture, 0)}
}

// Register appends a fixture, preserving registration order.
func (r *Registry) Register(f *Fixture) {
	r.fixtures = append(r.fixtures, f)
}

// All returns the registered fixtures in registration order.
func (r *Registry) All() []*Fixture {
	return r.fixtures
}

// Match selects the fixture for an intent and a state signature. The most
// state-specific applicable fixture (most conditions) wins; ties go to the
// earliest registration.
func (r *Registry) Match(intent string, signature map[string]string) (*Fixture, error) {
	var best *Fixture
	bestSpecificity := -1
	for _, f := range r.fixtures {
		if f.Intent != intent {
			continue
		}
		if !applies(f, signature) {
			continue
		}
		if len(f.Conditions) > bestSpecificity {
			best = f
			bestSpecificity = len(f.Conditions)
		}
	}
	if best == nil {
		return nil, gerr.ErrFixtureNotFound
	}
	return best, nil
}

func applies(f *Fixture, signature map[string]string) bool {
	for attr, want := range f.Conditions {
		if signature[attr] != want {
			return false
		}
	}
	return true
}
