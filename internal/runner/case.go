package runner

import (
	"github.com/thorstenhirsch/gitmock/internal/command"
	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
	"github.com/thorstenhirsch/gitmock/internal/mockgit"
)

// Category groups test cases by what they exercise.
type Category string

const (
	CategoryHappy        Category = "happy"
	CategoryError        Category = "error"
	CategoryEdge         Category = "edge"
	CategorySecurity     Category = "security"
	CategorySubstitution Category = "substitution"
	CategoryFlow         Category = "flow"
)

// Categories returns the documented categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryHappy,
		CategoryError,
		CategoryEdge,
		CategorySecurity,
		CategorySubstitution,
		CategoryFlow,
	}
}

func validCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Assertion inspects the final state snapshot and the full result history
// of a case and returns nil on pass.
type Assertion func(snap mockgit.RepoState, results []command.Result) error

// Case is one named, self-contained scenario: a starting baseline, an
// ordered sequence of invocations and an assertion over the outcome.
// Cases are statically defined at build time and executed once per run.
type Case struct {
	Name        string
	Category    Category
	Baseline    string
	Invocations []command.Invocation
	Assert      Assertion
	// SkipReason marks the case as skipped without executing it
	SkipReason string
}

// validate catches authoring mistakes before any test executes; these are
// configuration errors, not test failures.
func (c *Case) validate() error {
	if !validCategory(c.Category) {
		return gerr.ErrUnknownCategory
	}
	return validBaseline(c.Baseline)
}

// validBaseline checks a baseline name against the fixed set without
// touching the live environment.
func validBaseline(name string) error {
	for _, known := range mockgit.Baselines() {
		if name == known {
			return nil
		}
	}
	return gerr.ErrUnknownBaseline
}
