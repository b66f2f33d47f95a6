package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// HarnessError is the errors from the mock harness packages
type HarnessError string

const (
	// ErrUnknownBaseline is thrown when a test case references a baseline
	// name outside the fixed set
	ErrUnknownBaseline HarnessError = "unknown baseline"
	// ErrUnknownEffect is thrown when the executor proposes an effect
	// descriptor the environment does not understand. Unknown effects are
	// rejected, not ignored, so test authors are alerted to typos
	ErrUnknownEffect HarnessError = "unknown effect"
	// ErrNoMatchingTests is thrown when a category or test name selection
	// matches nothing
	ErrNoMatchingTests HarnessError = "no matching tests"
	// ErrFixtureMissing is thrown at load time when a registered fixture key
	// has no backing file
	ErrFixtureMissing HarnessError = "fixture file missing"
	// ErrFixtureNotFound is thrown when no fixture matches an invocation at
	// execution time
	ErrFixtureNotFound HarnessError = "no fixture matches invocation"
	// ErrUnknownIntent is thrown when an invocation declares an intent
	// outside the supported set
	ErrUnknownIntent HarnessError = "unknown command intent"
	// ErrUnknownCategory is thrown when a test case declares a category
	// outside the documented set
	ErrUnknownCategory HarnessError = "unknown test category"
)

func (e HarnessError) Error() string {
	return string(e)
}

// MissingBindingError is thrown when a command template contains placeholder
// tokens with no corresponding binding. It carries every unbound token found,
// not just the first, so a test author can fix them all in one pass.
type MissingBindingError struct {
	Tokens []string
}

func (e *MissingBindingError) Error() string {
	tokens := make([]string, len(e.Tokens))
	copy(tokens, e.Tokens)
	sort.Strings(tokens)
	return fmt.Sprintf("unbound placeholder token(s): %s", strings.Join(tokens, ", "))
}

// IsConfigError checks if the error is fatal before any test executes
// (unknown baseline, unknown selection, missing fixture file). Such errors
// abort the run with a non-zero exit instead of being recorded as a failure.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range []HarnessError{ErrUnknownBaseline, ErrNoMatchingTests, ErrFixtureMissing, ErrUnknownCategory} {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsCaseError checks if the error fails only the test case that triggered it
// while the run continues with the remaining cases.
func IsCaseError(err error) bool {
	if err == nil {
		return false
	}
	var binding *MissingBindingError
	if stderrors.As(err, &binding) {
		return true
	}
	for _, target := range []HarnessError{ErrUnknownEffect, ErrFixtureNotFound, ErrUnknownIntent} {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}
