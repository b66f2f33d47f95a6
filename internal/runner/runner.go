package runner

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/thorstenhirsch/gitmock/internal/command"
	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
	"github.com/thorstenhirsch/gitmock/internal/mockgit"
)

// Outcome is the per-case verdict.
type Outcome string

const (
	Passed  Outcome = "pass"
	Failed  Outcome = "fail"
	Skipped Outcome = "skip"
)

// CaseResult records one case's verdict and, on failure, the reason.
type CaseResult struct {
	Name     string
	Category Category
	Outcome  Outcome
	Message  string
}

// Report aggregates one run's counts. It is printed once per invocation and
// never persisted.
type Report struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Results []CaseResult
}

// PassRate returns the percentage of selected cases that passed.
func (r *Report) PassRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Passed) / float64(r.Total) * 100
}

// Selection restricts a run to one category or one named case. The zero
// value selects everything.
type Selection struct {
	Category string
	Test     string
}

// Runner orchestrates sequential case execution and report aggregation.
// Cases run strictly in declared order: the repository state is shared
// mutable data scoped to one case, so there is nothing to parallelise.
type Runner struct {
	cases    []*Case
	env      *mockgit.Environment
	executor *command.Executor
	out      io.Writer
}

var (
	passLabel = color.New(color.FgGreen).Sprint("PASS")
	failLabel = color.New(color.FgRed).Sprint("FAIL")
	skipLabel = color.New(color.FgYellow).Sprint("SKIP")
)

// New assembles a runner over a case suite.
func New(cases []*Case, env *mockgit.Environment, executor *command.Executor, out io.Writer) *Runner {
	return &Runner{
		cases:    cases,
		env:      env,
		executor: executor,
		out:      out,
	}
}

// Run executes the selected cases in declared order and prints the report.
// Configuration errors (unknown baseline, category or selection) abort
// before any case executes; everything that goes wrong inside a case is
// recorded as that case's failure and the run continues.
func (r *Runner) Run(sel Selection) (*Report, error) {
	for _, c := range r.cases {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("test case %s: %w", c.Name, err)
		}
	}

	selected, err := r.selectCases(sel)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, c := range selected {
		result := r.runCase(c)
		report.Total++
		switch result.Outcome {
		case Passed:
			report.Passed++
		case Failed:
			report.Failed++
		case Skipped:
			report.Skipped++
		}
		report.Results = append(report.Results, result)
		r.printResult(result)
	}

	r.printSummary(report)
	return report, nil
}

// List prints every known case name grouped by category without executing
// anything.
func (r *Runner) List() {
	for _, category := range Categories() {
		printed := false
		for _, c := range r.cases {
			if c.Category != category {
				continue
			}
			if !printed {
				fmt.Fprintf(r.out, "%s:\n", category)
				printed = true
			}
			fmt.Fprintf(r.out, "  %s\n", c.Name)
		}
	}
}

func (r *Runner) selectCases(sel Selection) ([]*Case, error) {
	if sel.Test != "" {
		for _, c := range r.cases {
			if c.Name == sel.Test {
				return []*Case{c}, nil
			}
		}
		return nil, fmt.Errorf("test %s: %w", sel.Test, gerr.ErrNoMatchingTests)
	}
	if sel.Category != "" {
		if !validCategory(Category(sel.Category)) {
			return nil, fmt.Errorf("category %s: %w", sel.Category, gerr.ErrNoMatchingTests)
		}
		var selected []*Case
		for _, c := range r.cases {
			if string(c.Category) == sel.Category {
				selected = append(selected, c)
			}
		}
		if len(selected) == 0 {
			return nil, fmt.Errorf("category %s: %w", sel.Category, gerr.ErrNoMatchingTests)
		}
		return selected, nil
	}
	return r.cases, nil
}

// runCase never lets a case abort the run: panics and unexpected errors are
// converted into a failure result.
func (r *Runner) runCase(c *Case) (result CaseResult) {
	result = CaseResult{Name: c.Name, Category: c.Category}

	if c.SkipReason != "" {
		result.Outcome = Skipped
		result.Message = c.SkipReason
		return result
	}

	defer func() {
		if rec := recover(); rec != nil {
			result.Outcome = Failed
			result.Message = fmt.Sprintf("unexpected panic: %v", rec)
		}
	}()

	if err := r.env.Reset(c.Baseline); err != nil {
		result.Outcome = Failed
		result.Message = err.Error()
		return result
	}

	results := make([]command.Result, 0, len(c.Invocations))
	for i, inv := range c.Invocations {
		res, err := r.executor.Execute(inv, r.env)
		if err != nil {
			result.Outcome = Failed
			if gerr.IsCaseError(err) {
				result.Message = fmt.Sprintf("invocation %d: %v", i+1, err)
			} else {
				result.Message = fmt.Sprintf("invocation %d unexpected error: %v", i+1, err)
			}
			return result
		}
		results = append(results, res)
	}

	if err := c.Assert(r.env.Snapshot(), results); err != nil {
		result.Outcome = Failed
		result.Message = err.Error()
		return result
	}

	result.Outcome = Passed
	return result
}

func (r *Runner) printResult(result CaseResult) {
	switch result.Outcome {
	case Passed:
		fmt.Fprintf(r.out, "%s %s (%s)\n", passLabel, result.Name, result.Category)
	case Skipped:
		fmt.Fprintf(r.out, "%s %s (%s): %s\n", skipLabel, result.Name, result.Category, result.Message)
	default:
		fmt.Fprintf(r.out, "%s %s (%s): %s\n", failLabel, result.Name, result.Category, result.Message)
	}
}

func (r *Runner) printSummary(report *Report) {
	fmt.Fprintf(r.out, "\ntotal: %d  passed: %d  failed: %d  skipped: %d\n",
		report.Total, report.Passed, report.Failed, report.Skipped)
	fmt.Fprintf(r.out, "pass rate: %.1f%%\n", report.PassRate())
	if report.Failed == 0 {
		fmt.Fprintln(r.out, color.New(color.FgGreen, color.Bold).Sprint("SUCCESS: all tests passed"))
	} else {
		fmt.Fprintln(r.out, color.New(color.FgRed, color.Bold).Sprintf("FAILURE: %d tests failed", report.Failed))
	}
}
