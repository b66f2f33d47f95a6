package runner

import (
	"fmt"
	"strings"

	"github.com/thorstenhirsch/gitmock/internal/command"
	"github.com/thorstenhirsch/gitmock/internal/fixture"
	"github.com/thorstenhirsch/gitmock/internal/mockgit"
)

// BuiltinSuite returns the harness's static test suite. Declaration order
// is execution order.
func BuiltinSuite() []*Case {
	return []*Case{
		// happy path
		{
			Name:     "commit-staged-file",
			Category: CategoryHappy,
			Baseline: mockgit.BaselineStaged,
			Invocations: []command.Invocation{
				commitInvocation("fix bug"),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success); err != nil {
					return err
				}
				if len(snap.Staged) != 0 {
					return fmt.Errorf("staged list not cleared: %v", snap.Staged)
				}
				if !snap.Clean {
					return fmt.Errorf("working tree not clean after commit")
				}
				return nil
			},
		},
		{
			Name:     "branch-create",
			Category: CategoryHappy,
			Baseline: mockgit.BaselineClean,
			Invocations: []command.Invocation{
				{
					Template: "git checkout -b $BRANCH",
					Bindings: map[string]string{"BRANCH": "feature/payments"},
					Intent:   command.IntentBranch,
				},
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success); err != nil {
					return err
				}
				if snap.Branch != "feature/payments" {
					return fmt.Errorf("branch is %q, want feature/payments", snap.Branch)
				}
				return nil
			},
		},
		{
			Name:     "push-feature-branch",
			Category: CategoryHappy,
			Baseline: mockgit.BaselineDirty,
			Invocations: []command.Invocation{
				pushInvocation("feature/login", false),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				return expectStatuses(results, fixture.Success)
			},
		},
		{
			Name:     "status-clean-tree",
			Category: CategoryHappy,
			Baseline: mockgit.BaselineClean,
			Invocations: []command.Invocation{
				statusInvocation(),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success); err != nil {
					return err
				}
				return expectOutputContains(results[0], "working tree clean")
			},
		},

		// error conditions
		{
			Name:     "commit-clean-tree",
			Category: CategoryError,
			Baseline: mockgit.BaselineClean,
			Invocations: []command.Invocation{
				commitInvocation("fix bug"),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Failure); err != nil {
					return err
				}
				if results[0].Output != "nothing to commit, working tree clean" {
					return fmt.Errorf("unexpected output %q", results[0].Output)
				}
				return expectStateUnchanged(snap, mockgit.BaselineClean)
			},
		},
		{
			Name:     "merge-unmerged-files",
			Category: CategoryError,
			Baseline: mockgit.BaselineConflicts,
			Invocations: []command.Invocation{
				mergeInvocation("main"),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Failure); err != nil {
					return err
				}
				return expectOutputContains(results[0], "unmerged files")
			},
		},
		{
			Name:     "merge-dirty-tree",
			Category: CategoryError,
			Baseline: mockgit.BaselineDirty,
			Invocations: []command.Invocation{
				mergeInvocation("main"),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Failure); err != nil {
					return err
				}
				return expectOutputContains(results[0], "would be overwritten by merge")
			},
		},

		// edge cases
		{
			Name:     "commit-conflicted-tree",
			Category: CategoryEdge,
			Baseline: mockgit.BaselineConflicts,
			Invocations: []command.Invocation{
				commitInvocation("resolve"),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Failure); err != nil {
					return err
				}
				return expectOutputContains(results[0], "unmerged files")
			},
		},
		{
			Name:     "commit-oversized-file",
			Category: CategoryEdge,
			Baseline: mockgit.BaselineLargeFiles,
			Invocations: []command.Invocation{
				commitInvocation("add demo video"),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Blocked); err != nil {
					return err
				}
				if results[0].Reason != "oversized-file policy" {
					return fmt.Errorf("unexpected block reason %q", results[0].Reason)
				}
				return expectStateUnchanged(snap, mockgit.BaselineLargeFiles)
			},
		},
		{
			Name:     "push-protected-branch",
			Category: CategoryEdge,
			Baseline: mockgit.BaselineProtected,
			Invocations: []command.Invocation{
				pushInvocation("main", false),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Blocked); err != nil {
					return err
				}
				if results[0].Reason != "protected-branch policy" {
					return fmt.Errorf("unexpected block reason %q", results[0].Reason)
				}
				if len(results[0].Effects) != 0 {
					return fmt.Errorf("blocked invocation applied effects: %v", results[0].Effects)
				}
				return expectStateUnchanged(snap, mockgit.BaselineProtected)
			},
		},
		{
			Name:     "push-protected-forced",
			Category: CategoryEdge,
			Baseline: mockgit.BaselineProtected,
			Invocations: []command.Invocation{
				pushInvocation("main", true),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success); err != nil {
					return err
				}
				return expectOutputContains(results[0], "forced update")
			},
		},

		// security
		{
			Name:     "commit-injection-semicolon",
			Category: CategorySecurity,
			Baseline: mockgit.BaselineClean,
			Invocations: []command.Invocation{
				commitInvocation("test; rm -rf /"),
			},
			Assert: expectBlockedUnchanged(mockgit.BaselineClean, "disallowed pattern"),
		},
		{
			Name:     "commit-injection-backtick",
			Category: CategorySecurity,
			Baseline: mockgit.BaselineStaged,
			Invocations: []command.Invocation{
				commitInvocation("`cat /etc/passwd`"),
			},
			Assert: expectBlockedUnchanged(mockgit.BaselineStaged, "disallowed pattern"),
		},
		{
			Name:     "branch-path-traversal",
			Category: CategorySecurity,
			Baseline: mockgit.BaselineClean,
			Invocations: []command.Invocation{
				{
					Template: "git checkout -b $BRANCH",
					Bindings: map[string]string{"BRANCH": "../../escape"},
					Intent:   command.IntentBranch,
				},
			},
			Assert: expectBlockedUnchanged(mockgit.BaselineClean, "path traversal"),
		},
		{
			Name:     "commit-sensitive-keyword",
			Category: CategorySecurity,
			Baseline: mockgit.BaselineStaged,
			Invocations: []command.Invocation{
				commitInvocation("add api key to config"),
			},
			Assert: expectBlockedUnchanged(mockgit.BaselineStaged, "sensitive data keyword"),
		},

		// argument substitution
		{
			Name:     "substitute-complete-bindings",
			Category: CategorySubstitution,
			Baseline: mockgit.BaselineClean,
			Invocations: []command.Invocation{
				{
					Template: "git status $OPTIONS",
					Bindings: map[string]string{"OPTIONS": "--short"},
					Intent:   command.IntentStatus,
				},
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success); err != nil {
					return err
				}
				if results[0].Command != "git status --short" {
					return fmt.Errorf("unexpected command %q", results[0].Command)
				}
				return nil
			},
		},
		{
			Name:     "substitute-multiple-tokens",
			Category: CategorySubstitution,
			Baseline: mockgit.BaselineStaged,
			Invocations: []command.Invocation{
				{
					Template: "git commit -m \"$MESSAGE\" --author=\"$AUTHOR\"",
					Bindings: map[string]string{
						"MESSAGE": "fix bug",
						"AUTHOR":  "Jo Developer",
					},
					Intent: command.IntentCommit,
				},
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success); err != nil {
					return err
				}
				want := "git commit -m \"fix bug\" --author=\"Jo Developer\""
				if results[0].Command != want {
					return fmt.Errorf("command %q, want %q", results[0].Command, want)
				}
				return nil
			},
		},
		{
			Name:     "substitute-literal-value",
			Category: CategorySubstitution,
			Baseline: mockgit.BaselineStaged,
			Invocations: []command.Invocation{
				commitInvocation("fix: handle the 'quoted' case"),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success); err != nil {
					return err
				}
				return expectOutputContains(results[0], "commit created")
			},
		},

		// command flow
		{
			Name:     "status-commit-push-flow",
			Category: CategoryFlow,
			Baseline: mockgit.BaselineStaged,
			Invocations: []command.Invocation{
				statusInvocation(),
				commitInvocation("fix bug"),
				statusInvocation(),
				pushInvocation("feature/login", false),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success, fixture.Success, fixture.Success, fixture.Success); err != nil {
					return err
				}
				// staged baseline is not clean, so the first status must
				// report the dirty tree and the one after commit a clean one
				if err := expectOutputContains(results[0], "Changes not staged"); err != nil {
					return err
				}
				if err := expectOutputContains(results[2], "working tree clean"); err != nil {
					return err
				}
				if !snap.Clean || len(snap.Staged) != 0 {
					return fmt.Errorf("final state not clean after flow")
				}
				return nil
			},
		},
		{
			Name:     "branch-commit-flow",
			Category: CategoryFlow,
			Baseline: mockgit.BaselineStaged,
			Invocations: []command.Invocation{
				{
					Template: "git checkout -b $BRANCH",
					Bindings: map[string]string{"BRANCH": "feature/hotfix"},
					Intent:   command.IntentBranch,
				},
				commitInvocation("hotfix"),
			},
			Assert: func(snap mockgit.RepoState, results []command.Result) error {
				if err := expectStatuses(results, fixture.Success, fixture.Success); err != nil {
					return err
				}
				if snap.Branch != "feature/hotfix" {
					return fmt.Errorf("branch is %q, want feature/hotfix", snap.Branch)
				}
				if len(snap.Staged) != 0 {
					return fmt.Errorf("staged list not cleared: %v", snap.Staged)
				}
				return nil
			},
		},
	}
}

func commitInvocation(message string) command.Invocation {
	return command.Invocation{
		Template: "git commit -m \"$MESSAGE\"",
		Bindings: map[string]string{"MESSAGE": message},
		Intent:   command.IntentCommit,
	}
}

func statusInvocation() command.Invocation {
	return command.Invocation{
		Template: "git status",
		Bindings: map[string]string{},
		Intent:   command.IntentStatus,
	}
}

func pushInvocation(branch string, force bool) command.Invocation {
	template := "git push origin $BRANCH"
	if force {
		template = "git push --force origin $BRANCH"
	}
	return command.Invocation{
		Template: template,
		Bindings: map[string]string{"BRANCH": branch},
		Intent:   command.IntentPush,
	}
}

func mergeInvocation(branch string) command.Invocation {
	return command.Invocation{
		Template: "git merge $BRANCH",
		Bindings: map[string]string{"BRANCH": branch},
		Intent:   command.IntentMerge,
	}
}

func expectStatuses(results []command.Result, want ...fixture.Status) error {
	if len(results) != len(want) {
		return fmt.Errorf("%d results, want %d", len(results), len(want))
	}
	for i, status := range want {
		if results[i].Status != status {
			return fmt.Errorf("invocation %d status %s, want %s", i+1, results[i].Status, status)
		}
	}
	return nil
}

func expectOutputContains(result command.Result, substr string) error {
	if !strings.Contains(result.Output, substr) {
		return fmt.Errorf("output %q does not contain %q", result.Output, substr)
	}
	return nil
}

// expectBlockedUnchanged builds the standard security assertion: exactly one
// blocked result whose reason references the triggered policy, with the
// state still at its baseline canon.
func expectBlockedUnchanged(baseline, reasonSubstr string) Assertion {
	return func(snap mockgit.RepoState, results []command.Result) error {
		if err := expectStatuses(results, fixture.Blocked); err != nil {
			return err
		}
		if !strings.Contains(results[0].Reason, reasonSubstr) {
			return fmt.Errorf("block reason %q does not reference %q", results[0].Reason, reasonSubstr)
		}
		if len(results[0].Effects) != 0 {
			return fmt.Errorf("blocked invocation applied effects: %v", results[0].Effects)
		}
		return expectStateUnchanged(snap, baseline)
	}
}

// expectStateUnchanged compares a snapshot against the baseline's canonical
// values, proving no partial mutation happened.
func expectStateUnchanged(snap mockgit.RepoState, baseline string) error {
	env := mockgit.NewEnvironment()
	if err := env.Reset(baseline); err != nil {
		return err
	}
	if canon := env.Snapshot(); !snap.Equal(canon) {
		return fmt.Errorf("state mutated from %s baseline", baseline)
	}
	return nil
}
