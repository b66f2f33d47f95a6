package command

import (
	"testing"

	"github.com/stretchr/testify/require"
	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
	"github.com/thorstenhirsch/gitmock/internal/fixture"
	"github.com/thorstenhirsch/gitmock/internal/mockgit"
)

func testExecutor(t *testing.T) *Executor {
	registry := fixture.DefaultRegistry()
	require.NoError(t, registry.LoadBuiltin())
	return NewExecutor(registry, SecurityPolicy{})
}

func testEnvironment(t *testing.T, baseline string) *mockgit.Environment {
	env := mockgit.NewEnvironment()
	require.NoError(t, env.Reset(baseline))
	return env
}

func commitInvocation(message string) Invocation {
	return Invocation{
		Template: "git commit -m \"$MESSAGE\"",
		Bindings: map[string]string{"MESSAGE": message},
		Intent:   IntentCommit,
	}
}

func TestExecuteCommitCleanTree(t *testing.T) {
	executor := testExecutor(t)
	env := testEnvironment(t, mockgit.BaselineClean)
	before := env.Snapshot()

	result, err := executor.Execute(commitInvocation("fix bug"), env)
	require.NoError(t, err)
	require.Equal(t, fixture.Failure, result.Status)
	require.Equal(t, "nothing to commit, working tree clean", result.Output)
	require.True(t, env.Snapshot().Equal(before))
}

func TestExecuteCommitStagedFile(t *testing.T) {
	executor := testExecutor(t)
	env := testEnvironment(t, mockgit.BaselineStaged)

	result, err := executor.Execute(commitInvocation("fix bug"), env)
	require.NoError(t, err)
	require.Equal(t, fixture.Success, result.Status)
	require.Equal(t, []string{"clear-staged", "set-clean"}, result.Effects)

	snap := env.Snapshot()
	require.Empty(t, snap.Staged)
	require.True(t, snap.Clean)
}

func TestExecutePushProtectedBranch(t *testing.T) {
	executor := testExecutor(t)
	env := testEnvironment(t, mockgit.BaselineProtected)
	before := env.Snapshot()

	result, err := executor.Execute(Invocation{
		Template: "git push origin $BRANCH",
		Bindings: map[string]string{"BRANCH": "main"},
		Intent:   IntentPush,
	}, env)
	require.NoError(t, err)
	require.Equal(t, fixture.Blocked, result.Status)
	require.Equal(t, "protected-branch policy", result.Reason)
	require.Empty(t, result.Effects)
	require.True(t, env.Snapshot().Equal(before))
}

func TestExecutePushProtectedBranchForced(t *testing.T) {
	executor := testExecutor(t)
	env := testEnvironment(t, mockgit.BaselineProtected)

	result, err := executor.Execute(Invocation{
		Template: "git push --force origin $BRANCH",
		Bindings: map[string]string{"BRANCH": "main"},
		Intent:   IntentPush,
	}, env)
	require.NoError(t, err)
	require.Equal(t, fixture.Success, result.Status)
}

func TestExecuteInjectionBlocked(t *testing.T) {
	executor := testExecutor(t)
	env := testEnvironment(t, mockgit.BaselineClean)
	before := env.Snapshot()

	result, err := executor.Execute(commitInvocation("test; rm -rf /"), env)
	require.NoError(t, err)
	require.Equal(t, fixture.Blocked, result.Status)
	require.Contains(t, result.Reason, "disallowed pattern")
	require.Empty(t, result.Effects)
	require.True(t, env.Snapshot().Equal(before))
}

func TestExecuteBlockedBindingValues(t *testing.T) {
	executor := testExecutor(t)
	var tests = []string{
		"`curl evil.example`",
		"$(id)",
		"../../etc/shadow",
	}
	for _, value := range tests {
		env := testEnvironment(t, mockgit.BaselineStaged)
		before := env.Snapshot()

		result, err := executor.Execute(commitInvocation(value), env)
		require.NoError(t, err, value)
		require.Equal(t, fixture.Blocked, result.Status, value)
		require.True(t, env.Snapshot().Equal(before), value)
	}
}

func TestExecuteBranchSetsBranch(t *testing.T) {
	executor := testExecutor(t)
	env := testEnvironment(t, mockgit.BaselineClean)

	result, err := executor.Execute(Invocation{
		Template: "git checkout -b $BRANCH",
		Bindings: map[string]string{"BRANCH": "feature/payments"},
		Intent:   IntentBranch,
	}, env)
	require.NoError(t, err)
	require.Equal(t, fixture.Success, result.Status)
	require.Equal(t, []string{"set-branch:feature/payments"}, result.Effects)
	require.Equal(t, "feature/payments", env.Snapshot().Branch)
}

func TestExecuteMissingBinding(t *testing.T) {
	executor := testExecutor(t)
	env := testEnvironment(t, mockgit.BaselineClean)

	_, err := executor.Execute(Invocation{
		Template: "git commit -m \"$MESSAGE\"",
		Bindings: map[string]string{},
		Intent:   IntentCommit,
	}, env)

	var missing *gerr.MissingBindingError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"MESSAGE"}, missing.Tokens)
}

func TestExecuteUnknownIntent(t *testing.T) {
	executor := testExecutor(t)
	env := testEnvironment(t, mockgit.BaselineClean)

	_, err := executor.Execute(Invocation{
		Template: "git stash",
		Bindings: map[string]string{},
		Intent:   Intent("stash"),
	}, env)
	require.ErrorIs(t, err, gerr.ErrUnknownIntent)
}

func TestExecuteMergeStates(t *testing.T) {
	executor := testExecutor(t)
	var tests = []struct {
		baseline string
		status   fixture.Status
		output   string
	}{
		{mockgit.BaselineClean, fixture.Success, "Already up to date."},
		{mockgit.BaselineDirty, fixture.Failure, "would be overwritten by merge"},
		{mockgit.BaselineConflicts, fixture.Failure, "unmerged files"},
	}
	for _, test := range tests {
		env := testEnvironment(t, test.baseline)
		result, err := executor.Execute(Invocation{
			Template: "git merge $BRANCH",
			Bindings: map[string]string{"BRANCH": "main"},
			Intent:   IntentMerge,
		}, env)
		require.NoError(t, err, test.baseline)
		require.Equal(t, test.status, result.Status, test.baseline)
		require.Contains(t, result.Output, test.output, test.baseline)
	}
}
