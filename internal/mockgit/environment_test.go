package mockgit

import (
	"testing"

	"github.com/stretchr/testify/require"
	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
)

func TestResetIdempotence(t *testing.T) {
	env := NewEnvironment()
	for _, baseline := range Baselines() {
		require.NoError(t, env.Reset(baseline))
		first := env.Snapshot()
		require.NoError(t, env.Reset(baseline))
		second := env.Snapshot()
		require.True(t, first.Equal(second), baseline)
	}
}

func TestResetUnknownBaseline(t *testing.T) {
	env := NewEnvironment()
	require.ErrorIs(t, env.Reset("pristine"), gerr.ErrUnknownBaseline)
}

func TestResetClearsPreviousState(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Reset(BaselineConflicts))
	require.NoError(t, env.Reset(BaselineClean))

	snap := env.Snapshot()
	require.True(t, snap.Clean)
	require.Empty(t, snap.Conflicts)
}

func TestApplyEffect(t *testing.T) {
	var tests = []struct {
		baseline string
		effects  []string
		check    func(t *testing.T, snap RepoState)
	}{
		{
			BaselineStaged,
			[]string{"clear-staged", "set-clean"},
			func(t *testing.T, snap RepoState) {
				require.Empty(t, snap.Staged)
				require.True(t, snap.Clean)
			},
		},
		{
			BaselineClean,
			[]string{"set-branch:feature/x"},
			func(t *testing.T, snap RepoState) {
				require.Equal(t, "feature/x", snap.Branch)
			},
		},
		{
			BaselineClean,
			[]string{"stage:src/new.go"},
			func(t *testing.T, snap RepoState) {
				require.Equal(t, []string{"src/new.go"}, snap.Staged)
				require.False(t, snap.Clean)
			},
		},
		{
			BaselineClean,
			[]string{"mark-conflict:src/main.go"},
			func(t *testing.T, snap RepoState) {
				require.Equal(t, []string{"src/main.go"}, snap.Conflicts)
				require.False(t, snap.Clean)
			},
		},
		{
			BaselineConflicts,
			[]string{"clear-conflicts"},
			func(t *testing.T, snap RepoState) {
				require.Empty(t, snap.Conflicts)
			},
		},
		{
			BaselineStaged,
			[]string{"unstage:src/login.go"},
			func(t *testing.T, snap RepoState) {
				require.Empty(t, snap.Staged)
			},
		},
	}
	for _, test := range tests {
		env := NewEnvironment()
		require.NoError(t, env.Reset(test.baseline))
		for _, effect := range test.effects {
			require.NoError(t, env.ApplyEffect(effect))
		}
		test.check(t, env.Snapshot())
	}
}

func TestApplyEffectUnknown(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Reset(BaselineClean))
	require.ErrorIs(t, env.ApplyEffect("clear-stagedd"), gerr.ErrUnknownEffect)
}

func TestApplyEffectStageDeduplicates(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Reset(BaselineClean))
	require.NoError(t, env.ApplyEffect("stage:src/a.go"))
	require.NoError(t, env.ApplyEffect("stage:src/a.go"))
	require.Len(t, env.Snapshot().Staged, 1)
}

func TestSnapshotIsImmutableCopy(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, env.Reset(BaselineStaged))

	snap := env.Snapshot()
	snap.Staged[0] = "mutated"
	snap.Branch = "elsewhere"

	live := env.Snapshot()
	require.Equal(t, "src/login.go", live.Staged[0])
	require.Equal(t, "feature/login", live.Branch)
}

func TestSnapshotCount(t *testing.T) {
	env := NewEnvironment()
	require.Zero(t, env.SnapshotCount())
	require.NoError(t, env.Reset(BaselineClean))
	env.Snapshot()
	env.Snapshot()
	require.Equal(t, 2, env.SnapshotCount())
}
