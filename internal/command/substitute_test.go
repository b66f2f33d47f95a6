package command

import (
	"testing"

	"github.com/stretchr/testify/require"
	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
)

func TestSubstitute(t *testing.T) {
	var tests = []struct {
		template string
		bindings map[string]string
		want     string
	}{
		{
			"git commit -m \"$MESSAGE\"",
			map[string]string{"MESSAGE": "fix bug"},
			"git commit -m \"fix bug\"",
		},
		{
			"git push $REMOTE $BRANCH",
			map[string]string{"REMOTE": "origin", "BRANCH": "main"},
			"git push origin main",
		},
		{
			"git status",
			map[string]string{},
			"git status",
		},
		{
			// same token twice
			"echo $NAME $NAME",
			map[string]string{"NAME": "x"},
			"echo x x",
		},
		{
			// values are inserted textually, never interpreted
			"git commit -m \"$MESSAGE\"",
			map[string]string{"MESSAGE": "test; rm -rf /"},
			"git commit -m \"test; rm -rf /\"",
		},
	}
	for _, test := range tests {
		out, err := Substitute(test.template, test.bindings)
		require.NoError(t, err)
		require.Equal(t, test.want, out)
	}
}

func TestSubstituteNoUnresolvedTokens(t *testing.T) {
	out, err := Substitute("git commit -m \"$MESSAGE\" --author=\"$AUTHOR\"", map[string]string{
		"MESSAGE": "m",
		"AUTHOR":  "a",
	})
	require.NoError(t, err)
	require.NotRegexp(t, `\$[A-Za-z_]`, out)
}

func TestSubstituteMissingBindings(t *testing.T) {
	_, err := Substitute("git commit -m \"$MESSAGE\" --author=\"$AUTHOR\" $MESSAGE", map[string]string{})
	require.Error(t, err)

	var missing *gerr.MissingBindingError
	require.ErrorAs(t, err, &missing)
	// every unbound token is reported, deduplicated, not just the first
	require.ElementsMatch(t, []string{"MESSAGE", "AUTHOR"}, missing.Tokens)
}

func TestSubstituteMissingBindingsPartial(t *testing.T) {
	_, err := Substitute("git push $REMOTE $BRANCH", map[string]string{"REMOTE": "origin"})
	var missing *gerr.MissingBindingError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"BRANCH"}, missing.Tokens)
}
