package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thorstenhirsch/gitmock/internal/app"
	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
)

func TestExitCode(t *testing.T) {
	var tests = []struct {
		err  error
		want int
	}{
		{app.ErrTestsFailed, 1},
		{gerr.ErrNoMatchingTests, 2},
		{gerr.ErrUnknownBaseline, 2},
		{fmt.Errorf("git-commit-success.txt: %w", gerr.ErrFixtureMissing), 2},
		{fmt.Errorf("boom"), 1},
	}
	for _, test := range tests {
		require.Equal(t, test.want, exitCode(test.err), fmt.Sprintf("%v", test.err))
	}
}
