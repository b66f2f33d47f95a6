package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin"
	"github.com/thorstenhirsch/gitmock/internal/app"
	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
)

var version = "dev"

func main() {
	kingpin.Version("gitmock " + version)

	mode := kingpin.Flag("mode", "Restrict the run to one test category; happy,error,edge,security,substitution,flow.").Short('m').String()
	test := kingpin.Flag("test", "Run a single named test case.").Short('t').String()
	debug := kingpin.Flag("debug", "Trace every substitution and state transition to stderr.").Short('d').Bool()
	list := kingpin.Flag("list", "List known test cases per category without executing them.").Short('l').Bool()
	fixtures := kingpin.Flag("fixtures", "Directory of canned response files overriding the built-in set.").Short('f').String()

	kingpin.Parse()

	if err := run(*mode, *test, *debug, *list, *fixtures); err != nil {
		reportError(err)
		os.Exit(exitCode(err))
	}
}

func run(mode, test string, debug, list bool, fixtures string) error {
	app, err := app.New(&app.Config{
		FixturesDir: fixtures,
		Debug:       debug,
		Mode:        mode,
		Test:        test,
		List:        list,
	})
	if err != nil {
		return err
	}

	return app.Run()
}

// reportError prints errors that have not already been reported. Test
// failures are not printed here because the runner's report carries the
// FAILURE banner.
func reportError(err error) {
	if errors.Is(err, app.ErrTestsFailed) {
		return
	}
	if gerr.IsConfigError(err) {
		fmt.Fprintf(os.Stderr, "gitmock: configuration error: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "gitmock: %v\n", err)
}

// exitCode distinguishes configuration errors, which abort before any test
// executes, from a completed run with failing tests.
func exitCode(err error) int {
	if gerr.IsConfigError(err) {
		return 2
	}
	return 1
}
