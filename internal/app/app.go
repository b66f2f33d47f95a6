package app

import (
	"errors"
	"os"

	"github.com/thorstenhirsch/gitmock/internal/command"
	"github.com/thorstenhirsch/gitmock/internal/fixture"
	"github.com/thorstenhirsch/gitmock/internal/mockgit"
	"github.com/thorstenhirsch/gitmock/internal/runner"
)

// ErrTestsFailed signals a non-zero exit after the report has already been
// printed; main does not print it again.
var ErrTestsFailed = errors.New("tests failed")

// The App struct is responsible to hold app-wide related entities.
type App struct {
	Config *Config
}

// Config is an assembler data to initiate a setup
type Config struct {
	// FixturesDir overrides the embedded fixture set with a directory of
	// plain-text canned responses
	FixturesDir string
	// CaseSensitive switches security keyword matching to case-sensitive
	CaseSensitive bool
	// Debug enables the substitution and state-transition trace
	Debug bool
	// Mode restricts the run to one test category
	Mode string
	// Test restricts the run to one named test case
	Test string
	// List prints known test cases without executing them
	List bool
}

// New will handle pre-required operations. It is designed to be a wrapper
// for main method right now.
func New(argConfig *Config) (*App, error) {
	app := &App{}
	presetConfig, err := loadConfiguration()
	if err != nil {
		return nil, err
	}
	app.Config = overrideConfig(presetConfig, argConfig)

	mockgit.SetTraceLogging(app.Config.Debug, os.Stderr)

	return app, nil
}

// Run starts the application: fixtures are loaded once up front (missing
// fixture files are fatal before any test executes), then the selected
// cases run sequentially and the report is printed.
func (a *App) Run() error {
	registry := fixture.DefaultRegistry()
	if a.Config.FixturesDir != "" {
		if err := registry.LoadDir(a.Config.FixturesDir); err != nil {
			return err
		}
	} else {
		if err := registry.LoadBuiltin(); err != nil {
			return err
		}
	}

	env := mockgit.NewEnvironment()
	executor := command.NewExecutor(registry, command.SecurityPolicy{
		CaseSensitive: a.Config.CaseSensitive,
	})
	r := runner.New(runner.BuiltinSuite(), env, executor, os.Stdout)

	if a.Config.List {
		r.List()
		return nil
	}

	report, err := r.Run(runner.Selection{
		Category: a.Config.Mode,
		Test:     a.Config.Test,
	})
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return ErrTestsFailed
	}
	return nil
}

func overrideConfig(appConfig, setupConfig *Config) *Config {
	// CLI arguments should always override config file values
	if len(setupConfig.FixturesDir) > 0 {
		appConfig.FixturesDir = setupConfig.FixturesDir
	}
	if setupConfig.CaseSensitive {
		appConfig.CaseSensitive = setupConfig.CaseSensitive
	}
	if setupConfig.Debug {
		appConfig.Debug = setupConfig.Debug
	}
	appConfig.Mode = setupConfig.Mode
	appConfig.Test = setupConfig.Test
	appConfig.List = setupConfig.List
	return appConfig
}
