package mockgit

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const traceValueMaxLen = 256

type traceSettings struct {
	enabled bool
	out     io.Writer
	mu      sync.Mutex
}

var (
	traceSettingsMu sync.RWMutex
	currentTrace    traceSettings
)

// SetTraceLogging enables or disables the debug trace of substitutions and
// state transitions. Trace lines go to the given writer, normally stderr,
// so they never pollute the test report on stdout.
func SetTraceLogging(enabled bool, out io.Writer) {
	traceSettingsMu.Lock()
	defer traceSettingsMu.Unlock()
	currentTrace.enabled = enabled && out != nil
	currentTrace.out = out
}

func isTraceEnabled() bool {
	traceSettingsMu.RLock()
	enabled := currentTrace.enabled && currentTrace.out != nil
	traceSettingsMu.RUnlock()
	return enabled
}

// Trace writes one indicator-prefixed trace line. The indicator tells which
// part of the harness emitted it: [S] state, [X] substitution, [F] fixture.
func Trace(indicator, format string, args ...interface{}) {
	if !isTraceEnabled() {
		return
	}
	line := fmt.Sprintf("[%s] %s", indicator, sanitizeTraceValue(fmt.Sprintf(format, args...)))

	traceSettingsMu.RLock()
	out := currentTrace.out
	traceSettingsMu.RUnlock()
	if out == nil {
		return
	}
	currentTrace.mu.Lock()
	fmt.Fprintln(out, line)
	currentTrace.mu.Unlock()
}

func traceState(cause, baseline string, state RepoState) {
	Trace("S", "cause=%s baseline=%s branch=%s clean=%t protected=%t staged=%d conflicts=%d",
		cause, baseline, state.Branch, state.Clean, state.Protected, len(state.Staged), len(state.Conflicts))
}

func sanitizeTraceValue(value string) string {
	replaced := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(value)
	replaced = strings.TrimSpace(replaced)
	if len(replaced) > traceValueMaxLen {
		replaced = replaced[:traceValueMaxLen] + "..."
	}
	return replaced
}
