package command

import (
	"fmt"
	"strings"
)

// SecurityPolicy controls the pre-execution scan of substituted commands.
// Case sensitivity of keyword matching is a policy decision, not a
// hard-coded assumption; the default (insensitive) is the stricter one.
type SecurityPolicy struct {
	CaseSensitive bool
}

type forbiddenPattern struct {
	pattern  string
	category string
}

// The scan is an allow-nothing-suspicious policy: a legitimate value that
// happens to contain a forbidden pattern is blocked too, because a false
// positive is the safer failure mode for a test harness.
var (
	injectionPatterns = []forbiddenPattern{
		{";", "shell injection"},
		{"`", "shell injection"},
		{"$(", "shell injection"},
		{"&&", "shell injection"},
		{"||", "shell injection"},
		{"../", "path traversal"},
	}
	sensitiveKeywords = []string{
		"password",
		"secret",
		"api key",
		"api_key",
		"apikey",
		"token",
		"credential",
	}
)

// Scan checks a fully substituted command string for disallowed patterns.
// It returns a human-readable reason and true when the invocation must be
// blocked before any fixture is consulted.
func (p SecurityPolicy) Scan(command string) (string, bool) {
	for _, fp := range injectionPatterns {
		if strings.Contains(command, fp.pattern) {
			return fmt.Sprintf("disallowed pattern %q (%s)", fp.pattern, fp.category), true
		}
	}

	haystack := command
	if !p.CaseSensitive {
		haystack = strings.ToLower(command)
	}
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(haystack, keyword) {
			return fmt.Sprintf("sensitive data keyword %q", keyword), true
		}
	}
	return "", false
}
