package command

import (
	"regexp"
	"strings"

	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
	"github.com/thorstenhirsch/gitmock/internal/mockgit"
)

var tokenRegex = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)

// Substitute replaces every $NAME placeholder token in the template with its
// bound value. Substitution is textual only: the result is never passed to a
// shell and the substituted values are never interpreted.
//
// If any token has no binding the whole substitution fails with a
// MissingBindingError carrying every unbound token, so a test author gets
// the complete diagnosis in one run.
func Substitute(template string, bindings map[string]string) (string, error) {
	var missing []string
	seen := make(map[string]bool)

	result := tokenRegex.ReplaceAllStringFunc(template, func(token string) string {
		name := strings.TrimPrefix(token, "$")
		value, ok := bindings[name]
		if !ok {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
			return token
		}
		return value
	})

	if len(missing) > 0 {
		return "", &gerr.MissingBindingError{Tokens: missing}
	}
	mockgit.Trace("X", "template=%q result=%q", template, result)
	return result, nil
}
