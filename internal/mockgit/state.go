package mockgit

import gerr "github.com/thorstenhirsch/gitmock/internal/errors"

// RepoState represents the simulated git repository's condition. It is the
// only mutable shared data in the harness and is owned exclusively by the
// Environment; the executor proposes effects, it never mutates directly.
type RepoState struct {
	// Branch is the currently checked out branch
	Branch string
	// Clean reports whether the working tree is clean
	Clean bool
	// Protected marks the current branch as push-protected
	Protected bool
	// Staged holds the ordered list of staged paths
	Staged []string
	// Unstaged holds modified but unstaged paths
	Unstaged []string
	// Conflicts holds paths carrying conflict markers
	Conflicts []string
	// LargeFiles holds paths exceeding the size policy
	LargeFiles []string
}

// Baseline names supported by Reset. The set is fixed; anything else is a
// configuration error.
const (
	BaselineClean      = "clean"
	BaselineDirty      = "dirty"
	BaselineStaged     = "staged"
	BaselineConflicts  = "conflicts"
	BaselineProtected  = "protected"
	BaselineLargeFiles = "large-files"
)

// Baselines returns the supported baseline names in a stable order.
func Baselines() []string {
	return []string{
		BaselineClean,
		BaselineDirty,
		BaselineStaged,
		BaselineConflicts,
		BaselineProtected,
		BaselineLargeFiles,
	}
}

// baselineState returns the canonical state for a baseline name. A fresh
// value is built on every call so callers can never alias the canon.
func baselineState(name string) (*RepoState, error) {
	switch name {
	case BaselineClean:
		return &RepoState{Branch: "main", Clean: true}, nil
	case BaselineDirty:
		return &RepoState{
			Branch:   "feature/login",
			Unstaged: []string{"src/login.go", "README.md"},
		}, nil
	case BaselineStaged:
		return &RepoState{
			Branch: "feature/login",
			Staged: []string{"src/login.go"},
		}, nil
	case BaselineConflicts:
		return &RepoState{
			Branch:    "feature/login",
			Unstaged:  []string{"src/login.go"},
			Conflicts: []string{"src/login.go"},
		}, nil
	case BaselineProtected:
		return &RepoState{Branch: "main", Clean: true, Protected: true}, nil
	case BaselineLargeFiles:
		return &RepoState{
			Branch:     "feature/assets",
			Staged:     []string{"assets/demo.mp4"},
			LargeFiles: []string{"assets/demo.mp4"},
		}, nil
	}
	return nil, gerr.ErrUnknownBaseline
}

// HasConflicts reports whether any path carries conflict markers.
func (s *RepoState) HasConflicts() bool {
	return len(s.Conflicts) > 0
}

// HasStagedLargeFile reports whether an oversized path is currently staged.
func (s *RepoState) HasStagedLargeFile() bool {
	for _, large := range s.LargeFiles {
		for _, staged := range s.Staged {
			if staged == large {
				return true
			}
		}
	}
	return false
}

// Copy returns a deep copy so assertions cannot mutate live state.
func (s *RepoState) Copy() RepoState {
	dup := RepoState{
		Branch:    s.Branch,
		Clean:     s.Clean,
		Protected: s.Protected,
	}
	dup.Staged = copyPaths(s.Staged)
	dup.Unstaged = copyPaths(s.Unstaged)
	dup.Conflicts = copyPaths(s.Conflicts)
	dup.LargeFiles = copyPaths(s.LargeFiles)
	return dup
}

// Equal compares two states attribute by attribute.
func (s RepoState) Equal(o RepoState) bool {
	if s.Branch != o.Branch || s.Clean != o.Clean || s.Protected != o.Protected {
		return false
	}
	return equalPaths(s.Staged, o.Staged) &&
		equalPaths(s.Unstaged, o.Unstaged) &&
		equalPaths(s.Conflicts, o.Conflicts) &&
		equalPaths(s.LargeFiles, o.LargeFiles)
}

func copyPaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	dup := make([]string, len(paths))
	copy(dup, paths)
	return dup
}

func equalPaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
