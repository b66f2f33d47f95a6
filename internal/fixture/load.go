package fixture

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	gerr "github.com/thorstenhirsch/gitmock/internal/errors"
	"golang.org/x/sync/semaphore"
)

//go:embed defaults/*.txt
var defaultFS embed.FS

// LoadBuiltin fills every registered fixture's output from the embedded
// default set. A registered fixture with no embedded file is a programming
// error and fails fast.
func (r *Registry) LoadBuiltin() error {
	for _, f := range r.fixtures {
		data, err := defaultFS.ReadFile("defaults/" + f.FileName())
		if err != nil {
			return fmt.Errorf("%s: %w", f.FileName(), gerr.ErrFixtureMissing)
		}
		f.Output = normalizeOutput(data)
	}
	return nil
}

// LoadDir fills fixture outputs from plain-text files in a directory, one
// file per canned response. A missing file for any registered fixture is a
// fatal load error; tests must never run against an empty canned response.
//
// Files are independent of each other, so loading uses a bounded worker
// pool. The fixture set itself stays read-only after this returns.
func (r *Registry) LoadDir(dir string) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("fixture directory %s: %w", dir, gerr.ErrFixtureMissing)
	}

	maxWorkers := runtime.GOMAXPROCS(0)
	if len(r.fixtures) < maxWorkers {
		maxWorkers = len(r.fixtures)
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	ctx := context.Background()
	sem := semaphore.NewWeighted(int64(maxWorkers))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, f := range r.fixtures {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}

		wg.Add(1)
		go func(f *Fixture) {
			defer func() {
				sem.Release(1)
				wg.Done()
			}()

			data, err := os.ReadFile(filepath.Join(dir, f.FileName()))
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", f.FileName(), gerr.ErrFixtureMissing)
				}
				mu.Unlock()
				return
			}
			mu.Lock()
			f.Output = normalizeOutput(data)
			mu.Unlock()
		}(f)
	}

	wg.Wait()
	return firstErr
}

// normalizeOutput trims the trailing newline a text file conventionally
// carries so fixture texts compare cleanly in assertions.
func normalizeOutput(data []byte) string {
	return strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
}
