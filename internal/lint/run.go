package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"bennypowers.dev/cssval/internal/collections"
	"bennypowers.dev/cssval/internal/config"
	"bennypowers.dev/cssval/internal/log"
	"bennypowers.dev/cssval/internal/parser"
	"github.com/bmatcuk/doublestar/v4"
)

// Files expands the include globs relative to root and drops files that
// match an ignore glob or have no supported language. Paths are returned
// relative to root, slash separated and sorted.
func Files(root string, include, ignore []string) ([]string, error) {
	for _, pattern := range append(append([]string{}, include...), ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}

	fsys := os.DirFS(root)
	files := collections.NewSet[string]()
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		for _, m := range matches {
			if ignored(m, ignore) {
				log.Debug("ignoring %s", m)
				continue
			}
			if _, ok := parser.LanguageForPath(m); ok {
				files.Add(m)
			}
		}
	}
	return files.Members(), nil
}

// ignored reports whether path matches any of the ignore globs
func ignored(path string, ignore []string) bool {
	for _, pattern := range ignore {
		// doublestar.Match expects forward slashes
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(path)); ok {
			return true
		}
	}
	return false
}

// Run lints every file matched by cfg under root, several files at a
// time. patterns replace cfg.Include when given. Diagnostics are ordered
// by file, then by position within the file.
func Run(ctx context.Context, cfg config.Config, root string, patterns ...string) ([]Diagnostic, error) {
	linter, err := New(cfg)
	if err != nil {
		return nil, err
	}

	include := cfg.Include
	if len(patterns) > 0 {
		include = patterns
	}
	files, err := Files(root, include, cfg.Ignore)
	if err != nil {
		return nil, err
	}
	log.Info("linting %d files under %s", len(files), root)

	results := make([][]Diagnostic, len(files))
	errs := make([]error, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(runtime.GOMAXPROCS(0), max(len(files), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := filepath.Join(root, filepath.FromSlash(files[i]))
				results[i], errs[i] = linter.LintFile(path)
			}
		}()
	}

feed:
	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var diags []Diagnostic
	for i, err := range errs {
		if err != nil {
			return nil, err
		}
		diags = append(diags, results[i]...)
	}
	return diags, nil
}
