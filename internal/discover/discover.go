// Package discover finds TypeScript source files in a project and marks the
// ones selected for linting.
package discover

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phobologic/swaglint/internal/lang"
)

// FileEntry represents a discovered source file. Every entry is parsed for
// type resolution; only selected entries are linted.
type FileEntry struct {
	Path     string // Relative to root, slash separated
	Language string
	Selected bool
}

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	"build":        {},
	"dist":         {},
	"coverage":     {},
	".next":        {},
	".nx":          {},
	".turbo":       {},
	".cache":       {},
}

// Matcher selects files by a glob relative to the root. A "**/" segment
// also matches zero directories, so "src/**/*.ts" selects src/main.ts.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles pattern.
func NewMatcher(pattern string) (*Matcher, error) {
	variants := []string{pattern}
	if strings.Contains(pattern, "**/") {
		variants = append(variants, strings.ReplaceAll(pattern, "**/", ""))
	}
	m := &Matcher{}
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether the slash-separated relative path is selected.
func (m *Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(rel, "./")
	for _, g := range m.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Files discovers TypeScript source files under root and marks those
// matching pattern as selected. An empty pattern selects every file.
func Files(root, pattern string) ([]FileEntry, error) {
	var matcher *Matcher
	if pattern != "" {
		m, err := NewMatcher(pattern)
		if err != nil {
			return nil, err
		}
		matcher = m
	}
	gitFiles := gitLsFiles(root)
	var gi *ignore.GitIgnore
	if gitFiles == nil {
		gi = loadGitignore(root)
	}

	var results []FileEntry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		// Skip symlinks
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if gitFiles != nil {
			if _, ok := gitFiles[rel]; !ok {
				return nil
			}
		} else if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		l := lang.ForPath(name)
		if l == nil {
			return nil
		}

		results = append(results, FileEntry{
			Path:     rel,
			Language: l.Name,
			Selected: matcher == nil || matcher.Match(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, nil
}

func gitLsFiles(root string) map[string]struct{} {
	gitDir := filepath.Join(root, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files[filepath.ToSlash(line)] = struct{}{}
		}
	}
	return files
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
