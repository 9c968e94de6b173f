// Package analyzer loads a TypeScript project, keeps its parsed sources in
// memory and runs lint passes over them.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/phobologic/swaglint/internal/config"
	"github.com/phobologic/swaglint/internal/discover"
	"github.com/phobologic/swaglint/internal/index"
	"github.com/phobologic/swaglint/internal/lang"
	"github.com/phobologic/swaglint/internal/lint"
	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/parse"
	"github.com/phobologic/swaglint/internal/report"
	"github.com/phobologic/swaglint/internal/syntax"
)

// DefaultMaxFileSize is the size above which source files are skipped.
const DefaultMaxFileSize = 1_000_000 // 1 MB

// ErrNoSources is returned when a root contains no TypeScript files.
var ErrNoSources = errors.New("no TypeScript sources found")

// Options configures an Analyzer.
type Options struct {
	// Root is the project directory. When empty nothing is loaded from disk
	// and sources come only from Run overrides.
	Root string
	// Pattern replaces scopes.file.pathPattern when set.
	Pattern string
	// MaxFileSize skips larger files; zero means DefaultMaxFileSize.
	MaxFileSize int64
	// Workers bounds concurrent parsing; zero means GOMAXPROCS.
	Workers int
	// Interactive echoes diagnostics to Out as they are found.
	Interactive bool
	Out         io.Writer
	// Logger receives progress and warnings. Nil discards them.
	Logger *zerolog.Logger
}

// Override replaces or adds a source file before a run. Path is relative
// to the root, or absolute below it.
type Override struct {
	Path    string
	Content string
}

type source struct {
	file     *syntax.File
	selected bool
}

// Analyzer holds the parsed project. Runs are serialized.
type Analyzer struct {
	mu        sync.Mutex
	cfg       *config.Config
	root      string
	matcher   *discover.Matcher
	logger    zerolog.Logger
	sources   map[string]*source
	parsers   map[string]*sitter.Parser
	collector *report.Collector
}

// New discovers and parses the sources under opts.Root.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	pattern := cfg.Scopes.File.PathPattern
	if opts.Pattern != "" {
		pattern = opts.Pattern
	}
	matcher, err := discover.NewMatcher(pattern)
	if err != nil {
		return nil, err
	}

	root := opts.Root
	if root != "" {
		if root, err = filepath.Abs(root); err != nil {
			return nil, fmt.Errorf("resolving root: %w", err)
		}
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	a := &Analyzer{
		cfg:       cfg,
		root:      root,
		matcher:   matcher,
		logger:    logger,
		sources:   make(map[string]*source),
		parsers:   make(map[string]*sitter.Parser),
		collector: report.NewCollector(opts.Out, opts.Interactive, root),
	}
	if root == "" {
		return a, nil
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	entries, err := discover.Files(root, pattern)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	entries = a.filterBySize(entries, maxSize)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoSources)
	}

	files, err := a.parseConcurrent(ctx, entries, opts.Workers)
	if err != nil {
		return nil, err
	}
	for i, e := range entries {
		if files[i] != nil {
			a.sources[e.Path] = &source{file: files[i], selected: e.Selected}
		}
	}

	a.logger.Debug().
		Str("root", root).
		Str("pattern", pattern).
		Int("files", len(a.sources)).
		Msg("project loaded")
	return a, nil
}

func (a *Analyzer) filterBySize(entries []discover.FileEntry, maxSize int64) []discover.FileEntry {
	var kept []discover.FileEntry
	for _, e := range entries {
		fi, err := os.Stat(filepath.Join(a.root, filepath.FromSlash(e.Path)))
		if err != nil {
			kept = append(kept, e) // keep if can't stat
			continue
		}
		if fi.Size() > maxSize {
			a.logger.Warn().Str("file", e.Path).Int64("limit", maxSize).Msg("skipped: file too large")
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// parseConcurrent parses entries with a fixed pool of workers, each owning
// its parsers. Unreadable files are skipped and leave a nil slot.
func (a *Analyzer) parseConcurrent(ctx context.Context, entries []discover.FileEntry, workers int) ([]*syntax.File, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(entries))

	files := make([]*syntax.File, len(entries))
	work := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(work)
		for i := range entries {
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			parsers := make(map[string]*sitter.Parser)
			for idx := range work {
				e := entries[idx]
				parser, ok := parsers[e.Language]
				if !ok {
					parser = lang.Languages[e.Language].NewParser()
					parsers[e.Language] = parser
				}

				src, err := os.ReadFile(filepath.Join(a.root, filepath.FromSlash(e.Path)))
				if err != nil {
					a.logger.Warn().Err(err).Str("file", e.Path).Msg("skipped: unreadable")
					continue
				}
				f, err := parse.File(ctx, parser, src, e.Path)
				if err != nil {
					return fmt.Errorf("parsing %s: %w", e.Path, err)
				}
				files[idx] = f
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Run lints the selected sources and returns the diagnostics of this run.
// Overrides are parsed first and replace the stored sources for this and
// later runs.
func (a *Analyzer) Run(ctx context.Context, overrides ...Override) (*model.RunState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, o := range overrides {
		if err := a.apply(ctx, o); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(a.sources))
	for p := range a.sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	all := make([]*syntax.File, 0, len(paths))
	var selected []*syntax.File
	for _, p := range paths {
		s := a.sources[p]
		all = append(all, s.file)
		if s.selected {
			selected = append(selected, s.file)
		}
	}

	a.collector.Clear()
	ix := index.Build(all)
	lint.New(a.cfg, ix, a.collector, a.logger).Lint(selected)

	state := a.collector.State()
	a.logger.Debug().
		Int("files", len(selected)).
		Int("types", ix.Len()).
		Int("diagnostics", state.Count()).
		Msg("lint finished")
	return state, nil
}

func (a *Analyzer) apply(ctx context.Context, o Override) error {
	rel, err := a.relPath(o.Path)
	if err != nil {
		return err
	}
	l := lang.ForPath(rel)
	if l == nil {
		return fmt.Errorf("override %s: not a TypeScript file", o.Path)
	}
	parser, ok := a.parsers[l.Name]
	if !ok {
		parser = l.NewParser()
		a.parsers[l.Name] = parser
	}
	f, err := parse.File(ctx, parser, []byte(o.Content), rel)
	if err != nil {
		return fmt.Errorf("override %s: %w", o.Path, err)
	}
	a.sources[rel] = &source{file: f, selected: a.matcher.Match(rel)}
	return nil
}

func (a *Analyzer) relPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		if a.root == "" {
			return "", fmt.Errorf("override %s: absolute path without a root", path)
		}
		rel, err := filepath.Rel(a.root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", fmt.Errorf("override %s: outside root %s", path, a.root)
		}
		path = rel
	}
	return strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "./"), nil
}

// State returns the diagnostics of the latest run.
func (a *Analyzer) State() *model.RunState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.collector.State()
}

// Root returns the absolute project root, or "" when none was given.
func (a *Analyzer) Root() string {
	return a.root
}

// Files returns the paths of the loaded sources and whether each is linted.
func (a *Analyzer) Files() map[string]bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]bool, len(a.sources))
	for p, s := range a.sources {
		out[p] = s.selected
	}
	return out
}
