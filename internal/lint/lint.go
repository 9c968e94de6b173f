// Package lint checks endpoint methods of controller classes for missing or
// malformed OpenAPI documentation decorators.
package lint

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/phobologic/swaglint/internal/config"
	"github.com/phobologic/swaglint/internal/index"
	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/syntax"
)

// Emitter receives the diagnostics found by a Linter.
type Emitter interface {
	Emit(node syntax.Node, message string, kind model.Kind)
}

// Linter applies the configured rules to endpoint methods. Type names used
// by request parameters are resolved through the index.
type Linter struct {
	cfg    *config.Config
	ix     *index.Index
	out    Emitter
	logger zerolog.Logger
}

// New returns a Linter. A nil cfg uses the default configuration.
func New(cfg *config.Config, ix *index.Index, out Emitter, logger zerolog.Logger) *Linter {
	if cfg == nil {
		cfg = config.Default()
	}
	if ix == nil {
		ix = index.Build(nil)
	}
	return &Linter{cfg: cfg, ix: ix, out: out, logger: logger}
}

// Lint checks every controller class in files, visiting files in path
// order and members in source order.
func (l *Linter) Lint(files []*syntax.File) {
	sorted := make([]*syntax.File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})
	for _, f := range sorted {
		l.LintFile(f)
	}
}

// LintFile checks the controller classes declared in f.
func (l *Linter) LintFile(f *syntax.File) {
	for _, c := range index.RouteGroups(f, l.cfg.Decorators.Controller) {
		l.LintClass(c)
	}
}

// LintClass checks every endpoint method of c.
func (l *Linter) LintClass(c *syntax.Class) {
	for _, m := range c.Methods {
		if !m.IsEndpointCandidate() {
			continue
		}
		l.logger.Debug().
			Str("file", m.At.File).
			Str("class", c.Name).
			Str("method", m.Name).
			Msg("checking endpoint")
		l.checkInformation(m)
		l.checkInputs(m)
		l.checkParams(m)
	}
}

func (l *Linter) emit(node syntax.Node, message string, kind model.Kind) {
	l.out.Emit(node, message, kind)
}
