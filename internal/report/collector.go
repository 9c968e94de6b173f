// Package report collects diagnostics during a lint run and renders them.
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/syntax"
)

// Collector accumulates the diagnostics of the current run. When
// interactive, each diagnostic is also echoed as it is emitted.
type Collector struct {
	out         io.Writer
	interactive bool
	root        string
	state       *model.RunState
}

// NewCollector returns a collector echoing to out when interactive is set.
// root, when not empty, is joined with relative diagnostic paths to build
// the file:// links of echoed lines.
func NewCollector(out io.Writer, interactive bool, root string) *Collector {
	if out == nil {
		out = io.Discard
	}
	return &Collector{
		out:         out,
		interactive: interactive,
		root:        root,
		state:       model.NewRunState(),
	}
}

// Emit records a diagnostic located at node.
func (c *Collector) Emit(node syntax.Node, message string, kind model.Kind) {
	pos := node.Pos()
	d := model.Diagnostic{
		File:    pos.File,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: message,
		Kind:    kind,
	}
	c.state.Add(d)
	if c.interactive {
		fmt.Fprintln(c.out, c.EchoLine(d))
	}
}

// EchoLine formats d the way Emit echoes it.
func (c *Collector) EchoLine(d model.Diagnostic) string {
	path := d.File
	if c.root != "" && !filepath.IsAbs(path) {
		path = filepath.ToSlash(filepath.Join(c.root, filepath.FromSlash(path)))
	}
	return fmt.Sprintf("file://%s:%d:%d %s", path, d.Line, d.Column, d.Message)
}

// Clear starts a new run. States returned before are left untouched.
func (c *Collector) Clear() {
	c.state = model.NewRunState()
}

// State returns the diagnostics of the current run.
func (c *Collector) State() *model.RunState {
	return c.state
}
