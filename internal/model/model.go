// Package model defines core data structures for swaglint.
package model

import "sort"

// Kind classifies a diagnostic.
type Kind string

const (
	InformationError Kind = "InformationError"
	ParamError       Kind = "ParamError"
	PropertyError    Kind = "PropertyError"
)

// Kinds lists every diagnostic kind in report order.
var Kinds = []Kind{InformationError, ParamError, PropertyError}

// Diagnostic is a single documentation violation at a source location.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// RunState accumulates the diagnostics of one lint run in emission order.
type RunState struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// NewRunState returns an empty state.
func NewRunState() *RunState {
	return &RunState{}
}

// Add appends d.
func (s *RunState) Add(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// Count returns the number of diagnostics.
func (s *RunState) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Diagnostics)
}

// CountKind returns the number of diagnostics of kind k.
func (s *RunState) CountKind(k Kind) int {
	if s == nil {
		return 0
	}
	n := 0
	for i := range s.Diagnostics {
		if s.Diagnostics[i].Kind == k {
			n++
		}
	}
	return n
}

// ByFile groups diagnostics by file path, keeping emission order per file.
func (s *RunState) ByFile() map[string][]Diagnostic {
	out := make(map[string][]Diagnostic)
	if s == nil {
		return out
	}
	for _, d := range s.Diagnostics {
		out[d.File] = append(out[d.File], d)
	}
	return out
}

// Files returns the sorted paths that have at least one diagnostic.
func (s *RunState) Files() []string {
	grouped := s.ByFile()
	files := make([]string, 0, len(grouped))
	for f := range grouped {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
