// Package ranking narrows a run state down to the files worth reading first.
package ranking

import (
	"sort"
	"strings"

	"github.com/phobologic/swaglint/internal/model"
)

// FileRank is a file and the number of diagnostics reported in it.
type FileRank struct {
	Path  string
	Count int
}

// Rank orders the files of s by diagnostic count, most first. Ties are
// broken by path.
func Rank(s *model.RunState) []FileRank {
	grouped := s.ByFile()
	ranks := make([]FileRank, 0, len(grouped))
	for path, diags := range grouped {
		ranks = append(ranks, FileRank{Path: path, Count: len(diags)})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].Path < ranks[j].Path
	})
	return ranks
}

// SelectFiles returns a new RunState with only the diagnostics of the
// maxFiles top-ranked files, in their original emission order.
// If maxFiles is <= 0 or covers every file, s is returned unchanged.
func SelectFiles(s *model.RunState, maxFiles int) *model.RunState {
	ranks := Rank(s)
	if maxFiles <= 0 || maxFiles >= len(ranks) {
		return s
	}

	selected := make(map[string]struct{}, maxFiles)
	for _, r := range ranks[:maxFiles] {
		selected[r.Path] = struct{}{}
	}
	return filter(s, func(d *model.Diagnostic) bool {
		_, ok := selected[d.File]
		return ok
	})
}

// FilterByFile returns a new RunState containing only diagnostics whose
// file path contains substr (case-insensitive).
func FilterByFile(s *model.RunState, substr string) *model.RunState {
	lower := strings.ToLower(substr)
	return filter(s, func(d *model.Diagnostic) bool {
		return strings.Contains(strings.ToLower(d.File), lower)
	})
}

// FilterByKind returns a new RunState containing only diagnostics of the
// given kinds.
func FilterByKind(s *model.RunState, kinds ...model.Kind) *model.RunState {
	want := make(map[model.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}
	return filter(s, func(d *model.Diagnostic) bool {
		_, ok := want[d.Kind]
		return ok
	})
}

func filter(s *model.RunState, keep func(*model.Diagnostic) bool) *model.RunState {
	out := model.NewRunState()
	if s == nil {
		return out
	}
	for i := range s.Diagnostics {
		if keep(&s.Diagnostics[i]) {
			out.Add(s.Diagnostics[i])
		}
	}
	return out
}
