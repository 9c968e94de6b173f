package report

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/toon"
)

// Format names an output encoding.
type Format string

const (
	Text Format = "text"
	TOON Format = "toon"
	JSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{Text, TOON, JSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q (must be one of: %s)", s, strings.Join(names, ", "))
}

type jsonReport struct {
	Root        string             `json:"root"`
	Total       int                `json:"total"`
	Counts      map[model.Kind]int `json:"counts"`
	Diagnostics []model.Diagnostic `json:"diagnostics"`
}

// Write renders state to w. Diagnostics are grouped by file in path order.
func Write(w io.Writer, f Format, root string, state *model.RunState) error {
	switch f {
	case TOON:
		_, err := fmt.Fprintln(w, toon.Encode(root, state))
		return err
	case JSON:
		return writeJSON(w, root, state)
	default:
		return writeText(w, state)
	}
}

func ordered(state *model.RunState) []model.Diagnostic {
	grouped := state.ByFile()
	out := make([]model.Diagnostic, 0, state.Count())
	for _, path := range state.Files() {
		out = append(out, grouped[path]...)
	}
	return out
}

func writeJSON(w io.Writer, root string, state *model.RunState) error {
	r := jsonReport{
		Root:        root,
		Total:       state.Count(),
		Counts:      make(map[model.Kind]int, len(model.Kinds)),
		Diagnostics: ordered(state),
	}
	for _, k := range model.Kinds {
		r.Counts[k] = state.CountKind(k)
	}

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeText(w io.Writer, state *model.RunState) error {
	var b strings.Builder
	grouped := state.ByFile()
	for _, path := range state.Files() {
		fmt.Fprintf(&b, "%s\n", path)
		for _, d := range grouped[path] {
			fmt.Fprintf(&b, "  %d:%d  %-16s  %s\n", d.Line, d.Column, d.Kind, d.Message)
		}
		b.WriteString("\n")
	}
	b.WriteString(Summary(state))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary describes the totals of state in one line.
func Summary(state *model.RunState) string {
	total := state.Count()
	if total == 0 {
		return "no problems found"
	}
	var parts []string
	for _, k := range model.Kinds {
		if n := state.CountKind(k); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	noun := "problems"
	if total == 1 {
		noun = "problem"
	}
	return fmt.Sprintf("%d %s (%s)", total, noun, strings.Join(parts, ", "))
}
