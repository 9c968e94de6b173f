// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/swaglint/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// Encode converts a run state into TOON format. Diagnostics are listed
// file by file in path order, each file's diagnostics in emission order.
func Encode(root string, state *model.RunState) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(root)))
	parts = append(parts, fmt.Sprintf("total: %d", state.Count()))

	kindRows := make([][]string, 0, len(model.Kinds))
	for _, k := range model.Kinds {
		kindRows = append(kindRows, []string{string(k), strconv.Itoa(state.CountKind(k))})
	}
	parts = append(parts, formatTabular("kinds", []string{"kind", "count"}, kindRows))

	grouped := state.ByFile()
	var diagRows [][]string
	for _, path := range state.Files() {
		for _, d := range grouped[path] {
			diagRows = append(diagRows, []string{
				d.File,
				strconv.Itoa(d.Line),
				strconv.Itoa(d.Column),
				string(d.Kind),
				d.Message,
			})
		}
	}
	parts = append(parts, formatTabular("diagnostics", []string{"file", "line", "column", "kind", "message"}, diagRows))

	return strings.Join(parts, "\n")
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
