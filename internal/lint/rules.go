package lint

import (
	"github.com/phobologic/swaglint/internal/config"
	"github.com/phobologic/swaglint/internal/metadata"
	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/syntax"
)

// textMessages are the diagnostics reported by checkText.
type textMessages struct {
	missing  string
	empty    string
	mismatch string
}

// checkText applies rule to the key field of md and reports the first
// failure at node. It returns false when a diagnostic was emitted.
//
// Non-literal values cannot be evaluated, so they pass the pattern check.
func (l *Linter) checkText(node syntax.Node, md metadata.Map, key string, rule config.TextRule, msgs textMessages, kind model.Kind) bool {
	v := md.Get(key)
	switch {
	case v.Kind == metadata.Absent:
		l.emit(node, msgs.missing, kind)
		return false
	case rule.CheckEmpty && v.Kind == metadata.EmptyString:
		l.emit(node, msgs.empty, kind)
		return false
	case rule.Pattern != "" && v.Kind != metadata.Opaque && !md.IsMatching(key, rule.Pattern):
		l.emit(node, msgs.mismatch, kind)
		return false
	}
	return true
}

// checkPresent reports message at node when key is absent from md.
func (l *Linter) checkPresent(node syntax.Node, md metadata.Map, key, message string, kind model.Kind) {
	if md.IsNull(key) {
		l.emit(node, message, kind)
	}
}
