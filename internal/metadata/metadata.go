// Package metadata extracts key/value documentation metadata from decorator
// arguments and answers presence, emptiness and pattern questions about it.
package metadata

import "github.com/phobologic/swaglint/internal/syntax"

// ValueKind is the state of a metadata field.
type ValueKind int

const (
	// Absent means the key is not in the object literal.
	Absent ValueKind = iota
	// EmptyString means the key maps to "".
	EmptyString
	// NonEmptyString means the key maps to a non-empty string literal.
	NonEmptyString
	// Opaque means the key is present but its value is not a string literal.
	Opaque
)

func (k ValueKind) String() string {
	switch k {
	case Absent:
		return "absent"
	case EmptyString:
		return "empty"
	case NonEmptyString:
		return "string"
	case Opaque:
		return "opaque"
	}
	return "unknown"
}

// Value is one metadata field. Text is set only for NonEmptyString.
type Value struct {
	Kind ValueKind
	Text string
}

// Map holds the fields of one decorator's object literal argument.
type Map map[string]Value

// Extract returns the metadata of d's first argument. The map is empty,
// never nil, when d has no argument or the argument is not an object literal.
func Extract(d *syntax.Decorator) Map {
	m := make(Map)
	if d == nil {
		return m
	}
	obj, ok := d.Arg(0).(*syntax.ObjectLiteral)
	if !ok {
		return m
	}
	for _, f := range obj.Fields {
		m[f.Key] = valueOf(f.Value)
	}
	return m
}

func valueOf(e syntax.Expr) Value {
	switch v := e.(type) {
	case *syntax.StringLiteral:
		if v.Value == "" {
			return Value{Kind: EmptyString}
		}
		return Value{Kind: NonEmptyString, Text: v.Value}
	default:
		return Value{Kind: Opaque}
	}
}

// Get returns the value for key; missing keys are Absent.
func (m Map) Get(key string) Value {
	if v, ok := m[key]; ok {
		return v
	}
	return Value{Kind: Absent}
}

// IsNull reports whether key is absent.
func (m Map) IsNull(key string) bool {
	return m.Get(key).Kind == Absent
}

// IsEmpty reports whether key is present and maps to the empty string.
func (m Map) IsEmpty(key string) bool {
	return m.Get(key).Kind == EmptyString
}

// IsMatching reports whether key maps to a non-empty string literal that
// matches pattern. Opaque values never match.
func (m Map) IsMatching(key, pattern string) bool {
	v := m.Get(key)
	if v.Kind != NonEmptyString {
		return false
	}
	return Matches(v.Text, pattern)
}

// String returns the literal text of key, or "" for anything else.
func (m Map) String(key string) string {
	return m.Get(key).Text
}
