package parse

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/swaglint/internal/lang"
	"github.com/phobologic/swaglint/internal/syntax"
)

var arrayGenerics = map[string]struct{}{
	"Array":         {},
	"ReadonlyArray": {},
}

// typeOf converts a type annotation into a TypeExpr. A union of a single
// type with null or undefined is treated as that type.
func (b *builder) typeOf(n *sitter.Node) syntax.TypeExpr {
	if n == nil {
		return syntax.TypeExpr{Kind: syntax.UnknownType}
	}
	text := lang.CollapseWhitespace(b.text(n))

	switch n.Type() {
	case "type_annotation", "parenthesized_type", "readonly_type":
		inner := firstNamed(n)
		if inner == nil {
			return syntax.TypeExpr{Kind: syntax.UnknownType, Text: text}
		}
		t := b.typeOf(inner)
		if n.Type() != "type_annotation" {
			t.Text = text
		}
		return t
	case "predefined_type":
		return syntax.TypeExpr{Kind: syntax.PrimitiveType, Name: text, Text: text}
	case "type_identifier":
		return syntax.TypeExpr{Kind: syntax.NamedType, Name: text, Text: text}
	case "nested_type_identifier":
		return syntax.TypeExpr{Kind: syntax.NamedType, Name: b.lastSegment(n), Text: text}
	case "generic_type":
		name := b.lastSegment(n.ChildByFieldName("name"))
		if _, ok := arrayGenerics[name]; ok {
			if args := n.ChildByFieldName("type_arguments"); args != nil {
				if first := firstNamed(args); first != nil {
					elem := b.typeOf(first)
					return syntax.TypeExpr{Kind: syntax.ArrayType, Elem: &elem, Text: text}
				}
			}
		}
		return syntax.TypeExpr{Kind: syntax.NamedType, Name: name, Text: text}
	case "array_type":
		inner := firstNamed(n)
		if inner == nil {
			return syntax.TypeExpr{Kind: syntax.UnnamedType, Text: text}
		}
		elem := b.typeOf(inner)
		return syntax.TypeExpr{Kind: syntax.ArrayType, Elem: &elem, Text: text}
	case "union_type":
		var members []*sitter.Node
		for _, m := range b.unionMembers(n) {
			if !b.isNullish(m) {
				members = append(members, m)
			}
		}
		if len(members) == 1 {
			t := b.typeOf(members[0])
			t.Text = text
			return t
		}
	}
	return syntax.TypeExpr{Kind: syntax.UnnamedType, Text: text}
}

func (b *builder) unionMembers(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "comment":
		case "union_type":
			out = append(out, b.unionMembers(c)...)
		default:
			out = append(out, c)
		}
	}
	return out
}

func (b *builder) isNullish(n *sitter.Node) bool {
	switch strings.TrimSpace(b.text(n)) {
	case "null", "undefined", "void":
		return true
	}
	return false
}

// unquote strips matching quotes from a string literal or quoted key and
// decodes its escapes.
func unquote(s string) string {
	if len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'' || q == '`') && s[len(s)-1] == q {
			return decodeEscapes(s[1 : len(s)-1])
		}
	}
	return s
}

func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			i++
			continue
		}
		n := escapeLen(s[i:])
		sb.WriteString(decodeEscape(s[i : i+n]))
		i += n
	}
	return sb.String()
}

// escapeLen returns the byte length of the escape sequence at the start of s.
func escapeLen(s string) int {
	switch s[1] {
	case 'x':
		return min(len(s), 4)
	case 'u':
		if len(s) > 2 && s[2] == '{' {
			if end := strings.IndexByte(s, '}'); end > 0 {
				return end + 1
			}
			return len(s)
		}
		return min(len(s), 6)
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	return 1 + size
}

// decodeEscape decodes a single JavaScript escape sequence such as \n,
// \x41, A or \u{1F600}. Unknown escapes decode to the escaped character.
func decodeEscape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	body := seq[1:]
	switch body[0] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(body) == 1 {
			return "\x00"
		}
	case '\n', '\r':
		return ""
	case 'x', 'u':
		hex := strings.Trim(body[1:], "{}")
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(v))
		}
		return body
	}
	return body
}
