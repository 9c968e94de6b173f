// Package parse builds the syntax model from TypeScript sources using
// tree-sitter.
package parse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/phobologic/swaglint/internal/lang"
	"github.com/phobologic/swaglint/internal/syntax"
)

// File parses a source file and returns its class, interface and enum
// declarations. The parser must be created for the correct language.
// filePath is recorded in every position.
func File(ctx context.Context, parser *sitter.Parser, source []byte, filePath string) (*syntax.File, error) {
	f := &syntax.File{Path: filePath}
	if len(source) == 0 {
		return f, nil
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	defer tree.Close()

	b := &builder{source: source, path: filePath, file: f}
	b.walk(tree.RootNode())
	return f, nil
}

type builder struct {
	source []byte
	path   string
	file   *syntax.File
}

func (b *builder) walk(n *sitter.Node) {
	switch n.Type() {
	case "class_declaration", "abstract_class_declaration":
		b.file.Classes = append(b.file.Classes, b.class(n))
		return
	case "interface_declaration":
		b.file.Interfaces = append(b.file.Interfaces, b.iface(n))
		return
	case "enum_declaration":
		b.file.Enums = append(b.file.Enums, b.enum(n))
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.walk(n.NamedChild(i))
	}
}

func (b *builder) pos(n *sitter.Node) syntax.Pos {
	p := n.StartPoint()
	return syntax.Pos{
		File:   b.path,
		Offset: int(n.StartByte()),
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
	}
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return lang.NodeText(n, b.source)
}

func (b *builder) class(n *sitter.Node) *syntax.Class {
	c := &syntax.Class{
		At:       b.pos(n),
		NameAt:   b.pos(n),
		Abstract: n.Type() == "abstract_class_declaration",
	}

	// Decorators written before `export` belong to the export statement.
	if parent := n.Parent(); parent != nil && parent.Type() == "export_statement" {
		c.Decorators = append(c.Decorators, b.decoratorChildren(parent)...)
	}
	c.Decorators = append(c.Decorators, b.decoratorChildren(n)...)

	if name := n.ChildByFieldName("name"); name != nil {
		c.Name = b.text(name)
		c.NameAt = b.pos(name)
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "class_heritage" {
			c.Extends = b.heritage(child)
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		b.classBody(c, body)
	}
	return c
}

func (b *builder) heritage(n *sitter.Node) []string {
	var names []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		clause := n.NamedChild(i)
		if clause.Type() != "extends_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			v := clause.NamedChild(j)
			switch v.Type() {
			case "identifier", "type_identifier":
				names = append(names, b.text(v))
			case "member_expression", "nested_type_identifier":
				names = append(names, b.lastSegment(v))
			case "generic_type":
				names = append(names, b.lastSegment(v.ChildByFieldName("name")))
			}
		}
	}
	return names
}

// classBody collects fields and methods. Method decorators are siblings
// that precede the method_definition inside class_body.
func (b *builder) classBody(c *syntax.Class, body *sitter.Node) {
	var pending syntax.Decorators
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "decorator":
			pending = append(pending, b.decorator(member))
			continue
		case "comment":
			continue
		case "method_definition":
			m := b.method(member)
			m.Decorators = append(pending, m.Decorators...)
			c.Methods = append(c.Methods, m)
		case "public_field_definition", "field_definition":
			p := b.property(member, syntax.PropertyDeclaration)
			p.Decorators = append(pending, p.Decorators...)
			c.Properties = append(c.Properties, p)
		}
		pending = nil
	}
}

func (b *builder) method(n *sitter.Node) *syntax.Method {
	m := &syntax.Method{
		At:         b.pos(n),
		NameAt:     b.pos(n),
		Decorators: b.decoratorChildren(n),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		m.Name = b.text(name)
		m.NameAt = b.pos(name)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "static":
			m.Static = true
		case "get":
			m.Kind = syntax.Getter
		case "set":
			m.Kind = syntax.Setter
		}
	}
	if m.Name == "constructor" {
		m.Kind = syntax.Constructor
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			switch p.Type() {
			case "required_parameter", "optional_parameter":
				m.Params = append(m.Params, b.param(p))
			}
		}
	}
	return m
}

func (b *builder) param(n *sitter.Node) *syntax.Param {
	p := &syntax.Param{
		At:         b.pos(n),
		NameAt:     b.pos(n),
		Optional:   n.Type() == "optional_parameter",
		Decorators: b.decoratorChildren(n),
		Type:       b.typeOf(n.ChildByFieldName("type")),
	}
	if pattern := n.ChildByFieldName("pattern"); pattern != nil {
		p.Name = b.text(pattern)
		p.NameAt = b.pos(pattern)
	}
	return p
}

func (b *builder) property(n *sitter.Node, kind syntax.PropertyKind) *syntax.Property {
	p := &syntax.Property{
		Kind:       kind,
		At:         b.pos(n),
		Decorators: b.decoratorChildren(n),
		Type:       b.typeOf(n.ChildByFieldName("type")),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		p.Name = unquote(b.text(name))
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "?" {
			p.Optional = true
		}
	}
	return p
}

func (b *builder) iface(n *sitter.Node) *syntax.Interface {
	it := &syntax.Interface{At: b.pos(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		it.Name = b.text(name)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "extends_type_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			t := b.typeOf(child.NamedChild(j))
			if t.Kind == syntax.NamedType {
				it.Extends = append(it.Extends, t.Name)
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			if member.Type() == "property_signature" {
				it.Properties = append(it.Properties, b.property(member, syntax.PropertySignature))
			}
		}
	}
	return it
}

func (b *builder) enum(n *sitter.Node) *syntax.Enum {
	e := &syntax.Enum{At: b.pos(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		e.Name = b.text(name)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			switch member.Type() {
			case "property_identifier", "string":
				e.Members = append(e.Members, unquote(b.text(member)))
			case "enum_assignment":
				e.Members = append(e.Members, unquote(b.text(member.ChildByFieldName("name"))))
			}
		}
	}
	return e
}

func (b *builder) decoratorChildren(n *sitter.Node) syntax.Decorators {
	var ds syntax.Decorators
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "decorator" {
			ds = append(ds, b.decorator(child))
		}
	}
	return ds
}

// decorator handles @Name, @ns.Name and @Name(args...).
func (b *builder) decorator(n *sitter.Node) *syntax.Decorator {
	d := &syntax.Decorator{At: b.pos(n)}
	expr := firstNamed(n)
	if expr == nil {
		return d
	}
	switch expr.Type() {
	case "identifier":
		d.Name = b.text(expr)
	case "member_expression":
		d.Name = b.lastSegment(expr)
	case "call_expression":
		fn := expr.ChildByFieldName("function")
		if fn != nil && fn.Type() == "member_expression" {
			d.Name = b.lastSegment(fn)
		} else {
			d.Name = b.text(fn)
		}
		if args := expr.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				arg := args.NamedChild(i)
				if arg.Type() == "comment" {
					continue
				}
				d.Args = append(d.Args, b.expr(arg))
			}
		}
	}
	return d
}

func (b *builder) expr(n *sitter.Node) syntax.Expr {
	switch n.Type() {
	case "string":
		return &syntax.StringLiteral{At: b.pos(n), Value: b.stringValue(n)}
	case "object":
		obj := &syntax.ObjectLiteral{At: b.pos(n)}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			entry := n.NamedChild(i)
			switch entry.Type() {
			case "pair":
				key := entry.ChildByFieldName("key")
				field := syntax.ObjectField{Key: b.propertyKey(key)}
				if v := entry.ChildByFieldName("value"); v != nil {
					field.Value = b.expr(v)
				}
				obj.Fields = append(obj.Fields, field)
			case "shorthand_property_identifier":
				obj.Fields = append(obj.Fields, syntax.ObjectField{Key: b.text(entry)})
			}
		}
		return obj
	case "parenthesized_expression":
		if inner := firstNamed(n); inner != nil {
			return b.expr(inner)
		}
	}
	return &syntax.OpaqueExpr{At: b.pos(n), Text: lang.CollapseWhitespace(b.text(n))}
}

func (b *builder) propertyKey(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == "string" {
		return b.stringValue(n)
	}
	return b.text(n)
}

// stringValue returns the literal value of a string node with escape
// sequences decoded.
func (b *builder) stringValue(n *sitter.Node) string {
	if n.NamedChildCount() == 0 {
		return unquote(b.text(n))
	}
	var out []byte
	for i := 0; i < int(n.NamedChildCount()); i++ {
		part := n.NamedChild(i)
		if part.Type() == "escape_sequence" {
			out = append(out, decodeEscape(b.text(part))...)
			continue
		}
		out = append(out, b.text(part)...)
	}
	return string(out)
}

func (b *builder) lastSegment(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	for _, field := range []string{"property", "name"} {
		if c := n.ChildByFieldName(field); c != nil {
			return b.text(c)
		}
	}
	return b.text(n)
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "comment" {
			return c
		}
	}
	return nil
}
