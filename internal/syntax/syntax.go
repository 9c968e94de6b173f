// Package syntax defines the language-neutral declaration model the linter
// consumes. A tree provider (see package parse) builds it from source; the
// model is never mutated afterwards.
package syntax

import "fmt"

// Pos is a source location. Line and Column are 1-based.
type Pos struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is anything with a source location.
type Node interface {
	Pos() Pos
}

// File holds the top-level declarations found in one source file.
type File struct {
	Path       string
	Classes    []*Class
	Interfaces []*Interface
	Enums      []*Enum
}

// Decl is a declaration that can back a symbol. The set of implementations
// is closed: *Class, *Interface, *Enum, *Property and *Method.
type Decl interface {
	Node
	DeclName() string
	decl()
}

// Class is a class declaration.
type Class struct {
	Name       string
	At         Pos
	NameAt     Pos
	Abstract   bool
	Decorators Decorators
	Extends    []string
	Properties []*Property
	Methods    []*Method
}

// Interface is an interface declaration. Its members are property
// signatures.
type Interface struct {
	Name       string
	At         Pos
	Extends    []string
	Properties []*Property
}

// Enum is an enum declaration.
type Enum struct {
	Name    string
	At      Pos
	Members []string
}

// MethodKind distinguishes plain methods from constructors and accessors.
type MethodKind int

const (
	PlainMethod MethodKind = iota
	Constructor
	Getter
	Setter
)

// Method is a method declared in a class body.
type Method struct {
	Name       string
	Kind       MethodKind
	Static     bool
	At         Pos
	NameAt     Pos
	Decorators Decorators
	Params     []*Param
}

// PropertyKind tells class fields apart from interface signatures.
type PropertyKind int

const (
	PropertyDeclaration PropertyKind = iota
	PropertySignature
)

// Property is a class field or an interface property signature.
type Property struct {
	Name       string
	Kind       PropertyKind
	Optional   bool
	At         Pos
	Decorators Decorators
	Type       TypeExpr
}

// Param is a method parameter.
type Param struct {
	Name       string
	Optional   bool
	At         Pos
	NameAt     Pos
	Decorators Decorators
	Type       TypeExpr
}

func (c *Class) Pos() Pos     { return c.At }
func (i *Interface) Pos() Pos { return i.At }
func (e *Enum) Pos() Pos      { return e.At }
func (m *Method) Pos() Pos    { return m.At }
func (p *Property) Pos() Pos  { return p.At }
func (p *Param) Pos() Pos     { return p.At }

func (c *Class) DeclName() string     { return c.Name }
func (i *Interface) DeclName() string { return i.Name }
func (e *Enum) DeclName() string      { return e.Name }
func (m *Method) DeclName() string    { return m.Name }
func (p *Property) DeclName() string  { return p.Name }

func (*Class) decl()     {}
func (*Interface) decl() {}
func (*Enum) decl()      {}
func (*Method) decl()    {}
func (*Property) decl()  {}

// NameNode returns a node positioned on the method name.
func (m *Method) NameNode() Node { return at(m.NameAt) }

// NameNode returns a node positioned on the parameter name.
func (p *Param) NameNode() Node { return at(p.NameAt) }

// NameNode returns a node positioned on the class name.
func (c *Class) NameNode() Node { return at(c.NameAt) }

// IsEndpointCandidate reports whether the method can be an HTTP handler.
// Constructors and accessors never are.
func (m *Method) IsEndpointCandidate() bool {
	return m.Kind == PlainMethod
}

type at Pos

func (a at) Pos() Pos { return Pos(a) }
