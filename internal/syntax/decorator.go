package syntax

// Decorator is an annotation attached to a class, method, parameter or
// property, e.g. @ApiProperty({ description: "Name" }).
type Decorator struct {
	Name string
	At   Pos
	Args []Expr
}

func (d *Decorator) Pos() Pos { return d.At }

// Arg returns the i-th positional argument, or nil.
func (d *Decorator) Arg(i int) Expr {
	if i < 0 || i >= len(d.Args) {
		return nil
	}
	return d.Args[i]
}

// Decorators is the ordered decorator list of a declaration.
type Decorators []*Decorator

// Find returns the first decorator whose name is one of names.
func (ds Decorators) Find(names ...string) *Decorator {
	for _, d := range ds {
		for _, n := range names {
			if d.Name == n {
				return d
			}
		}
	}
	return nil
}

// FindAll returns every decorator named name, in declaration order.
func (ds Decorators) FindAll(name string) []*Decorator {
	var out []*Decorator
	for _, d := range ds {
		if d.Name == name {
			out = append(out, d)
		}
	}
	return out
}

// Has reports whether a decorator with one of names is present.
func (ds Decorators) Has(names ...string) bool {
	return ds.Find(names...) != nil
}

// Expr is a decorator argument or object literal value. The set of
// implementations is closed: *ObjectLiteral, *StringLiteral and *OpaqueExpr.
type Expr interface {
	Node
	expr()
}

// ObjectLiteral is a { key: value } expression.
type ObjectLiteral struct {
	At     Pos
	Fields []ObjectField
}

// ObjectField is one entry of an object literal. Value is nil for
// shorthand entries ({ description }).
type ObjectField struct {
	Key   string
	Value Expr
}

// StringLiteral is a quoted string without substitutions.
type StringLiteral struct {
	At    Pos
	Value string
}

// OpaqueExpr is any expression the linter does not interpret: numbers,
// identifiers, calls, template strings, arrays.
type OpaqueExpr struct {
	At   Pos
	Text string
}

func (o *ObjectLiteral) Pos() Pos { return o.At }
func (s *StringLiteral) Pos() Pos { return s.At }
func (o *OpaqueExpr) Pos() Pos    { return o.At }

func (*ObjectLiteral) expr() {}
func (*StringLiteral) expr() {}
func (*OpaqueExpr) expr()    {}
