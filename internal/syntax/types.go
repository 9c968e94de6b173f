package syntax

// TypeKind classifies a syntactic type annotation.
type TypeKind int

const (
	// UnknownType is a missing annotation.
	UnknownType TypeKind = iota
	// PrimitiveType covers string, number, boolean, any and friends.
	PrimitiveType
	// NamedType is a reference to a declared type (Foo, ns.Foo, Promise<Foo>).
	NamedType
	// ArrayType is Foo[] or Array<Foo>.
	ArrayType
	// UnnamedType covers literal, object, tuple, function and union types.
	UnnamedType
)

// TypeExpr is the syntactic type of a parameter or property.
type TypeExpr struct {
	Kind TypeKind
	Name string
	Elem *TypeExpr
	Text string
}

// IsArray reports whether the type is an array type.
func (t TypeExpr) IsArray() bool {
	return t.Kind == ArrayType && t.Elem != nil
}

// Element returns the array element type, or t itself for non-arrays.
func (t TypeExpr) Element() TypeExpr {
	if t.IsArray() {
		return *t.Elem
	}
	return t
}
