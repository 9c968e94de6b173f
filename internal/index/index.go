// Package index resolves type names to their declarations across a set of
// parsed files and answers structural questions about the resolved types.
package index

import (
	"sort"

	"github.com/phobologic/swaglint/internal/syntax"
)

// Index maps type names to every class, interface and enum declaring them.
type Index struct {
	decls map[string][]syntax.Decl
}

// Build creates an index over files. Files are visited in path order so
// that declarations sharing a name are always listed deterministically.
func Build(files []*syntax.File) *Index {
	sorted := make([]*syntax.File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	ix := &Index{decls: make(map[string][]syntax.Decl)}
	for _, f := range sorted {
		for _, c := range f.Classes {
			ix.add(c)
		}
		for _, it := range f.Interfaces {
			ix.add(it)
		}
		for _, e := range f.Enums {
			ix.add(e)
		}
	}
	return ix
}

func (ix *Index) add(d syntax.Decl) {
	name := d.DeclName()
	if name == "" {
		return
	}
	ix.decls[name] = append(ix.decls[name], d)
}

// Lookup returns the declarations named name, or nil.
func (ix *Index) Lookup(name string) []syntax.Decl {
	return ix.decls[name]
}

// Len returns the number of distinct declared names.
func (ix *Index) Len() int {
	return len(ix.decls)
}

// Symbol is a named entity together with the declarations backing it. A
// named type that is not declared in the indexed files still has a symbol,
// just with no declarations.
type Symbol struct {
	Name  string
	Decls []syntax.Decl
}

// Type is a syntactic type resolved against the index.
type Type struct {
	Expr   syntax.TypeExpr
	Symbol *Symbol
	Elem   *Type
}

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool {
	return t.Elem != nil
}

// Resolve binds a syntactic type to its symbol. Primitives, unnamed and
// missing types have no symbol.
func (ix *Index) Resolve(te syntax.TypeExpr) Type {
	t := Type{Expr: te}
	switch te.Kind {
	case syntax.NamedType:
		t.Symbol = &Symbol{Name: te.Name, Decls: ix.Lookup(te.Name)}
	case syntax.ArrayType:
		if te.Elem != nil {
			elem := ix.Resolve(*te.Elem)
			t.Elem = &elem
		}
	}
	return t
}
