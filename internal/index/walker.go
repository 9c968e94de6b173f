package index

import "github.com/phobologic/swaglint/internal/syntax"

// IsComplex reports whether t has nested structure: a named type, or an
// array whose element is a named type.
func (ix *Index) IsComplex(t Type) bool {
	if t.IsArray() {
		return t.Elem.Symbol != nil
	}
	return t.Symbol != nil
}

// IsEnum reports whether any declaration behind t (or its array element)
// is an enum.
func (ix *Index) IsEnum(t Type) bool {
	return hasDecl[*syntax.Enum](element(t).Symbol)
}

// IsClass reports whether t (or its array element) is declared as a class.
func (ix *Index) IsClass(t Type) bool {
	return hasDecl[*syntax.Class](element(t).Symbol)
}

// Fields returns the member symbols of t. For arrays the element type's
// members are returned. Members of every class and interface sharing the
// type's name are merged by member name; inherited members follow own
// members unless overridden.
func (ix *Index) Fields(t Type) []*Symbol {
	sym := element(t).Symbol
	if sym == nil {
		return nil
	}
	var ms memberSet
	ix.collect(&ms, sym.Name, sym.Decls, map[string]bool{})
	return ms.list
}

func element(t Type) Type {
	if t.IsArray() {
		return *t.Elem
	}
	return t
}

func hasDecl[T syntax.Decl](sym *Symbol) bool {
	if sym == nil {
		return false
	}
	for _, d := range sym.Decls {
		if _, ok := d.(T); ok {
			return true
		}
	}
	return false
}

type memberSet struct {
	list   []*Symbol
	byName map[string]*Symbol
}

// add records d under its name, merging it into an existing symbol.
func (ms *memberSet) add(d syntax.Decl) {
	name := d.DeclName()
	if s, ok := ms.byName[name]; ok {
		s.Decls = append(s.Decls, d)
		return
	}
	ms.put(&Symbol{Name: name, Decls: []syntax.Decl{d}})
}

// put appends s unless a symbol with the same name is already present.
func (ms *memberSet) put(s *Symbol) {
	if ms.byName == nil {
		ms.byName = make(map[string]*Symbol)
	}
	if _, ok := ms.byName[s.Name]; ok {
		return
	}
	ms.byName[s.Name] = s
	ms.list = append(ms.list, s)
}

// collect adds the members declared for typeName, then the members of its
// base types. visited guards against inheritance cycles.
func (ix *Index) collect(ms *memberSet, typeName string, decls []syntax.Decl, visited map[string]bool) {
	if visited[typeName] {
		return
	}
	visited[typeName] = true

	own := memberSet{byName: make(map[string]*Symbol)}
	var bases []string
	for _, d := range decls {
		switch d := d.(type) {
		case *syntax.Class:
			for _, p := range d.Properties {
				own.add(p)
			}
			for _, m := range d.Methods {
				if m.Kind == syntax.Constructor || m.Static {
					continue
				}
				own.add(m)
			}
			bases = append(bases, d.Extends...)
		case *syntax.Interface:
			for _, p := range d.Properties {
				own.add(p)
			}
			bases = append(bases, d.Extends...)
		}
	}
	for _, s := range own.list {
		ms.put(s)
	}

	for _, base := range bases {
		ix.collect(ms, base, ix.Lookup(base), visited)
	}
}
