package index

import "github.com/phobologic/swaglint/internal/syntax"

// ResolveDeclaration returns the first class field declaration backing sym,
// or nil when sym is only a method, accessor or interface signature.
func ResolveDeclaration(sym *Symbol) *syntax.Property {
	if sym == nil {
		return nil
	}
	for _, d := range sym.Decls {
		if p, ok := d.(*syntax.Property); ok && p.Kind == syntax.PropertyDeclaration {
			return p
		}
	}
	return nil
}

// FindAnnotation returns the first decorator named one of names found on
// the class field declarations backing sym, scanning declarations in order.
func FindAnnotation(sym *Symbol, names ...string) *syntax.Decorator {
	if sym == nil {
		return nil
	}
	for _, d := range sym.Decls {
		p, ok := d.(*syntax.Property)
		if !ok || p.Kind != syntax.PropertyDeclaration {
			continue
		}
		if dec := p.Decorators.Find(names...); dec != nil {
			return dec
		}
	}
	return nil
}

// IsRouteGroupContainer reports whether c carries the controller decorator.
func IsRouteGroupContainer(c *syntax.Class, controller string) bool {
	return c != nil && c.Decorators.Has(controller)
}

// RouteGroups returns the controller classes of f in source order.
func RouteGroups(f *syntax.File, controller string) []*syntax.Class {
	var out []*syntax.Class
	for _, c := range f.Classes {
		if IsRouteGroupContainer(c, controller) {
			out = append(out, c)
		}
	}
	return out
}

// HasRouteGroup reports whether any class in f is a controller.
func HasRouteGroup(f *syntax.File, controller string) bool {
	return len(RouteGroups(f, controller)) > 0
}
