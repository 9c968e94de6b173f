package lint

import (
	"fmt"

	"github.com/phobologic/swaglint/internal/metadata"
	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/syntax"
)

// checkParams matches every path-bound parameter of m against the method's
// parameter documentation decorators.
func (l *Linter) checkParams(m *syntax.Method) {
	rule := l.cfg.Scopes.Endpoint.Params
	if !rule.Check {
		return
	}

	docName := l.cfg.Decorators.Param
	docs := m.Decorators.FindAll(docName)
	for _, p := range m.Params {
		bound := p.Decorators.Find(l.cfg.Decorators.Path)
		if bound == nil {
			continue
		}
		name, ok := boundName(p, bound)
		if !ok {
			continue
		}

		if len(docs) == 0 {
			l.emit(m.NameNode(),
				fmt.Sprintf("'%s' method does not have %s decorator but it has parameter with @%s decorator", m.Name, docName, bound.Name),
				model.ParamError)
			continue
		}

		doc := matchDoc(docs, name)
		if doc == nil {
			l.emit(p.NameNode(),
				fmt.Sprintf("'%s' method does not have %s decorator that matched with '%s' param", m.Name, docName, name),
				model.ParamError)
			continue
		}

		md := metadata.Extract(doc)
		if rule.Description.Check {
			l.checkText(doc, md, "description", rule.Description, textMessages{
				missing:  fmt.Sprintf("%s decorator of '%s' parameter does not have 'description'", docName, name),
				empty:    fmt.Sprintf("%s decorator of '%s' parameter has empty 'description'", docName, name),
				mismatch: fmt.Sprintf("'description' in %s decorator of '%s' parameter did not match with given pattern", docName, name),
			}, model.ParamError)
		}
		if rule.Example.Check {
			l.checkPresent(doc, md, "example",
				fmt.Sprintf("%s decorator of '%s' parameter does not have 'example'", docName, name),
				model.ParamError)
		}
	}
}

// boundName returns the route parameter name p is bound to: the string
// argument of the binding decorator, or the parameter's own name when the
// argument is not a literal. A binding without arguments receives every
// route parameter at once and names none.
func boundName(p *syntax.Param, bound *syntax.Decorator) (string, bool) {
	switch arg := bound.Arg(0).(type) {
	case nil:
		return "", false
	case *syntax.StringLiteral:
		return arg.Value, true
	default:
		return p.Name, true
	}
}

// matchDoc returns the first decorator in docs whose name field equals name.
func matchDoc(docs []*syntax.Decorator, name string) *syntax.Decorator {
	for _, d := range docs {
		v := metadata.Extract(d).Get("name")
		if v.Kind == metadata.NonEmptyString && v.Text == name {
			return d
		}
	}
	return nil
}
