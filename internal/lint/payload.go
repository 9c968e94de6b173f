package lint

import (
	"fmt"

	"github.com/phobologic/swaglint/internal/config"
	"github.com/phobologic/swaglint/internal/index"
	"github.com/phobologic/swaglint/internal/metadata"
	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/syntax"
)

// input is a request origin whose DTO fields are checked, such as the body
// or the query string.
type input struct {
	decorator string
	rule      config.InputRule
}

func (l *Linter) inputs() []input {
	return []input{
		{decorator: l.cfg.Decorators.Body, rule: l.cfg.Scopes.Endpoint.Payload},
		{decorator: l.cfg.Decorators.Query, rule: l.cfg.Scopes.Endpoint.Query},
	}
}

// checkInputs walks the DTO classes of the method's body and query
// parameters.
func (l *Linter) checkInputs(m *syntax.Method) {
	for _, p := range m.Params {
		in, ok := l.inputOf(p)
		if !ok || !in.rule.Check {
			continue
		}
		t := l.ix.Resolve(p.Type)
		if !l.ix.IsComplex(t) || !l.ix.IsClass(t) {
			l.logger.Debug().
				Str("method", m.Name).
				Str("param", p.Name).
				Str("type", p.Type.Text).
				Msg("skipping parameter without class type")
			continue
		}
		w := fieldWalker{Linter: l, rule: in.rule, onPath: make(map[string]bool)}
		w.walk(t)
	}
}

// inputOf returns the first input origin p is bound to.
func (l *Linter) inputOf(p *syntax.Param) (input, bool) {
	for _, in := range l.inputs() {
		if p.Decorators.Has(in.decorator) {
			return in, true
		}
	}
	return input{}, false
}

// fieldWalker checks the fields of one parameter type, descending into
// nested DTO types. onPath holds the types currently being walked so that
// self-referencing types are entered once.
type fieldWalker struct {
	*Linter
	rule   config.InputRule
	onPath map[string]bool
}

func (w *fieldWalker) walk(t index.Type) {
	key := typeKey(t)
	if w.onPath[key] {
		return
	}
	w.onPath[key] = true
	defer delete(w.onPath, key)

	for _, field := range w.ix.Fields(t) {
		w.checkField(field)
	}
}

func (w *fieldWalker) checkField(field *index.Symbol) {
	decl := index.ResolveDeclaration(field)
	if decl == nil {
		return
	}

	ft := w.ix.Resolve(decl.Type)
	if w.ix.IsComplex(ft) && !w.ix.IsEnum(ft) {
		w.walk(ft)
	}

	names := w.cfg.Decorators.Property
	dec := index.FindAnnotation(field, names...)
	if dec == nil {
		w.emit(decl,
			fmt.Sprintf("The '%s' field does not have %s tag to describe information", field.Name, names[0]),
			model.PropertyError)
		return
	}

	md := metadata.Extract(dec)
	if w.rule.Description.Check {
		w.checkText(dec, md, "description", w.rule.Description, textMessages{
			missing:  fmt.Sprintf("The '%s' field does not have 'description'", field.Name),
			empty:    fmt.Sprintf("The '%s' field has empty 'description'", field.Name),
			mismatch: fmt.Sprintf("'description' value of '%s' field did not match given pattern", field.Name),
		}, model.PropertyError)
	}
	if w.rule.Example.Check {
		w.checkPresent(dec, md, "example", fmt.Sprintf("The '%s' field does not have 'example'", field.Name), model.PropertyError)
	}
	if w.rule.Type.Check {
		w.checkPresent(dec, md, "type", fmt.Sprintf("The '%s' field does not have 'type'", field.Name), model.PropertyError)
	}
}

func typeKey(t index.Type) string {
	if t.IsArray() {
		t = *t.Elem
	}
	if t.Symbol != nil {
		return t.Symbol.Name
	}
	return t.Expr.Text
}
