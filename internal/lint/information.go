package lint

import (
	"fmt"

	"github.com/phobologic/swaglint/internal/metadata"
	"github.com/phobologic/swaglint/internal/model"
	"github.com/phobologic/swaglint/internal/syntax"
)

var (
	summaryMessages = textMessages{
		missing:  "Endpoint does not have summary text in %s decorator",
		empty:    "Summary of endpoint is empty",
		mismatch: "Summary of endpoint did not match given pattern",
	}
	descriptionMessages = textMessages{
		missing:  "Endpoint does not have description text in %s decorator",
		empty:    "Description of endpoint is empty",
		mismatch: "Description of endpoint did not match given pattern",
	}
)

// checkInformation verifies the summary and description of the endpoint's
// operation decorator.
func (l *Linter) checkInformation(m *syntax.Method) {
	ep := &l.cfg.Scopes.Endpoint
	if !ep.Summary.Check && !ep.Description.Check {
		return
	}

	name := l.cfg.Decorators.Operation
	op := m.Decorators.Find(name)
	if op == nil {
		l.emit(m.NameNode(),
			fmt.Sprintf("'%s' is endpoint method but it does not have %s tag to describe endpoint information", m.Name, name),
			model.InformationError)
		return
	}

	md := metadata.Extract(op)
	if ep.Summary.Check {
		l.checkText(op, md, "summary", ep.Summary, withDecorator(summaryMessages, name), model.InformationError)
	}
	if ep.Description.Check {
		l.checkText(op, md, "description", ep.Description, withDecorator(descriptionMessages, name), model.InformationError)
	}
}

func withDecorator(msgs textMessages, name string) textMessages {
	msgs.missing = fmt.Sprintf(msgs.missing, name)
	return msgs
}
