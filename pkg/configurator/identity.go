package configurator

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbind/pkg/native"
)

// IDConfigurator sets the element id.
type IDConfigurator[B any] struct {
	owner  B
	widget native.Identifiable
}

func NewID[B any](owner B, widget any) IDConfigurator[B] {
	w, _ := widget.(native.Identifiable)
	return IDConfigurator[B]{owner: owner, widget: w}
}

// ID sets the element id.
func (c *IDConfigurator[B]) ID(id string) B {
	if c.widget != nil {
		c.widget.SetID(strings.TrimSpace(id))
	}
	return c.owner
}

// GeneratedID assigns a random id, prefixed with prefix when given.
func (c *IDConfigurator[B]) GeneratedID(prefix string) B {
	id := uuid.NewString()
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		id = prefix + "-" + id
	}
	return c.ID(id)
}
