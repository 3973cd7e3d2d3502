package palette

import (
	"fmt"
)

// Request asks for the ramp of Name to be derived from Value. A nil Step keeps the existing
// base step of the entry, or uses the default step for new names.
type Request struct {
	Name  string
	Value string
	Step  *int
}

// NewRequest creates a request without an explicit step
func NewRequest(name, value string) Request {
	return Request{Name: name, Value: value}
}

// WithStep returns a copy of the request anchored at step
func (r Request) WithStep(step int) Request {
	r.Step = &step
	return r
}

// String renders the request the way the --color flag spells it
func (r Request) String() string {
	if r.Step == nil {
		return fmt.Sprintf("%s:%s", r.Name, r.Value)
	}

	return fmt.Sprintf("%s:%s,%d", r.Name, r.Value, *r.Step)
}
