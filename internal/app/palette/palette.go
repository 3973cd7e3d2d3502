package palette

import (
	"fmt"
	"strings"

	"lunatint/internal/app/color"
	"lunatint/internal/app/errors"
	"lunatint/internal/app/ramp"
)

// Entry is one named ramp. An entry keeps its ID and address for the lifetime of the palette;
// updates are applied to the same entry.
type Entry struct {
	ID       uint64
	Name     string
	Base     color.Color
	BaseStep ramp.Step
	Ramp     ramp.Ramp
	Revision int
}

// Palette is an ordered set of uniquely named entries
type Palette struct {
	entries []*Entry
	index   map[string]int
	nextID  uint64
}

// New creates an empty palette
func New() *Palette {
	return &Palette{
		index:  make(map[string]int),
		nextID: 1,
	}
}

// Len returns the number of entries
func (p *Palette) Len() int {
	return len(p.entries)
}

// Get looks an entry up by its exact name
func (p *Palette) Get(name string) (*Entry, bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}

	return p.entries[i], true
}

// Entries returns the entries in insertion order
func (p *Palette) Entries() []*Entry {
	out := make([]*Entry, len(p.entries))
	copy(out, p.entries)

	return out
}

// Names returns entry names in insertion order
func (p *Palette) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.Name
	}

	return names
}

// Add seeds an entry with an already computed ramp, as read from a persisted document
func (p *Palette) Add(name string, base color.Color, step ramp.Step, r ramp.Ramp) (*Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if _, exists := p.index[name]; exists {
		return nil, fmt.Errorf("%w: '%s'", errors.ErrDuplicateName, name)
	}

	if !step.Valid() {
		return nil, fmt.Errorf("color '%s': %w: %d", name, errors.ErrInvalidStep, int(step))
	}

	return p.add(name, base, step, r), nil
}

func (p *Palette) add(name string, base color.Color, step ramp.Step, r ramp.Ramp) *Entry {
	e := &Entry{
		ID:       p.nextID,
		Name:     name,
		Base:     base,
		BaseStep: step,
		Ramp:     r,
		Revision: 1,
	}

	p.nextID++
	p.index[name] = len(p.entries)
	p.entries = append(p.entries, e)

	return e
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %q", errors.ErrEmptyName, name)
	}

	return nil
}
