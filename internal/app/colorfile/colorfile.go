package colorfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"lunatint/internal/app/atomicfile"
	"lunatint/internal/app/color"
	"lunatint/internal/app/errors"
	"lunatint/internal/app/orderedjson"
	"lunatint/internal/app/palette"
	"lunatint/internal/app/ramp"
)

// Entry members written by Apply; anything else on an entry is kept as is
const (
	FieldValue = "value"
	FieldStep  = "step"
	FieldTints = "tints"
)

const (
	indent   = "  "
	filePerm = 0644
)

// File is a color-definition file: a JSON object keyed by color name.
// data holds the bytes it was read from; they are written back as is until Apply changes an entry.
type File struct {
	path    string
	data    []byte
	changed bool
	root    *orderedjson.Object
	entries map[string]*orderedjson.Object
}

// New creates an empty file that will be saved to path
func New(path string) *File {
	return &File{
		path:    path,
		root:    orderedjson.New(),
		entries: make(map[string]*orderedjson.Object),
	}
}

// Load reads the file at path; a missing file yields an empty one
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(path), nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadDocument, err)
	}

	return Parse(path, data)
}

// Parse decodes file content; a bare string member is read as {"value": <string>}
func Parse(path string, data []byte) (*File, error) {
	f := New(path)

	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}

	root, err := orderedjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrFailedToParseDocument, path, err)
	}

	for _, m := range root.Members() {
		entry, err := parseEntry(m.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: color '%s': %w", errors.ErrFailedToParseDocument, path, m.Key, err)
		}

		f.entries[m.Key] = entry
	}

	f.root = root
	f.data = data

	return f, nil
}

func parseEntry(raw json.RawMessage) (*orderedjson.Object, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err == nil {
		entry := orderedjson.New()
		if err := entry.SetValue(FieldValue, value); err != nil {
			return nil, err
		}

		return entry, nil
	}

	return orderedjson.Parse(raw)
}

// Path returns where the file was loaded from
func (f *File) Path() string {
	return f.path
}

// Names returns color names in file order
func (f *File) Names() []string {
	return f.root.Keys()
}

// Requests turns every entry into a request, in file order
func (f *File) Requests() ([]palette.Request, error) {
	names := f.Names()
	requests := make([]palette.Request, 0, len(names))

	for _, name := range names {
		entry := f.entries[name]

		var req palette.Request

		req.Name = name

		if _, err := entry.Decode(FieldValue, &req.Value); err != nil {
			return nil, fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToParseDocument, name, err)
		}

		if _, err := entry.Decode(FieldStep, &req.Step); err != nil {
			return nil, fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToParseDocument, name, err)
		}

		requests = append(requests, req)
	}

	return requests, nil
}

// Palette rebuilds the entries whose stored tints form a complete ramp anchored on their value.
// Entries without a step are anchored at defaultStep. Incomplete entries are skipped.
func (f *File) Palette(defaultStep ramp.Step) *palette.Palette {
	p := palette.New()

	for _, name := range f.Names() {
		base, step, r, ok := f.stored(name, defaultStep)
		if !ok {
			continue
		}

		_, _ = p.Add(name, base, step, r)
	}

	return p
}

func (f *File) stored(name string, defaultStep ramp.Step) (color.Color, ramp.Step, ramp.Ramp, bool) {
	entry := f.entries[name]

	var value string
	if found, err := entry.Decode(FieldValue, &value); !found || err != nil {
		return color.Color{}, 0, ramp.Ramp{}, false
	}

	base, err := color.Parse(value)
	if err != nil {
		return color.Color{}, 0, ramp.Ramp{}, false
	}

	step := defaultStep

	var n int
	if found, err := entry.Decode(FieldStep, &n); err != nil {
		return color.Color{}, 0, ramp.Ramp{}, false
	} else if found {
		step = ramp.Step(n)
	}

	if !step.Valid() {
		return color.Color{}, 0, ramp.Ramp{}, false
	}

	var tints map[string]string
	if found, err := entry.Decode(FieldTints, &tints); !found || err != nil {
		return color.Color{}, 0, ramp.Ramp{}, false
	}

	var r ramp.Ramp

	for _, s := range ramp.Steps() {
		c, err := color.Parse(tints[s.String()])
		if err != nil {
			return color.Color{}, 0, ramp.Ramp{}, false
		}

		r[s.Index()] = c
	}

	if r.At(step) != base {
		return color.Color{}, 0, ramp.Ramp{}, false
	}

	return base, step, r, true
}

// Apply writes palette entries into the file: existing entries are updated in place,
// new names are appended. Entries whose stored value, step and tints already match the palette
// keep their bytes, as do entries the palette does not know.
func (f *File) Apply(p *palette.Palette) error {
	for _, e := range p.Entries() {
		if f.matches(e) {
			continue
		}

		f.changed = true

		entry, ok := f.entries[e.Name]
		if !ok {
			entry = orderedjson.New()
			f.entries[e.Name] = entry
		}

		if err := entry.SetValue(FieldValue, e.Base.Hex()); err != nil {
			return fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToWriteDocument, e.Name, err)
		}

		if err := entry.SetValue(FieldStep, int(e.BaseStep)); err != nil {
			return fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToWriteDocument, e.Name, err)
		}

		tints := orderedjson.New()
		for _, s := range ramp.Steps() {
			if err := tints.SetValue(s.String(), e.Ramp.At(s).Hex()); err != nil {
				return fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToWriteDocument, e.Name, err)
			}
		}

		raw, err := tints.MarshalJSON()
		if err != nil {
			return fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToWriteDocument, e.Name, err)
		}

		entry.Set(FieldTints, raw)

		raw, err = entry.MarshalJSON()
		if err != nil {
			return fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToWriteDocument, e.Name, err)
		}

		f.root.Set(e.Name, raw)
	}

	return nil
}

// matches reports whether the stored entry already records e with an explicit step
func (f *File) matches(e *palette.Entry) bool {
	entry, ok := f.entries[e.Name]
	if !ok || !entry.Has(FieldStep) {
		return false
	}

	base, step, r, ok := f.stored(e.Name, e.BaseStep)

	return ok && base == e.Base && step == e.BaseStep && r == e.Ramp
}

// Bytes returns the loaded content while nothing changed, otherwise the file as 2-space
// indented JSON
func (f *File) Bytes() ([]byte, error) {
	if !f.changed && f.data != nil {
		return f.data, nil
	}

	compact, err := f.root.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToWriteDocument, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToWriteDocument, err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// Save writes the file to path, or to the path it was loaded from when path is empty
func (f *File) Save(path string) error {
	if path == "" {
		path = f.path
	}

	data, err := f.Bytes()
	if err != nil {
		return err
	}

	if err := atomicfile.Write(path, data, filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrFailedToWriteDocument, path, err)
	}

	return nil
}
