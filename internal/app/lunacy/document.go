package lunacy

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lunatint/internal/app/atomicfile"
	"lunatint/internal/app/color"
	"lunatint/internal/app/errors"
	"lunatint/internal/app/orderedjson"
	"lunatint/internal/app/palette"
	"lunatint/internal/app/ramp"
)

const (
	// ArchiveExt marks a zipped document; other paths are read as bare document.json
	ArchiveExt = ".free"
	// DocumentEntry is the archive member holding the document
	DocumentEntry = "document.json"

	fieldColors  = "colors"
	fieldID      = "id"
	fieldVersion = "version"
	fieldName    = "name"
	fieldValue   = "value"

	filePerm = 0644
)

// Changes counts swatches touched by Apply
type Changes struct {
	Added   int
	Updated int
}

// Document is a Lunacy design document. Only the top-level colors array is interpreted;
// every other member, every unknown color field and every other archive member is written
// back as read.
type Document struct {
	path    string
	archive *zip.Reader
	root    *orderedjson.Object
	colors  []*swatch
	byName  map[string]int
	changed bool
	format  *NameFormat
	newID   func() string
}

// swatch is one color object; raw holds the bytes it was read from until it is modified
type swatch struct {
	obj *orderedjson.Object
	raw json.RawMessage
}

// Open reads a .free archive or a bare document.json
func Open(path string, format *NameFormat) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadDocument, err)
	}

	if strings.EqualFold(filepath.Ext(path), ArchiveExt) {
		return ParseArchive(path, data, format)
	}

	return Parse(path, data, format)
}

// ParseArchive reads a zip archive holding document.json
func ParseArchive(path string, data []byte, format *NameFormat) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrFailedToReadDocument, path, err)
	}

	var entry *zip.File

	for _, f := range zr.File {
		if f.Name == DocumentEntry {
			entry = f
			break
		}
	}

	if entry == nil {
		return nil, fmt.Errorf("%w: %s has no %s", errors.ErrDocumentEntryMissing, path, DocumentEntry)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrFailedToReadDocument, path, err)
	}
	defer rc.Close()

	doc, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrFailedToReadDocument, path, err)
	}

	d, err := Parse(path, doc, format)
	if err != nil {
		return nil, err
	}

	d.archive = zr

	return d, nil
}

// Parse reads document.json content
func Parse(path string, data []byte, format *NameFormat) (*Document, error) {
	root, err := orderedjson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrFailedToParseDocument, path, err)
	}

	d := &Document{
		path:   path,
		root:   root,
		byName: make(map[string]int),
		format: format,
		newID:  NewID,
	}

	if raw, ok := root.Get(fieldColors); ok {
		if err := d.parseColors(raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %s: %w", errors.ErrFailedToParseDocument, path, fieldColors, err)
		}
	}

	for i, c := range d.colors {
		var name string
		if found, err := c.obj.Decode(fieldName, &name); !found || err != nil {
			continue
		}

		if _, exists := d.byName[name]; !exists {
			d.byName[name] = i
		}
	}

	return d, nil
}

func (d *Document) parseColors(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	d.colors = make([]*swatch, 0, len(raws))

	for i, raw := range raws {
		obj, err := orderedjson.Parse(raw)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}

		d.colors = append(d.colors, &swatch{obj: obj, raw: raw})
	}

	return nil
}

// Path returns where the document was read from
func (d *Document) Path() string {
	return d.path
}

// IsArchive reports whether the document is written as a zip archive
func (d *Document) IsArchive() bool {
	return d.archive != nil
}

// Swatches returns the number of color objects in the document
func (d *Document) Swatches() int {
	return len(d.colors)
}

// Palette rebuilds entries from complete groups of nine swatches, in order of first appearance.
// The document does not record the base step, so it is recovered as the step whose swatch
// regenerates the whole group with gen; groups no step reproduces are based on their 500 swatch.
func (d *Document) Palette(gen ramp.Generator) *palette.Palette {
	type group struct {
		ramp  ramp.Ramp
		found [ramp.Count]bool
	}

	var order []string

	groups := make(map[string]*group)

	for _, c := range d.colors {
		var name, value string

		if _, err := c.obj.Decode(fieldName, &name); err != nil {
			continue
		}

		if _, err := c.obj.Decode(fieldValue, &value); err != nil {
			continue
		}

		paletteName, step, ok := d.format.Parse(name)
		if !ok {
			continue
		}

		col, err := color.Parse(value)
		if err != nil {
			continue
		}

		g, ok := groups[paletteName]
		if !ok {
			g = &group{}
			groups[paletteName] = g
			order = append(order, paletteName)
		}

		if g.found[step.Index()] {
			continue
		}

		g.ramp[step.Index()] = col
		g.found[step.Index()] = true
	}

	p := palette.New()

	for _, name := range order {
		g := groups[name]
		if !complete(g.found) {
			continue
		}

		step := anchor(gen, g.ramp)
		_, _ = p.Add(name, g.ramp.At(step), step, g.ramp)
	}

	return p
}

// anchor returns the step that reproduces r, trying the default step first
func anchor(gen ramp.Generator, r ramp.Ramp) ramp.Step {
	candidates := append([]ramp.Step{ramp.DefaultStep}, ramp.Steps()...)

	for _, s := range candidates {
		regenerated, err := gen.Generate(r.At(s), s)
		if err == nil && regenerated == r {
			return s
		}
	}

	return ramp.DefaultStep
}

func complete(found [ramp.Count]bool) bool {
	for _, ok := range found {
		if !ok {
			return false
		}
	}

	return true
}

// Apply writes every step of every palette entry as a swatch. Swatches are matched by name:
// a match keeps its id and gets a new version when its value changes, a miss is appended.
func (d *Document) Apply(p *palette.Palette) (Changes, error) {
	var changes Changes

	for _, e := range p.Entries() {
		for _, s := range ramp.Steps() {
			name := d.format.Name(e.Name, s)
			value := e.Ramp.At(s)

			i, ok := d.byName[name]
			if !ok {
				if err := d.append(name, value); err != nil {
					return changes, fmt.Errorf("%w: swatch '%s': %w", errors.ErrFailedToWriteDocument, name, err)
				}

				changes.Added++
				d.changed = true

				continue
			}

			updated, err := d.colors[i].update(value)
			if err != nil {
				return changes, fmt.Errorf("%w: swatch '%s': %w", errors.ErrFailedToWriteDocument, name, err)
			}

			if updated {
				changes.Updated++
				d.changed = true
			}
		}
	}

	return changes, nil
}

func (d *Document) append(name string, value color.Color) error {
	c := orderedjson.New()

	for _, m := range []struct {
		key   string
		value any
	}{
		{fieldID, d.newID()},
		{fieldVersion, 1},
		{fieldName, name},
		{fieldValue, value.HexBare()},
	} {
		if err := c.SetValue(m.key, m.value); err != nil {
			return err
		}
	}

	d.byName[name] = len(d.colors)
	d.colors = append(d.colors, &swatch{obj: c})

	return nil
}

func (sw *swatch) update(value color.Color) (bool, error) {
	c := sw.obj

	var current string
	if _, err := c.Decode(fieldValue, &current); err == nil {
		if parsed, err := color.Parse(current); err == nil && parsed == value {
			return false, nil
		}
	}

	var version int
	if _, err := c.Decode(fieldVersion, &version); err != nil {
		version = 0
	}

	if err := c.SetValue(fieldValue, value.HexBare()); err != nil {
		return false, err
	}

	if err := c.SetValue(fieldVersion, version+1); err != nil {
		return false, err
	}

	sw.raw = nil

	return true, nil
}

func (sw *swatch) marshal() ([]byte, error) {
	if sw.raw != nil {
		return sw.raw, nil
	}

	return sw.obj.MarshalJSON()
}

// DocumentJSON renders document.json. The colors array is only rewritten once Apply changed it.
func (d *Document) DocumentJSON() ([]byte, error) {
	if d.changed {
		colors, err := d.marshalColors()
		if err != nil {
			return nil, err
		}

		d.root.Set(fieldColors, colors)
	}

	return d.root.MarshalJSON()
}

func (d *Document) marshalColors() (json.RawMessage, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, c := range d.colors {
		if i > 0 {
			buf.WriteByte(',')
		}

		data, err := c.marshal()
		if err != nil {
			return nil, err
		}

		buf.Write(data)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// Bytes renders the document in its on-disk form
func (d *Document) Bytes() ([]byte, error) {
	doc, err := d.DocumentJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToWriteDocument, err)
	}

	if d.archive == nil {
		return doc, nil
	}

	data, err := d.rebuildArchive(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToWriteDocument, err)
	}

	return data, nil
}

// rebuildArchive copies every member in order, replacing document.json
func (d *Document) rebuildArchive(doc []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	for _, f := range d.archive.File {
		if f.Name != DocumentEntry {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}

			continue
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:          f.Name,
			Comment:       f.Comment,
			Method:        zip.Deflate,
			Modified:      f.Modified,
			ExternalAttrs: f.ExternalAttrs,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.Name, err)
		}

		if _, err := w.Write(doc); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save writes the document to path, or back to where it was read from when path is empty
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.path
	}

	data, err := d.Bytes()
	if err != nil {
		return err
	}

	if err := atomicfile.Write(path, data, filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrFailedToWriteDocument, path, err)
	}

	return nil
}
