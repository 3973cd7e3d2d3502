package runner

import (
	"lunatint/internal/app/colorfile"
	"lunatint/internal/app/lunacy"
	"lunatint/internal/app/palette"
	"lunatint/internal/app/ramp"
)

// Target kinds
const (
	TargetPreview  = "preview"
	TargetFile     = "file"
	TargetDocument = "doc"
)

// target is the document a run reads its palette from and writes it back to
type target interface {
	// refresh returns requests that regenerate what the target already holds
	refresh() ([]palette.Request, error)
	palette() *palette.Palette
	apply(p *palette.Palette) error
	bytes() ([]byte, error)
	save(path string) error
	describe() string
}

// previewTarget holds nothing and writes nothing
type previewTarget struct{}

func (previewTarget) refresh() ([]palette.Request, error) { return nil, nil }
func (previewTarget) palette() *palette.Palette { return palette.New() }
func (previewTarget) apply(*palette.Palette) error { return nil }
func (previewTarget) bytes() ([]byte, error) { return nil, nil }
func (previewTarget) save(string) error { return nil }
func (previewTarget) describe() string { return TargetPreview }

type fileTarget struct {
	file        *colorfile.File
	defaultStep ramp.Step
}

func (t *fileTarget) refresh() ([]palette.Request, error) {
	return t.file.Requests()
}

func (t *fileTarget) palette() *palette.Palette {
	return t.file.Palette(t.defaultStep)
}

func (t *fileTarget) apply(p *palette.Palette) error {
	return t.file.Apply(p)
}

func (t *fileTarget) bytes() ([]byte, error) {
	return t.file.Bytes()
}

func (t *fileTarget) save(path string) error {
	return t.file.Save(path)
}

func (t *fileTarget) describe() string {
	return t.file.Path()
}

type documentTarget struct {
	doc     *lunacy.Document
	gen     ramp.Generator
	changes lunacy.Changes
}

func (t *documentTarget) refresh() ([]palette.Request, error) {
	return nil, nil
}

func (t *documentTarget) palette() *palette.Palette {
	return t.doc.Palette(t.gen)
}

func (t *documentTarget) apply(p *palette.Palette) error {
	changes, err := t.doc.Apply(p)
	t.changes = changes

	return err
}

func (t *documentTarget) bytes() ([]byte, error) {
	if t.doc.IsArchive() {
		return t.doc.DocumentJSON()
	}

	return t.doc.Bytes()
}

func (t *documentTarget) save(path string) error {
	return t.doc.Save(path)
}

func (t *documentTarget) describe() string {
	return t.doc.Path()
}
