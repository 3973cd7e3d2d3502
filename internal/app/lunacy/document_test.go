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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunatint/internal/app/color"
	"lunatint/internal/app/errors"
	"lunatint/internal/app/orderedjson"
	"lunatint/internal/app/palette"
	"lunatint/internal/app/ramp"
	"lunatint/internal/config"
)

const (
	pagesJSON    = `[{"id":"p1","fill":"q83vEjRWeJCrze8SNFZ4kA"}]`
	unrelatedRaw = `{"id":"AAAAAAAAAAAAAAAAAAAAAA","version":3,"name":"Brand / accent","value":"FF0000","tag":"x"}`
)

func newFormat(t *testing.T) *NameFormat {
	t.Helper()

	f, err := NewNameFormat(config.NameFormat)
	require.NoError(t, err)

	return f
}

func generate(t *testing.T, value string, step ramp.Step) (color.Color, ramp.Ramp) {
	t.Helper()

	base := color.MustParse(value)

	r, err := ramp.NewGeneratorWithCurve(ramp.DefaultCurve()).Generate(base, step)
	require.NoError(t, err)

	return base, r
}

func newGenerator() ramp.Generator {
	return ramp.NewGeneratorWithCurve(ramp.DefaultCurve())
}

func newPalette(t *testing.T, defs ...string) *palette.Palette {
	t.Helper()

	p := palette.New()

	for i := 0; i < len(defs); i += 2 {
		base, r := generate(t, defs[i+1], ramp.DefaultStep)

		_, err := p.Add(defs[i], base, ramp.DefaultStep, r)
		require.NoError(t, err)
	}

	return p
}

// swatchesJSON renders the nine swatches of one ramp with ids "<name>-<step>"
func swatchesJSON(t *testing.T, name string, r ramp.Ramp) []string {
	t.Helper()

	f := newFormat(t)
	out := make([]string, 0, ramp.Count)

	for _, s := range ramp.Steps() {
		out = append(out, fmt.Sprintf(`{"id":"%s-%s","version":2,"name":"%s","value":"%s"}`, name, s, f.Name(name, s), r.At(s).HexBare()))
	}

	return out
}

func documentJSON(colors ...string) string {
	return `{"version":"2.0","pages":` + pagesJSON + `,"colors":[` + strings.Join(colors, ",") + `],"meta":{"a":1}}`
}

func colorsOf(t *testing.T, d *Document) []*orderedjson.Object {
	t.Helper()

	data, err := d.DocumentJSON()
	require.NoError(t, err)

	root, err := orderedjson.Parse(data)
	require.NoError(t, err)

	raw, ok := root.Get(fieldColors)
	require.True(t, ok)

	var raws []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &raws))

	out := make([]*orderedjson.Object, 0, len(raws))
	for _, r := range raws {
		o, err := orderedjson.Parse(r)
		require.NoError(t, err)

		out = append(out, o)
	}

	return out
}

func field[T any](t *testing.T, o *orderedjson.Object, key string) T {
	t.Helper()

	var v T
	found, err := o.Decode(key, &v)
	require.NoError(t, err)
	require.True(t, found, key)

	return v
}

func Test_Parse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{name: "not json", data: `nope`, err: errors.ErrFailedToParseDocument},
		{name: "array root", data: `[]`, err: errors.ErrFailedToParseDocument},
		{name: "colors not an array", data: `{"colors": {}}`, err: errors.ErrFailedToParseDocument},
		{name: "color not an object", data: `{"colors": [1]}`, err: errors.ErrFailedToParseDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("document.json", []byte(tt.data), newFormat(t))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func Test_Document_Palette(t *testing.T) {
	_, pink := generate(t, "#C92ABB", ramp.DefaultStep)
	_, dark := generate(t, "#121212", ramp.DefaultStep)

	pinkSwatches := swatchesJSON(t, "pink", pink)
	darkSwatches := swatchesJSON(t, "dark", dark)

	colors := []string{unrelatedRaw}
	colors = append(colors, pinkSwatches...)
	colors = append(colors, darkSwatches[:8]...)

	d, err := Parse("document.json", []byte(documentJSON(colors...)), newFormat(t))
	require.NoError(t, err)
	assert.Equal(t, 18, d.Swatches())

	p := d.Palette(newGenerator())

	require.Equal(t, []string{"pink"}, p.Names())

	e, _ := p.Get("pink")
	assert.Equal(t, pink, e.Ramp)
	assert.Equal(t, pink.At(ramp.Step500), e.Base)
	assert.Equal(t, ramp.Step500, e.BaseStep)
}

func Test_Document_Palette_BaseStep(t *testing.T) {
	_, standard := generate(t, "#C92ABB", ramp.DefaultStep)
	_, anchored := generate(t, "#FF00FF", ramp.Step300)

	edited := anchored
	edited[ramp.Step700.Index()] = color.MustParse("#010203")

	tests := []struct {
		name     string
		ramp     ramp.Ramp
		expected ramp.Step
	}{
		{name: "default step", ramp: standard, expected: ramp.Step500},
		{name: "recovered anchor", ramp: anchored, expected: ramp.Step300},
		{name: "hand edited group falls back", ramp: edited, expected: ramp.Step500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse("document.json", []byte(documentJSON(swatchesJSON(t, "pink", tt.ramp)...)), newFormat(t))
			require.NoError(t, err)

			e, ok := d.Palette(newGenerator()).Get("pink")
			require.True(t, ok)
			assert.Equal(t, tt.expected, e.BaseStep)
			assert.Equal(t, tt.ramp.At(tt.expected), e.Base)
			assert.Equal(t, tt.ramp, e.Ramp)
		})
	}
}

func Test_Document_Apply_New(t *testing.T) {
	d, err := Parse("document.json", []byte(documentJSON(unrelatedRaw)), newFormat(t))
	require.NoError(t, err)

	p := newPalette(t, "pink", "#C92ABB")

	changes, err := d.Apply(p)
	require.NoError(t, err)
	assert.Equal(t, Changes{Added: ramp.Count}, changes)

	colors := colorsOf(t, d)
	require.Len(t, colors, 1+ramp.Count)

	e, _ := p.Get("pink")
	ids := make(map[string]bool)

	for i, s := range ramp.Steps() {
		c := colors[i+1]

		assert.Equal(t, []string{fieldID, fieldVersion, fieldName, fieldValue}, c.Keys())
		assert.Equal(t, 1, field[int](t, c, fieldVersion))
		assert.Equal(t, "Palette / pink / pink."+s.String(), field[string](t, c, fieldName))
		assert.Equal(t, e.Ramp.At(s).HexBare(), field[string](t, c, fieldValue))

		id := field[string](t, c, fieldID)
		_, err := DecodeID(id)
		require.NoError(t, err)

		ids[id] = true
	}

	assert.Len(t, ids, ramp.Count)
	assert.Equal(t, "C92ABB", field[string](t, colors[5], fieldValue))
}

func Test_Document_Apply_Update(t *testing.T) {
	_, pink := generate(t, "#C92ABB", ramp.DefaultStep)

	colors := []string{unrelatedRaw}
	colors = append(colors, swatchesJSON(t, "pink", pink)...)
	source := documentJSON(colors...)

	d, err := Parse("document.json", []byte(source), newFormat(t))
	require.NoError(t, err)

	p := d.Palette(newGenerator())
	e, ok := p.Get("pink")
	require.True(t, ok)

	base, r := generate(t, "#FF00FF", ramp.Step300)
	e.Base = base
	e.BaseStep = ramp.Step300
	e.Ramp = r

	changes, err := d.Apply(p)
	require.NoError(t, err)
	assert.Equal(t, 0, changes.Added)
	assert.Positive(t, changes.Updated)

	data, err := d.DocumentJSON()
	require.NoError(t, err)

	root, err := orderedjson.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"version", "pages", "colors", "meta"}, root.Keys())

	pages, _ := root.Get("pages")
	assert.Equal(t, pagesJSON, string(pages))

	var raws []json.RawMessage
	raw, _ := root.Get(fieldColors)
	require.NoError(t, json.Unmarshal(raw, &raws))
	require.Len(t, raws, 1+ramp.Count)
	assert.Equal(t, unrelatedRaw, string(raws[0]))

	updated := 0

	for i, s := range ramp.Steps() {
		c, err := orderedjson.Parse(raws[i+1])
		require.NoError(t, err)

		assert.Equal(t, "pink-"+s.String(), field[string](t, c, fieldID))
		assert.Equal(t, r.At(s).HexBare(), field[string](t, c, fieldValue))

		if r.At(s) == pink.At(s) {
			assert.Equal(t, 2, field[int](t, c, fieldVersion))
			continue
		}

		assert.Equal(t, 3, field[int](t, c, fieldVersion))

		updated++
	}

	assert.Equal(t, updated, changes.Updated)
	assert.Equal(t, "FF00FF", field[string](t, mustParse(t, raws[3]), fieldValue))
}

func mustParse(t *testing.T, raw json.RawMessage) *orderedjson.Object {
	t.Helper()

	o, err := orderedjson.Parse(raw)
	require.NoError(t, err)

	return o
}

func Test_Document_Apply_Unchanged(t *testing.T) {
	_, pink := generate(t, "#C92ABB", ramp.DefaultStep)

	colors := []string{unrelatedRaw}
	colors = append(colors, swatchesJSON(t, "pink", pink)...)
	source := documentJSON(colors...)

	d, err := Parse("document.json", []byte(source), newFormat(t))
	require.NoError(t, err)

	changes, err := d.Apply(d.Palette(newGenerator()))
	require.NoError(t, err)
	assert.Equal(t, Changes{}, changes)

	data, err := d.DocumentJSON()
	require.NoError(t, err)
	assert.Equal(t, source, string(data))
}

func Test_Document_Apply_LowercaseValue(t *testing.T) {
	lower := `{"id":"x","version":1,"name":"Palette / pink / pink.500","value":"c92abb"}`

	d, err := Parse("document.json", []byte(documentJSON(lower)), newFormat(t))
	require.NoError(t, err)

	p := newPalette(t, "pink", "#C92ABB")

	changes, err := d.Apply(p)
	require.NoError(t, err)
	assert.Equal(t, Changes{Added: ramp.Count - 1}, changes)

	assert.Equal(t, "c92abb", field[string](t, colorsOf(t, d)[0], fieldValue))
}

func writeArchive(t *testing.T, path string, members [][2]string) {
	t.Helper()

	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	for _, m := range members {
		method := zip.Deflate
		if strings.HasSuffix(m[0], ".png") {
			method = zip.Store
		}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: m[0], Method: method})
		require.NoError(t, err)

		_, err = w.Write([]byte(m[1]))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
}

func readArchive(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)

	defer zr.Close()

	var names []string

	content := make(map[string]string)

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		names = append(names, f.Name)
		content[f.Name] = string(data)
	}

	return names, content
}

func Test_Open_Archive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "design.free")

	writeArchive(t, path, [][2]string{
		{"meta.json", `{"app":"Lunacy"}`},
		{DocumentEntry, documentJSON(unrelatedRaw)},
		{"images/a.png", "\x89PNG\r\n"},
	})

	d, err := Open(path, newFormat(t))
	require.NoError(t, err)
	assert.True(t, d.IsArchive())
	assert.Equal(t, path, d.Path())

	_, err = d.Apply(newPalette(t, "pink", "#C92ABB"))
	require.NoError(t, err)

	out := filepath.Join(dir, "out.free")
	require.NoError(t, d.Save(out))

	names, content := readArchive(t, out)
	assert.Equal(t, []string{"meta.json", DocumentEntry, "images/a.png"}, names)
	assert.Equal(t, `{"app":"Lunacy"}`, content["meta.json"])
	assert.Equal(t, "\x89PNG\r\n", content["images/a.png"])

	reopened, err := Open(out, newFormat(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"pink"}, reopened.Palette(newGenerator()).Names())
	assert.Equal(t, 1+ramp.Count, reopened.Swatches())

	source, _ := readArchive(t, path)
	assert.Equal(t, names, source)
}

func Test_Open_Errors(t *testing.T) {
	dir := t.TempDir()

	noDoc := filepath.Join(dir, "nodoc.free")
	writeArchive(t, noDoc, [][2]string{{"meta.json", `{}`}})

	notZip := filepath.Join(dir, "broken.free")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0600))

	badJSON := filepath.Join(dir, "document.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{"), 0600))

	tests := []struct {
		name string
		path string
		err  error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.free"), err: errors.ErrFailedToReadDocument},
		{name: "archive without document", path: noDoc, err: errors.ErrDocumentEntryMissing},
		{name: "not an archive", path: notZip, err: errors.ErrFailedToReadDocument},
		{name: "bare document malformed", path: badJSON, err: errors.ErrFailedToParseDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.path, newFormat(t))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func Test_Save_Bare(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "document.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pages":[]}`), 0600))

	d, err := Open(path, newFormat(t))
	require.NoError(t, err)
	assert.False(t, d.IsArchive())

	_, err = d.Apply(newPalette(t, "dark", "#121212"))
	require.NoError(t, err)
	require.NoError(t, d.Save(""))

	reopened, err := Open(path, newFormat(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"dark"}, reopened.Palette(newGenerator()).Names())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"pages":[],"colors":[{"id":"`))

	err = d.Save(filepath.Join(dir, "missing", "document.json"))
	assert.ErrorIs(t, err, errors.ErrFailedToWriteDocument)
}

func Test_Emit(t *testing.T) {
	data, err := Emit(newPalette(t, "dark", "#1D2023"), newFormat(t))
	require.NoError(t, err)

	var swatches []map[string]any
	require.NoError(t, json.Unmarshal(data, &swatches))
	require.Len(t, swatches, ramp.Count)

	assert.Equal(t, "Palette / dark / dark.500", swatches[4][fieldName])
	assert.Equal(t, "1D2023", swatches[4][fieldValue])
	assert.Equal(t, float64(1), swatches[4][fieldVersion])
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"id\": "))
}
