package lunacy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"lunatint/internal/app/errors"
	"lunatint/internal/app/palette"
)

// Emit renders fresh swatches for every palette entry as an indented JSON array, ready to be
// pasted into a document's colors
func Emit(p *palette.Palette, format *NameFormat) ([]byte, error) {
	d := &Document{
		byName: make(map[string]int),
		format: format,
		newID:  NewID,
	}

	if _, err := d.Apply(p); err != nil {
		return nil, err
	}

	compact, err := d.marshalColors()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToWriteDocument, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToWriteDocument, err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
