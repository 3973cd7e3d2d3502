package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"lunatint/internal/app/errors"
	"lunatint/internal/app/palette"
)

// definition is one member of a request file
type definition struct {
	Value string `json:"value" yaml:"value"`
	Step  *int   `json:"step" yaml:"step"`
}

// LoadFile reads requests from a JSON file, or YAML for .yaml/.yml, shaped
// { "<name>": { "value": "<hex>", "step": <int, optional> } }. A bare string is accepted as the value.
func LoadFile(path string) ([]palette.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadInput, err)
	}

	var requests []palette.Request

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		requests, err = ParseYAML(data)
	default:
		requests, err = ParseJSON(data)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return requests, nil
}

// ParseJSON reads requests in document order
func ParseJSON(data []byte) ([]palette.Request, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var requests []palette.Request

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseInput, err)
		}

		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToParseInput, name, err)
		}

		def, err := decodeJSONDefinition(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToParseInput, name, err)
		}

		requests = append(requests, palette.Request{Name: name, Value: def.Value, Step: def.Step})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", errors.ErrFailedToParseInput)
	}

	return requests, nil
}

func decodeJSONDefinition(raw json.RawMessage) (definition, error) {
	var def definition

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		err := json.Unmarshal(trimmed, &def.Value)
		return def, err
	}

	err := json.Unmarshal(trimmed, &def)

	return def, err
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToParseInput, err)
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected '%c', got %v", errors.ErrFailedToParseInput, want, tok)
	}

	return nil
}

// ParseYAML reads requests in document order
func ParseYAML(data []byte) ([]palette.Request, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseInput, err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping at line %d", errors.ErrFailedToParseInput, doc.Line)
	}

	requests := make([]palette.Request, 0, len(doc.Content)/2)

	for i := 0; i < len(doc.Content); i += 2 {
		key := doc.Content[i]
		value := doc.Content[i+1]

		var def definition

		switch value.Kind {
		case yaml.ScalarNode:
			def.Value = value.Value
		case yaml.MappingNode:
			if err := value.Decode(&def); err != nil {
				return nil, fmt.Errorf("%w: color '%s': %w", errors.ErrFailedToParseInput, key.Value, err)
			}
		default:
			return nil, fmt.Errorf("%w: color '%s' at line %d must be a value or a mapping", errors.ErrFailedToParseInput, key.Value, value.Line)
		}

		requests = append(requests, palette.Request{Name: key.Value, Value: def.Value, Step: def.Step})
	}

	return requests, nil
}
