package orderedjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Member is one key of an object with its undecoded value
type Member struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object that remembers member order and keeps values it does not interpret
// exactly as read. A repeated key keeps its first position and its last value.
type Object struct {
	members []Member
	index   map[string]int
}

// New creates an empty object
func New() *Object {
	return &Object{
		index: make(map[string]int),
	}
}

// Parse decodes a single JSON object
func Parse(data []byte) (*Object, error) {
	o := New()
	if err := o.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	return o, nil
}

// Len returns the number of members
func (o *Object) Len() int {
	return len(o.members)
}

// Keys returns member keys in order
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}

	return keys
}

// Members returns a copy of the members in order
func (o *Object) Members() []Member {
	out := make([]Member, len(o.members))
	copy(out, o.members)

	return out
}

// Has reports whether key is present
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Get returns the raw value of key
func (o *Object) Get(key string) (json.RawMessage, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}

	return o.members[i].Value, true
}

// Decode unmarshals the value of key into v, reporting whether the key was present
func (o *Object) Decode(key string, v any) (bool, error) {
	raw, ok := o.Get(key)
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("member '%s': %w", key, err)
	}

	return true, nil
}

// Set stores a raw value, in place when key exists and appended otherwise
func (o *Object) Set(key string, value json.RawMessage) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return
	}

	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
}

// SetValue marshals v and stores it under key
func (o *Object) SetValue(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("member '%s': %w", key, err)
	}

	o.Set(key, raw)

	return nil
}

// MarshalJSON writes members in order with their raw values unchanged
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		if len(m.Value) == 0 {
			buf.WriteString("null")
			continue
		}

		buf.Write(m.Value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object, replacing any previous members
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	o.members = nil
	o.index = make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected member name, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("member '%s': %w", key, err)
		}

		o.Set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after object")
	}

	return nil
}
