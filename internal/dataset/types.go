package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ColumnType is the inferred semantic type of a column. It is a closed set so
// a misspelled type label can never reach statistics or insight rules.
type ColumnType int

const (
	Numeric ColumnType = iota
	Categorical
	Datetime
)

func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Datetime:
		return "datetime"
	default:
		return "unknown"
	}
}

func (t ColumnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// TypeMap maps column names to their inferred type, preserving insertion
// order so every consumer iterates columns in original dataset order.
type TypeMap struct {
	names []string
	types map[string]ColumnType
}

func NewTypeMap() *TypeMap {
	return &TypeMap{types: make(map[string]ColumnType)}
}

// Set records the type for a column, appending the name on first sight.
func (m *TypeMap) Set(name string, t ColumnType) {
	if _, ok := m.types[name]; !ok {
		m.names = append(m.names, name)
	}
	m.types[name] = t
}

// Get returns the type for a column name.
func (m *TypeMap) Get(name string) (ColumnType, bool) {
	t, ok := m.types[name]
	return t, ok
}

// Len returns the number of typed columns.
func (m *TypeMap) Len() int { return len(m.names) }

// Columns returns all column names in insertion order.
func (m *TypeMap) Columns() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// ColumnsOf returns the names of columns with the given type, in insertion order.
func (m *TypeMap) ColumnsOf(t ColumnType) []string {
	var out []string
	for _, n := range m.names {
		if m.types[n] == t {
			out = append(out, n)
		}
	}
	return out
}

// CountOf returns how many columns carry the given type.
func (m *TypeMap) CountOf(t ColumnType) int {
	n := 0
	for _, name := range m.names {
		if m.types[name] == t {
			n++
		}
	}
	return n
}

// MarshalJSON emits an object with keys in insertion order.
func (m *TypeMap) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, n := range m.names {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := json.Marshal(m.types[n].String())
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON is the inverse of MarshalJSON; key order follows the input.
func (m *TypeMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("type map: expected object")
	}
	m.types = make(map[string]ColumnType)
	m.names = nil
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key := kt.(string)
		var val string
		if err := dec.Decode(&val); err != nil {
			return err
		}
		var ct ColumnType
		switch val {
		case "numeric":
			ct = Numeric
		case "categorical":
			ct = Categorical
		case "datetime":
			ct = Datetime
		default:
			return fmt.Errorf("type map: unknown column type %q", val)
		}
		m.Set(key, ct)
	}
	return nil
}
