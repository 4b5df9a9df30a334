package ir

import (
	"encoding/base64"
	"encoding/json"
)

// Value is a sealed interface representing the constrained value types a
// command parameter may hold. Only String, Bool, List, Object, and Bytes
// implement it. There is no numeric kind: flag values arrive as text and
// leave as text.
type Value interface {
	value() // Sealed - only these types implement it
}

// String represents a scalar string value.
type String string

func (String) value() {}

// Bool represents a boolean flag value.
type Bool bool

func (Bool) value() {}

// List represents an ordered list of values, e.g. multiple positional paths
// folded into one parameter.
type List []Value

func (List) value() {}

// Object represents a nested parameter structure, e.g. a Code object holding
// a ZipFile field.
type Object map[string]Value

func (Object) value() {}

// Bytes represents raw file content loaded by the file-parameter resolver
// (fileb:// references and binary local-file parameters).
type Bytes []byte

func (Bytes) value() {}

// MarshalJSON encodes Bytes as standard base64, the same encoding the wire
// layer uses for blob parameters.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(b))
}

// NewList creates a List from values.
func NewList(vals ...Value) List {
	return List(vals)
}

// NewObject creates an Object from an existing map.
func NewObject(m map[string]Value) Object {
	return Object(m)
}
