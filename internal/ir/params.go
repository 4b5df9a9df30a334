package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Params is an insertion-ordered mapping from parameter name to Value.
// Keys iterate in the order they were first set, which for a parsed command
// is the left-to-right order the user typed.
type Params struct {
	keys   []string
	values map[string]Value
}

// NewParams creates an empty parameter map.
func NewParams() *Params {
	return &Params{values: make(map[string]Value)}
}

// Set stores a value under name. Setting an existing name replaces the value
// but keeps the original position.
func (p *Params) Set(name string, v Value) {
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = v
}

// Get returns the value for name and whether it is present.
func (p *Params) Get(name string) (Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Has reports whether name is present.
func (p *Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Delete removes name if present.
func (p *Params) Delete(name string) {
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	for i, k := range p.keys {
		if k == name {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.keys)
}

// Keys returns the parameter names in insertion order. The returned slice is
// a copy.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Clone returns a shallow copy. Values are immutable by convention so a
// shallow copy suffices.
func (p *Params) Clone() *Params {
	c := NewParams()
	for _, k := range p.keys {
		c.Set(k, p.values[k])
	}
	return c
}

// MarshalJSON encodes the parameters as a JSON object preserving insertion
// order. Standard json.Marshal on a map would sort keys; order is part of
// the IR contract, so Params marshals itself.
func (p *Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
