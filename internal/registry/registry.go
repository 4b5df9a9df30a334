// Package registry holds the curated allow-list of CLI customizations and
// the deny-shape verb list. Both are loaded once from an embedded YAML
// document and never mutated afterwards, so a Registry is safe to share
// across concurrent parses.
package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var registryYAML []byte

// Wildcard is the service key whose operations are valid for every service.
const Wildcard = "*"

// fileConfig is the YAML shape of the registry document.
type fileConfig struct {
	// Customizations maps service name to its customization verbs.
	Customizations map[string][]string `yaml:"customizations"`
	// DeniedShapes lists verbs that look like customizations but must be
	// rejected when absent from the allow-list. Kept configurable because
	// the exact shape-matching rule is pattern-dependent.
	DeniedShapes []string `yaml:"denied_shapes"`
}

// Registry is the immutable custom-operation allow-list.
type Registry struct {
	customizations map[string]map[string]bool
	deniedShapes   map[string]bool
}

// Load parses the embedded registry document.
func Load() (*Registry, error) {
	return parse(registryYAML)
}

// NewFromConfig builds a Registry from explicit mappings. Used by tests and
// by callers that need a non-default allow-list.
func NewFromConfig(customizations map[string][]string, deniedShapes []string) *Registry {
	r := &Registry{
		customizations: make(map[string]map[string]bool, len(customizations)),
		deniedShapes:   make(map[string]bool, len(deniedShapes)),
	}
	for svc, ops := range customizations {
		set := make(map[string]bool, len(ops))
		for _, op := range ops {
			set[op] = true
		}
		r.customizations[svc] = set
	}
	for _, shape := range deniedShapes {
		r.deniedShapes[shape] = true
	}
	return r
}

func parse(data []byte) (*Registry, error) {
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields (catches typos)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if len(cfg.Customizations) == 0 {
		return nil, fmt.Errorf("parse registry: no customizations declared")
	}
	return NewFromConfig(cfg.Customizations, cfg.DeniedShapes), nil
}

// IsCustomOperation reports whether (service, operation) is an allow-listed
// customization, either under the service itself or the wildcard entry.
func (r *Registry) IsCustomOperation(service, operation string) bool {
	if ops, ok := r.customizations[service]; ok && ops[operation] {
		return true
	}
	if ops, ok := r.customizations[Wildcard]; ok && ops[operation] {
		return true
	}
	return false
}

// IsDeniedShape reports whether the operation verb matches the shape of a
// customization. Callers must check IsCustomOperation first: allow-list
// membership always wins over shape-based denial.
func (r *Registry) IsDeniedShape(operation string) bool {
	return r.deniedShapes[operation]
}

// Services returns all service keys with registered customizations,
// including the wildcard key, sorted.
func (r *Registry) Services() []string {
	out := make([]string, 0, len(r.customizations))
	for svc := range r.customizations {
		out = append(out, svc)
	}
	sort.Strings(out)
	return out
}

// Operations returns the customization verbs registered for a service,
// sorted. Wildcard operations are not folded in; query Wildcard explicitly.
func (r *Registry) Operations(service string) []string {
	ops, ok := r.customizations[service]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(ops))
	for op := range ops {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}

// DeniedShapes returns the configured deny-shape verbs, sorted.
func (r *Registry) DeniedShapes() []string {
	out := make([]string, 0, len(r.deniedShapes))
	for shape := range r.deniedShapes {
		out = append(out, shape)
	}
	sort.Strings(out)
	return out
}
