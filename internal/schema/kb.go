package schema

import "sort"

// FileMode declares how a file-bearing parameter's content is loaded.
type FileMode string

const (
	// FileModeNone means the parameter never resolves file references.
	FileModeNone FileMode = "none"
	// FileModeText loads referenced files as text.
	FileModeText FileMode = "text"
	// FileModeBinary loads referenced files as raw bytes.
	FileModeBinary FileMode = "binary"
)

// Shape is the declared value shape of a parameter.
type Shape string

const (
	ShapeString  Shape = "string"
	ShapeBoolean Shape = "boolean"
	ShapeList    Shape = "list"
	ShapeBlob    Shape = "blob"
)

// Param describes one operation parameter.
type Param struct {
	// Name is the canonical API name, e.g. "FunctionName".
	Name string
	// Flag is the CLI flag spelling without the leading dashes,
	// e.g. "function-name". Derived from Name unless overridden in CUE.
	Flag string
	// Required reports whether the operation rejects requests without it.
	Required bool
	// Shape is the declared value shape.
	Shape Shape
	// Target is the nested placement path inside the parameter map,
	// e.g. ["Code", "ZipFile"]. Empty means top-level under Name.
	Target []string
	// FileMode declares whether and how file references are loaded.
	FileMode FileMode
}

// Operation describes one service operation.
type Operation struct {
	// Name is the schema's canonical operation name, e.g. "CreateFunction".
	Name string
	// Flag is the CLI spelling, e.g. "create-function".
	Flag string
	// Params holds the declared parameters in schema order.
	Params []Param

	byFlag map[string]*Param
}

// ParamByFlag returns the parameter declared under the given CLI flag
// spelling (without dashes).
func (o *Operation) ParamByFlag(flag string) (*Param, bool) {
	p, ok := o.byFlag[flag]
	return p, ok
}

// RequiredParams returns the canonical names of all required parameters, in
// schema order.
func (o *Operation) RequiredParams() []string {
	var out []string
	for _, p := range o.Params {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}

// Service describes one service's operations.
type Service struct {
	Name string

	ops map[string]*Operation // keyed by CLI flag spelling
}

// KnowledgeBase is the compiled, immutable schema set.
type KnowledgeBase struct {
	services map[string]*Service
}

// HasService reports whether the service exists in the knowledge base.
func (kb *KnowledgeBase) HasService(name string) bool {
	_, ok := kb.services[name]
	return ok
}

// LookupOperation resolves a CLI-style operation token for a service.
// It matches the declared flag spelling first, then falls back to the
// PascalCase guess for schemas that declare no explicit alias.
func (kb *KnowledgeBase) LookupOperation(service, operation string) (*Operation, bool) {
	svc, ok := kb.services[service]
	if !ok {
		return nil, false
	}
	if op, ok := svc.ops[operation]; ok {
		return op, true
	}
	guess := CanonicalGuess(operation)
	for _, op := range svc.ops {
		if op.Name == guess {
			return op, true
		}
	}
	return nil, false
}

// Services returns all known service names, sorted.
func (kb *KnowledgeBase) Services() []string {
	out := make([]string, 0, len(kb.services))
	for name := range kb.services {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Operations returns the CLI spellings of all operations for a service,
// sorted. Returns nil for an unknown service.
func (kb *KnowledgeBase) Operations(service string) []string {
	svc, ok := kb.services[service]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(svc.ops))
	for flag := range svc.ops {
		out = append(out, flag)
	}
	sort.Strings(out)
	return out
}
