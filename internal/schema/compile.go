package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// CompileError reports a problem in a schema definition.
type CompileError struct {
	Path    string // CUE path of the offending field
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Path, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Load compiles the embedded CUE schema files into a KnowledgeBase.
// Called once at process start; the result is immutable.
func Load() (*KnowledgeBase, error) {
	names, err := fs.Glob(schemaFS, "schemas/*.cue")
	if err != nil {
		return nil, fmt.Errorf("list embedded schemas: %w", err)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, &CompileError{Message: "no embedded schema files"}
	}

	ctx := cuecontext.New()
	merged := ctx.CompileString("{}")
	for _, name := range names {
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		v := ctx.CompileBytes(data, cue.Filename(name))
		if err := v.Err(); err != nil {
			return nil, formatCUEError(err)
		}
		merged = merged.Unify(v)
	}
	if err := merged.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	return compileKnowledgeBase(merged)
}

// compileKnowledgeBase walks the unified CUE value and builds the lookup
// structures. Exported only through Load; tests compile fixture strings via
// loadValue.
func compileKnowledgeBase(v cue.Value) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{services: make(map[string]*Service)}

	servicesVal := v.LookupPath(cue.ParsePath("services"))
	if !servicesVal.Exists() {
		return nil, &CompileError{Path: "services", Message: "services is required", Pos: v.Pos()}
	}

	iter, err := servicesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		svc, err := compileService(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		kb.services[svc.Name] = svc
	}
	return kb, nil
}

func compileService(name string, v cue.Value) (*Service, error) {
	svc := &Service{Name: name, ops: make(map[string]*Operation)}

	opsVal := v.LookupPath(cue.ParsePath("operations"))
	if !opsVal.Exists() {
		return nil, &CompileError{Path: name, Message: "operations is required", Pos: v.Pos()}
	}
	iter, err := opsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		op, err := compileOperation(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		if _, dup := svc.ops[op.Flag]; dup {
			return nil, &CompileError{
				Path:    name + "." + op.Name,
				Message: fmt.Sprintf("duplicate operation flag %q", op.Flag),
				Pos:     iter.Value().Pos(),
			}
		}
		svc.ops[op.Flag] = op
	}
	return svc, nil
}

func compileOperation(name string, v cue.Value) (*Operation, error) {
	op := &Operation{
		Name:   name,
		Flag:   FlagName(name),
		byFlag: make(map[string]*Param),
	}
	if flagVal := v.LookupPath(cue.ParsePath("flag")); flagVal.Exists() {
		flag, err := flagVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		op.Flag = flag
	}

	paramsVal := v.LookupPath(cue.ParsePath("params"))
	if !paramsVal.Exists() {
		return op, nil
	}
	iter, err := paramsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		p, err := compileParam(name, iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		op.Params = append(op.Params, p)
	}
	// Index after the slice stops growing so the pointers stay valid.
	for i := range op.Params {
		op.byFlag[op.Params[i].Flag] = &op.Params[i]
	}
	return op, nil
}

func compileParam(opName, name string, v cue.Value) (Param, error) {
	p := Param{
		Name:     name,
		Flag:     FlagName(name),
		Shape:    ShapeString,
		FileMode: FileModeNone,
	}

	if rv := v.LookupPath(cue.ParsePath("required")); rv.Exists() {
		required, err := rv.Bool()
		if err != nil {
			return p, formatCUEError(err)
		}
		p.Required = required
	}
	if fv := v.LookupPath(cue.ParsePath("flag")); fv.Exists() {
		flag, err := fv.String()
		if err != nil {
			return p, formatCUEError(err)
		}
		p.Flag = flag
	}
	if sv := v.LookupPath(cue.ParsePath("shape")); sv.Exists() {
		shape, err := sv.String()
		if err != nil {
			return p, formatCUEError(err)
		}
		switch Shape(shape) {
		case ShapeString, ShapeBoolean, ShapeList, ShapeBlob:
			p.Shape = Shape(shape)
		default:
			return p, &CompileError{
				Path:    opName + "." + name,
				Message: fmt.Sprintf("unknown shape %q", shape),
				Pos:     sv.Pos(),
			}
		}
	}
	if fv := v.LookupPath(cue.ParsePath("file")); fv.Exists() {
		mode, err := fv.String()
		if err != nil {
			return p, formatCUEError(err)
		}
		switch FileMode(mode) {
		case FileModeText, FileModeBinary:
			p.FileMode = FileMode(mode)
		default:
			return p, &CompileError{
				Path:    opName + "." + name,
				Message: fmt.Sprintf("unknown file mode %q", mode),
				Pos:     fv.Pos(),
			}
		}
	}
	if tv := v.LookupPath(cue.ParsePath("target")); tv.Exists() {
		iter, err := tv.List()
		if err != nil {
			return p, formatCUEError(err)
		}
		for iter.Next() {
			elem, err := iter.Value().String()
			if err != nil {
				return p, formatCUEError(err)
			}
			p.Target = append(p.Target, elem)
		}
	}

	// Blob parameters load binary content unless declared otherwise.
	if p.Shape == ShapeBlob && p.FileMode == FileModeNone {
		p.FileMode = FileModeBinary
	}

	return p, nil
}

// loadValue compiles a single CUE document string. Used by tests to build
// fixture knowledge bases without touching the embedded schemas.
func loadValue(src string) (*KnowledgeBase, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return compileKnowledgeBase(v)
}

// formatCUEError converts a CUE error into a CompileError with position
// information when available.
func formatCUEError(err error) error {
	var pos token.Pos
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		pos = errs[0].Position()
	}
	return &CompileError{Message: cueerrors.Details(err, nil), Pos: pos}
}
