package parser

import (
	"fmt"
	"strings"

	"github.com/veldt/cloudcmd/internal/ir"
	"github.com/veldt/cloudcmd/internal/schema"
)

// shapeCustom maps flags and positionals onto the parameter map per the
// operation's recipe. Custom parameter names keep their CLI flag spelling,
// leading dashes included.
func shapeCustom(rec recipe, args []string, resolver *fileResolver) (*ir.Params, error) {
	params := ir.NewParams()
	boolDefaults := make(map[string]bool, len(rec.BoolFlags))
	for _, bf := range rec.BoolFlags {
		boolDefaults[bf.Name] = bf.Default
	}

	var positionals []string
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if !strings.HasPrefix(tok, "--") {
			if rec.PositionalParam == "" {
				return nil, &CommandValidationError{
					Message: fmt.Sprintf("unexpected positional argument '%s'", tok),
				}
			}
			positionals = append(positionals, tok)
			continue
		}

		name := strings.TrimPrefix(tok, "--")
		if _, ok := boolDefaults[name]; ok {
			params.Set(tok, ir.Bool(true))
			continue
		}
		if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
			return nil, &CommandValidationError{
				Message: fmt.Sprintf("flag '%s' requires a value", tok),
			}
		}
		i++
		// Values map verbatim as strings; nothing is coerced to a number.
		params.Set(tok, ir.String(args[i]))
	}

	if rec.PositionalParam != "" {
		if rec.FilePositionals {
			for i, pos := range positionals {
				resolved, err := resolver.resolvePathArgument(pos)
				if err != nil {
					return nil, err
				}
				positionals[i] = resolved
			}
		}
		switch {
		case len(positionals) == 0 && rec.PositionalDefault != "":
			params.Set(rec.PositionalParam, ir.String(rec.PositionalDefault))
		case len(positionals) == 1:
			params.Set(rec.PositionalParam, ir.String(positionals[0]))
		case len(positionals) > 1:
			list := make(ir.List, len(positionals))
			for i, pos := range positionals {
				list[i] = ir.String(pos)
			}
			params.Set(rec.PositionalParam, list)
		}
	}

	// Declared booleans materialize with their defaults when absent.
	for _, bf := range rec.BoolFlags {
		flag := "--" + bf.Name
		if !params.Has(flag) {
			params.Set(flag, ir.Bool(bf.Default))
		}
	}

	return params, nil
}

// shapeGeneric resolves each flag against the operation's schema, assembling
// nested parameters along their declared target paths. Returns the shaped
// map and the set of schema parameter names that were satisfied.
func shapeGeneric(op *schema.Operation, args []string, resolver *fileResolver) (*ir.Params, map[string]bool, error) {
	params := ir.NewParams()
	satisfied := make(map[string]bool)

	for i := 0; i < len(args); i++ {
		tok := args[i]
		if !strings.HasPrefix(tok, "--") {
			return nil, nil, &CommandValidationError{
				Message: fmt.Sprintf("unexpected positional argument '%s' for operation '%s'", tok, op.Flag),
			}
		}

		flag := strings.TrimPrefix(tok, "--")
		param, ok := op.ParamByFlag(flag)
		if !ok {
			return nil, nil, &CommandValidationError{
				Message: fmt.Sprintf("unknown parameter '%s' for operation '%s'", tok, op.Flag),
			}
		}

		var value ir.Value
		switch param.Shape {
		case schema.ShapeBoolean:
			value = ir.Bool(true)
		case schema.ShapeList:
			var elems ir.List
			for i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				i++
				elems = append(elems, ir.String(args[i]))
			}
			if len(elems) == 0 {
				return nil, nil, &CommandValidationError{
					Message: fmt.Sprintf("flag '%s' requires at least one value", tok),
				}
			}
			value = elems
		default:
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				return nil, nil, &CommandValidationError{
					Message: fmt.Sprintf("flag '%s' requires a value", tok),
				}
			}
			i++
			resolved, err := resolver.resolveValue(param, args[i])
			if err != nil {
				return nil, nil, err
			}
			value = resolved
		}

		setAtTarget(params, param, value)
		satisfied[param.Name] = true
	}

	return params, satisfied, nil
}

// setAtTarget places a value at the parameter's declared position: top-level
// under its canonical name, or nested along its target path (e.g. a zip-file
// flag landing inside Code.ZipFile).
func setAtTarget(params *ir.Params, param *schema.Param, value ir.Value) {
	if len(param.Target) == 0 {
		params.Set(param.Name, value)
		return
	}
	if len(param.Target) == 1 {
		params.Set(param.Target[0], value)
		return
	}

	root := param.Target[0]
	var obj ir.Object
	if existing, ok := params.Get(root); ok {
		obj, _ = existing.(ir.Object)
	}
	if obj == nil {
		obj = ir.Object{}
		params.Set(root, obj)
	}
	for _, key := range param.Target[1 : len(param.Target)-1] {
		next, _ := obj[key].(ir.Object)
		if next == nil {
			next = ir.Object{}
			obj[key] = next
		}
		obj = next
	}
	obj[param.Target[len(param.Target)-1]] = value
}
