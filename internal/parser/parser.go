package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/veldt/cloudcmd/internal/ir"
	"github.com/veldt/cloudcmd/internal/registry"
	"github.com/veldt/cloudcmd/internal/schema"
)

// Parser turns textual cloud-CLI commands into validated ir.Commands.
//
// A Parser is immutable after construction. The knowledge base, registry,
// recipe table, and sandbox root are all read-only, so one Parser may serve
// any number of concurrent Parse calls without coordination.
type Parser struct {
	kb            *schema.KnowledgeBase
	registry      *registry.Registry
	recipes       recipeTable
	workDir       string
	defaultRegion string
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithWorkDir sets the sandbox root for local file references. Relative
// paths in commands resolve against it; anything escaping it is rejected.
func WithWorkDir(dir string) Option {
	return func(p *Parser) { p.workDir = dir }
}

// WithDefaultRegion sets the region applied to commands that carry no
// explicit --region flag.
func WithDefaultRegion(region string) Option {
	return func(p *Parser) { p.defaultRegion = region }
}

// New constructs a Parser. When no working directory is configured, the
// process working directory is the sandbox root.
func New(kb *schema.KnowledgeBase, reg *registry.Registry, opts ...Option) (*Parser, error) {
	p := &Parser{
		kb:       kb,
		registry: reg,
		recipes:  defaultRecipes(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		p.workDir = cwd
	}
	abs, err := filepath.Abs(p.workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	p.workDir = filepath.Clean(abs)

	return p, nil
}

// WorkDir returns the configured sandbox root.
func (p *Parser) WorkDir() string { return p.workDir }

// Parse validates one command string and assembles its IR command. The
// context bounds the file-parameter resolver's filesystem reads; everything
// else is pure computation.
func (p *Parser) Parse(ctx context.Context, raw string) (*ir.Command, error) {
	tok, err := tokenize(raw)
	if err != nil {
		return nil, err
	}

	args, region, err := extractRegion(tok.Arguments)
	if err != nil {
		return nil, err
	}
	if region == "" {
		region = p.defaultRegion
	}

	cls, err := p.classify(tok.Service, tok.Operation)
	if err != nil {
		return nil, err
	}

	resolver := &fileResolver{
		ctx:       ctx,
		workDir:   p.workDir,
		service:   tok.Service,
		operation: tok.Operation,
	}

	if cls.IsCustomization {
		rec := p.recipes.lookup(tok.Service, tok.Operation)
		params, err := shapeCustom(rec, args, resolver)
		if err != nil {
			return nil, err
		}
		if err := validateCustom(tok.Service, tok.Operation, rec, params); err != nil {
			return nil, err
		}
		return ir.NewCommand(tok.Service, tok.Operation, params, region, true), nil
	}

	params, satisfied, err := shapeGeneric(cls.Operation, args, resolver)
	if err != nil {
		return nil, err
	}
	if err := validateGeneric(tok.Service, cls.Operation, satisfied); err != nil {
		return nil, err
	}
	return ir.NewCommand(tok.Service, cls.Operation.Name, params, region, false), nil
}

// extractRegion pulls an explicit --region flag out of the argument list so
// it rides on the command itself rather than the parameter map.
func extractRegion(args []string) ([]string, string, error) {
	var filtered []string
	var region string
	for i := 0; i < len(args); i++ {
		if args[i] != "--region" {
			filtered = append(filtered, args[i])
			continue
		}
		if i+1 >= len(args) {
			return nil, "", &CommandValidationError{Message: "flag '--region' requires a value"}
		}
		i++
		region = args[i]
	}
	return filtered, region, nil
}
