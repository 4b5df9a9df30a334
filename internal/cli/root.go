// Package cli implements the cloudcmd command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldt/cloudcmd/internal/config"
	"github.com/veldt/cloudcmd/internal/parser"
	"github.com/veldt/cloudcmd/internal/registry"
	"github.com/veldt/cloudcmd/internal/schema"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cloudcmd CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cloudcmd",
		Short: "cloudcmd - cloud CLI command parser",
		Long: "Parses cloud-CLI style commands into a validated intermediate\n" +
			"representation for a downstream API executor, without making any\n" +
			"network calls itself.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to cloudcmd.toml")

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewServicesCommand(opts))
	cmd.AddCommand(NewOperationsCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// app bundles the collaborators a subcommand needs: configuration, the
// schema knowledge base, the customization registry, and a ready parser.
type app struct {
	Config   config.Config
	KB       *schema.KnowledgeBase
	Registry *registry.Registry
	Parser   *parser.Parser
}

// loadApp builds the application context from the config file and the
// embedded schema/registry documents.
func loadApp(opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load configuration", err)
	}
	kb, err := schema.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load schema knowledge base", err)
	}
	reg, err := registry.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load customization registry", err)
	}

	var popts []parser.Option
	if cfg.WorkDir != "" {
		popts = append(popts, parser.WithWorkDir(cfg.WorkDir))
	}
	if cfg.DefaultRegion != "" {
		popts = append(popts, parser.WithDefaultRegion(cfg.DefaultRegion))
	}
	p, err := parser.New(kb, reg, popts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "construct parser", err)
	}

	return &app{Config: cfg, KB: kb, Registry: reg, Parser: p}, nil
}
