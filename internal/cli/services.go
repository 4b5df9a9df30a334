package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/veldt/cloudcmd/internal/registry"
)

// NewServicesCommand creates the services command.
func NewServicesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "services",
		Short:         "List known services",
		Long:          "List every service in the schema knowledge base or the customization registry.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServices(rootOpts, cmd)
		},
	}
}

func runServices(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	app, err := loadApp(opts)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, svc := range app.KB.Services() {
		seen[svc] = true
	}
	for _, svc := range app.Registry.Services() {
		if svc != registry.Wildcard {
			seen[svc] = true
		}
	}
	services := make([]string, 0, len(seen))
	for svc := range seen {
		services = append(services, svc)
	}
	sort.Strings(services)

	if opts.Format == "json" {
		return formatter.Success(services)
	}
	for _, svc := range services {
		fmt.Fprintln(formatter.Writer, svc)
	}
	return nil
}

// NewOperationsCommand creates the operations command.
func NewOperationsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "operations <service>",
		Short:         "List operations for a service",
		Long:          "List a service's generic schema operations and its allow-listed customizations.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperations(rootOpts, args[0], cmd)
		},
	}
}

// operationInfo is one row of operations output.
type operationInfo struct {
	Name            string `json:"name"`
	IsCustomization bool   `json:"is_customization"`
}

func runOperations(opts *RootOptions, service string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	app, err := loadApp(opts)
	if err != nil {
		return err
	}

	var ops []operationInfo
	for _, op := range app.Registry.Operations(service) {
		ops = append(ops, operationInfo{Name: op, IsCustomization: true})
	}
	for _, op := range app.Registry.Operations(registry.Wildcard) {
		ops = append(ops, operationInfo{Name: op, IsCustomization: true})
	}
	for _, op := range app.KB.Operations(service) {
		ops = append(ops, operationInfo{Name: op})
	}

	if len(ops) == 0 {
		_ = formatter.Error(ErrCodeInvalidOperation, fmt.Sprintf("unknown service '%s'", service), nil)
		return WrapExitError(ExitFailure, "unknown service", fmt.Errorf("unknown service %q", service))
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })

	if opts.Format == "json" {
		return formatter.Success(ops)
	}
	for _, op := range ops {
		if op.IsCustomization {
			fmt.Fprintf(formatter.Writer, "%s (customization)\n", op.Name)
			continue
		}
		fmt.Fprintln(formatter.Writer, op.Name)
	}
	return nil
}
