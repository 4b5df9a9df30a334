package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldt/cloudcmd/internal/history"
	"github.com/veldt/cloudcmd/internal/ir"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	NoHistory bool
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <command string>",
		Short: "Parse a cloud-CLI command into its IR",
		Long: `Parse validates a cloud-CLI style command and prints the resulting
intermediate representation. No network call is made; file parameters are
resolved against the configured working directory.

The command may be given as one quoted argument or as separate tokens:

  cloudcmd parse "aws s3 ls s3://my-bucket --summarize"
  cloudcmd parse aws s3 ls s3://my-bucket --summarize`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, strings.Join(args, " "), cmd)
		},
	}
	// Stop cobra from eating the parsed command's own flags.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "skip recording the parse in history")

	return cmd
}

func runParse(opts *ParseOptions, raw string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	app, err := loadApp(opts.RootOptions)
	if err != nil {
		return err
	}
	formatter.VerboseLog("sandbox root: %s", app.Parser.WorkDir())

	parsed, err := app.Parser.Parse(cmd.Context(), raw)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "parse failed", err)
	}

	recordHistory(opts, app, formatter, parsed, raw, cmd)

	if opts.Format == "json" {
		return formatter.Success(parsed)
	}
	return printCommandText(formatter, parsed)
}

// recordHistory appends the parse to the audit log. Best-effort: a history
// failure is reported in verbose mode and otherwise ignored.
func recordHistory(opts *ParseOptions, app *app, formatter *OutputFormatter, parsed *ir.Command, raw string, cmd *cobra.Command) {
	if opts.NoHistory || app.Config.HistoryPath == "" {
		return
	}
	store, err := history.Open(app.Config.HistoryPath)
	if err != nil {
		formatter.VerboseLog("history disabled: %v", err)
		return
	}
	defer store.Close()
	if _, err := store.RecordParse(cmd.Context(), parsed, raw); err != nil {
		formatter.VerboseLog("history record failed: %v", err)
	}
}

func printCommandText(formatter *OutputFormatter, parsed *ir.Command) error {
	w := formatter.Writer
	kind := "generic"
	if parsed.IsCustomization() {
		kind = "customization"
	}
	fmt.Fprintf(w, "service:    %s\n", parsed.ServiceName())
	fmt.Fprintf(w, "operation:  %s (%s)\n", parsed.OperationName(), kind)
	if parsed.Region() != "" {
		fmt.Fprintf(w, "region:     %s\n", parsed.Region())
	}

	params := parsed.Parameters()
	if params.Len() == 0 {
		fmt.Fprintf(w, "parameters: (none)\n")
		return nil
	}
	fmt.Fprintf(w, "parameters:\n")
	for _, key := range params.Keys() {
		v, _ := params.Get(key)
		fmt.Fprintf(w, "  %s = %s\n", key, renderValue(v))
	}
	return nil
}

// renderValue gives a compact single-line rendering of a parameter value.
// Loaded file content is summarized instead of dumped.
func renderValue(v ir.Value) string {
	if b, ok := v.(ir.Bytes); ok {
		return fmt.Sprintf("<%d bytes>", len(b))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "<unprintable>"
	}
	return string(data)
}
