package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/veldt/cloudcmd/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show recently parsed commands",
		Long:          "Show the most recent entries of the parse audit log, newest first.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of entries")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
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
	if app.Config.HistoryPath == "" {
		return WrapExitError(ExitCommandError, "history is not configured",
			fmt.Errorf("set history_path in the config file"))
	}

	store, err := history.Open(app.Config.HistoryPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open history", err)
	}
	defer store.Close()

	records, err := store.Recent(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "read history", err)
	}

	if opts.Format == "json" {
		return formatter.Success(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(formatter.Writer, "history is empty")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(formatter.Writer, "%s  %-14s %-22s %s\n",
			rec.ParsedAt.Format(time.RFC3339), rec.Service, rec.Operation, rec.RawCommand)
	}
	return nil
}
