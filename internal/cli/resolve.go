package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/slatefx/slate/internal/pipeline"
	"github.com/slatefx/slate/internal/tracking"
)

// offlineService is the tracking service used by local CLI commands.
// Resolution paths that never reach the remote service work normally;
// the ones that need it (multi-candidate disambiguation) fail with an
// explanation instead of hanging on missing credentials.
func offlineService() tracking.Service {
	return tracking.NewUnavailable(
		"this command runs locally; to disambiguate between several configurations, " +
			"run the command from the configuration you want to use")
}

// resolveFromPath resolves the configuration owning a path, honoring
// the process environment.
func resolveFromPath(ctx context.Context, path string) (*pipeline.Handle, error) {
	return pipeline.FromPath(ctx, offlineService(), pipeline.EnvironmentFromOS(), path)
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve the pipeline configuration owning a path",
		Long: `Resolve which pipeline configuration applies to a filesystem path.

The path may be the configuration root itself, any path inside the
project's data tree, or a file about to be created there. Prints the
resolved configuration root.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runResolve(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	h, err := resolveFromPath(cmd.Context(), path)
	if err != nil {
		return failResolution(formatter, err)
	}

	formatter.VerboseLog("Resolved %s to configuration %s (project %s)", path, h.Path(), h.ProjectName())

	if opts.Format == "json" {
		return formatter.Success(map[string]string{
			"root":         h.Path(),
			"project_name": h.ProjectName(),
		})
	}
	return formatter.Success(h.Path())
}
