package cli

import (
	"github.com/spf13/cobra"

	"github.com/slatefx/slate/internal/pathcache"
)

// NewCacheCommand creates the cache command group.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the project's path cache database",
	}

	cmd.AddCommand(newCacheInitCommand(rootOpts))

	return cmd
}

func newCacheInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init <path>",
		Short: "Create the path cache database for a project",
		Long: `Resolve the pipeline configuration owning a path and create the
project's path cache database at its canonical location under the
primary data root, if it does not exist yet.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheInit(rootOpts, args[0], cmd)
		},
	}
}

func runCacheInit(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	h, err := resolveFromPath(cmd.Context(), path)
	if err != nil {
		return failResolution(formatter, err)
	}

	location, err := h.PathCacheLocation()
	if err != nil {
		return failResolution(formatter, err)
	}

	cache, err := pathcache.Open(location)
	if err != nil {
		if ferr := formatter.Error("CACHE_INIT_FAILED", err.Error()); ferr != nil {
			return ferr
		}
		return &ExitError{Code: ExitCommandError, Message: err.Error(), Err: err}
	}
	defer cache.Close()

	formatter.VerboseLog("Path cache ready at %s", location)

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"path_cache": location})
	}
	return formatter.Success("path cache ready at " + location)
}
