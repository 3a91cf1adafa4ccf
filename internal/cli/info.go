package cli

import (
	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Show the resolved configuration's derived locations",
		Long: `Resolve the pipeline configuration owning a path and report its
project name, data roots, cache and hook locations, install root and
defined environments.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInfo(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	h, err := resolveFromPath(cmd.Context(), path)
	if err != nil {
		return failResolution(formatter, err)
	}

	report := buildReport(h)
	if opts.Format == "json" {
		return formatter.Success(report)
	}
	return formatter.Success(formatReport(report))
}
