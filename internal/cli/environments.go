package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewEnvironmentsCommand creates the environments command.
func NewEnvironmentsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "environments <path>",
		Short:         "List the environments defined in a configuration",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvironments(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runEnvironments(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	h, err := resolveFromPath(cmd.Context(), path)
	if err != nil {
		return failResolution(formatter, err)
	}

	names := h.Environments()
	if opts.Format == "json" {
		return formatter.Success(map[string]any{"environments": names})
	}
	if len(names) == 0 {
		return formatter.Success("no environments defined")
	}
	return formatter.Success(strings.Join(names, "\n"))
}
