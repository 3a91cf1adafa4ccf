package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/slatefx/slate/internal/pipeline"
	"github.com/slatefx/slate/internal/platform"
)

// mappingFlags holds the per-OS paths for mappings add.
type mappingFlags struct {
	MacPath     string
	WindowsPath string
	LinuxPath   string
}

// NewMappingsCommand creates the mappings command group.
func NewMappingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Inspect and extend a storage root's back-mapping file",
		Long: `The back-mapping file under a storage root records which pipeline
configurations reference that storage. Resolution walks up from a data
path to this file to find its candidate configurations.`,
	}

	cmd.AddCommand(newMappingsListCommand(rootOpts))
	cmd.AddCommand(newMappingsAddCommand(rootOpts))

	return cmd
}

func newMappingsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list <storage-root>",
		Short:         "List the configurations mapped to a storage root",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMappingsList(rootOpts, args[0], cmd)
		},
	}
}

func newMappingsAddCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &mappingFlags{}

	cmd := &cobra.Command{
		Use:           "add <storage-root>",
		Short:         "Record a configuration's per-OS paths for a storage root",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMappingsAdd(rootOpts, args[0], flags, cmd)
		},
	}

	cmd.Flags().StringVar(&flags.MacPath, "mac-path", "", "configuration root on macOS")
	cmd.Flags().StringVar(&flags.WindowsPath, "windows-path", "", "configuration root on Windows")
	cmd.Flags().StringVar(&flags.LinuxPath, "linux-path", "", "configuration root on Linux")

	return cmd
}

func runMappingsList(opts *RootOptions, storageRoot string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	store := pipeline.NewBackMappingStore(storageRoot)
	mappings, err := store.List()
	if err != nil {
		return failResolution(formatter, err)
	}

	formatter.VerboseLog("Read %d mapping(s) from %s", len(mappings), store.File())

	if opts.Format == "json" {
		type mappingOut struct {
			MacPath     string `json:"mac_path,omitempty"`
			WindowsPath string `json:"windows_path,omitempty"`
			LinuxPath   string `json:"linux_path,omitempty"`
		}
		out := make([]mappingOut, len(mappings))
		for i, m := range mappings {
			out[i] = mappingOut{MacPath: m.MacPath, WindowsPath: m.WindowsPath, LinuxPath: m.LinuxPath}
		}
		return formatter.Success(map[string]any{"mappings": out})
	}

	if len(mappings) == 0 {
		return formatter.Success("no configurations mapped")
	}

	p, err := platform.Current()
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: err.Error(), Err: err}
	}
	var lines []string
	for _, m := range mappings {
		path := m.PathFor(p)
		if path == "" {
			path = "(not registered for this OS)"
		}
		lines = append(lines, path)
	}
	return formatter.Success(strings.Join(lines, "\n"))
}

func runMappingsAdd(opts *RootOptions, storageRoot string, flags *mappingFlags, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if flags.MacPath == "" && flags.WindowsPath == "" && flags.LinuxPath == "" {
		return &ExitError{Code: ExitCommandError,
			Message: "at least one of --mac-path, --windows-path, --linux-path is required"}
	}

	store := pipeline.NewBackMappingStore(storageRoot)
	if err := store.Append(flags.MacPath, flags.WindowsPath, flags.LinuxPath); err != nil {
		if ferr := formatter.Error(string(pipeline.CodeOf(err)), err.Error()); ferr != nil {
			return ferr
		}
		return &ExitError{Code: ExitCommandError, Message: err.Error(), Err: err}
	}

	formatter.VerboseLog("Updated %s", store.File())

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"file": store.File()})
	}
	return formatter.Success("mapping recorded in " + store.File())
}
